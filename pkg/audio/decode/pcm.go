// ABOUTME: PCM audio decoder
// ABOUTME: Decodes little-endian 16-bit and 24-bit PCM audio to int32 samples
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/Sendspin/sendspin-go/pkg/audio"
)

// PCMDecoder decodes linear PCM audio. Endianness is an unconditional
// little-endian default; the wire protocol never signals otherwise.
type PCMDecoder struct {
	bitDepth int
	channels int
}

// NewPCM creates a PCM decoder for the given stream format.
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	return &PCMDecoder{
		bitDepth: format.BitDepth,
		channels: format.Channels,
	}, nil
}

// Decode converts PCM bytes to int32 samples. If data is not a whole number
// of channel-frames, the chunk is rejected outright rather than decoded
// short.
func (d *PCMDecoder) Decode(data []byte) ([]int32, error) {
	bytesPerSample := d.bitDepth / 8
	frameSize := bytesPerSample * max(d.channels, 1)

	if len(data)%frameSize != 0 {
		return nil, fmt.Errorf("pcm: %d bytes is not a multiple of the %d-byte frame size (bit_depth=%d, channels=%d)", len(data), frameSize, d.bitDepth, d.channels)
	}

	if d.bitDepth == 24 {
		numSamples := len(data) / 3
		samples := make([]int32, numSamples)
		for i := 0; i < numSamples; i++ {
			b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
			samples[i] = audio.SampleFrom24Bit(b)
		}
		return samples, nil
	}

	numSamples := len(data) / 2
	samples := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}
	return samples, nil
}

// Close releases resources. PCM decoding is stateless, so this is a no-op.
func (d *PCMDecoder) Close() error {
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
