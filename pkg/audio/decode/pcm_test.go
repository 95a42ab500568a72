// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests 16-bit and 24-bit PCM decoding, frame-alignment rejection, and the frame-alignment property
package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Sendspin/sendspin-go/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	require.NoError(t, err)
	require.NotNil(t, decoder)
}

func TestPCMDecode16Bit(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	require.NoError(t, err)

	// 0x00, 0x01 -> 0x0100 = 256 (16-bit) -> 256<<8 = 65536 (24-bit-widened)
	// 0x02, 0x03 -> 0x0302 = 770 (16-bit) -> 770<<8 = 197120 (24-bit-widened)
	output, err := decoder.Decode([]byte{0x00, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	require.Equal(t, []int32{256 << 8, 770 << 8}, output)
}

func TestPCMDecode24Bit(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 192000, Channels: 2, BitDepth: 24})
	require.NoError(t, err)

	// 0x00,0x01,0x02 -> 0x020100 = 131328; 0x03,0x04,0x05 -> 0x050403 = 328707
	output, err := decoder.Decode([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	require.NoError(t, err)
	require.Equal(t, []int32{0x020100, 0x050403}, output)
}

func TestNewPCMRejectsNonPCMCodec(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "opus", SampleRate: 48000, Channels: 2, BitDepth: 16})
	require.EqualError(t, err, "invalid codec for PCM decoder: opus")
	require.Nil(t, decoder)
}

func TestNewPCMRejectsUnsupportedBitDepth(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 32})
	require.EqualError(t, err, "unsupported bit depth: 32 (supported: 16, 24)")
	require.Nil(t, decoder)
}

func TestPCMDecodeMisalignedFrameIsRejected(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	require.NoError(t, err)

	// frame size = 2 bytes/sample * 2 channels = 4; 3 bytes is not a multiple.
	output, err := decoder.Decode([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
	require.Nil(t, output)
}

func TestPCMDecodeEmptyInput(t *testing.T) {
	decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	require.NoError(t, err)

	output, err := decoder.Decode([]byte{})
	require.NoError(t, err)
	require.Empty(t, output)
}

// TestPCMDecodeFrameCountProperty checks, for arbitrary aligned and
// misaligned byte lengths across both supported bit depths, that Decode
// never returns a partial frame and always rejects misaligned input outright
// per spec.md §4.5's "dropped, never partially emitted" rule.
func TestPCMDecodeFrameCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bitDepth := rapid.SampledFrom([]int{16, 24}).Draw(rt, "bitDepth")
		channels := rapid.IntRange(1, 8).Draw(rt, "channels")
		frames := rapid.IntRange(0, 64).Draw(rt, "frames")

		decoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: channels, BitDepth: bitDepth})
		require.NoError(rt, err)

		frameSize := (bitDepth / 8) * channels
		// Slack stays below one frame so a non-zero slack is always misaligned.
		slack := rapid.IntRange(0, frameSize-1).Draw(rt, "slack")
		data := make([]byte, frames*frameSize+slack)

		output, err := decoder.Decode(data)
		if slack != 0 {
			require.Error(rt, err)
			require.Nil(rt, output)
			return
		}
		require.NoError(rt, err)
		require.Len(rt, output, frames*channels)
	})
}
