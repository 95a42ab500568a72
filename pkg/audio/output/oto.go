// ABOUTME: Oto-based audio output implementation
// ABOUTME: Bounded channel feeding a pull-based io.Reader that oto's realtime thread drives
package output

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/Sendspin/sendspin-go/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// outputBufferCapacity bounds the handoff channel: ~10 buffers at a 20ms
// chunk cadence is ~200ms of slack between the enqueuing task and the
// realtime callback.
const outputBufferCapacity = 10

// Oto is an Output backed by ebitengine/oto/v3. oto's Player owns a
// dedicated native playback thread and pulls samples by calling Read on
// whatever io.Reader it's given; that pull IS the realtime callback
// contract from the spec, so Oto's Read implementation below is written to
// the same never-block, never-allocate-on-miss discipline.
type Oto struct {
	ctx        context.Context
	cancel     context.CancelFunc
	otoCtx     *oto.Context
	player     *oto.Player
	buffers    chan []byte
	current    []byte
	sampleRate int
	channels   int
	volume     atomic.Int32
	muted      atomic.Bool
	ready      bool
}

// NewOto creates an Oto output with software volume at 100 and unmuted.
func NewOto() Output {
	ctx, cancel := context.WithCancel(context.Background())

	o := &Oto{
		ctx:     ctx,
		cancel:  cancel,
		buffers: make(chan []byte, outputBufferCapacity),
	}
	o.volume.Store(100)
	return o
}

// Open initializes the output device. oto supports exactly one context per
// process; a format change after the first Open is logged and ignored,
// matching the platform-resample allowance in the output adapter spec.
func (o *Oto) Open(sampleRate, channels, bitDepth int) error {
	if bitDepth != 16 {
		log.Printf("audio output: oto only supports 16-bit output, ignoring requested bitDepth=%d", bitDepth)
	}

	if o.otoCtx != nil {
		if o.sampleRate == sampleRate && o.channels == channels {
			return nil
		}
		log.Printf("audio output: format change %dHz/%dch -> %dHz/%dch requested but oto cannot reinitialize; continuing with existing device", o.sampleRate, o.channels, sampleRate, channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("audio output: create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.player = o.otoCtx.NewPlayer(o)
	o.player.Play()
	o.ready = true

	log.Printf("audio output: initialized %dHz, %d channels", sampleRate, channels)
	return nil
}

// Read implements io.Reader for oto's playback thread. Never blocks and
// never allocates on the silence-fill path.
func (o *Oto) Read(p []byte) (int, error) {
	if len(o.current) == 0 {
		select {
		case buf, ok := <-o.buffers:
			if !ok {
				return 0, context.Canceled
			}
			o.current = buf
		default:
			for i := range p {
				p[i] = 0
			}
			return len(p), nil
		}
	}

	n := copy(p, o.current)
	o.current = o.current[n:]
	return n, nil
}

// Write converts samples to 16-bit LE bytes, applies volume, and enqueues
// them onto the bounded channel. This is the scheduler-consuming task's
// call, never the realtime callback's.
func (o *Oto) Write(samples []int32) error {
	if !o.ready {
		return fmt.Errorf("audio output: not initialized")
	}

	scaled := applyVolume(samples, int(o.volume.Load()), o.muted.Load())

	out := make([]byte, len(scaled)*2)
	for i, s := range scaled {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
	}

	select {
	case o.buffers <- out:
		return nil
	case <-o.ctx.Done():
		return fmt.Errorf("audio output: closed")
	}
}

// Close releases output resources.
func (o *Oto) Close() error {
	o.cancel()
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100).
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume.Store(int32(volume))
}

// SetMuted sets mute state.
func (o *Oto) SetMuted(muted bool) {
	o.muted.Store(muted)
}

// GetVolume returns current volume.
func (o *Oto) GetVolume() int {
	return int(o.volume.Load())
}

// IsMuted returns mute state.
func (o *Oto) IsMuted() bool {
	return o.muted.Load()
}

// applyVolume applies volume and mute to samples with clipping protection.
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := getVolumeMultiplier(volume, muted)

	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * multiplier)

		if scaled > audio.Max24Bit {
			scaled = audio.Max24Bit
		} else if scaled < audio.Min24Bit {
			scaled = audio.Min24Bit
		}

		result[i] = int32(scaled)
	}

	return result
}

// getVolumeMultiplier calculates the volume multiplier.
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
