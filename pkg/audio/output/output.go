// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

// Output represents an audio output device: a bounded handoff to a
// realtime callback that pulls samples on its own thread.
type Output interface {
	// Open initializes the output device for the given stream format.
	Open(sampleRate, channels, bitDepth int) error

	// Write enqueues decoded samples for playback. May block briefly to
	// apply backpressure; must never be called from the realtime callback
	// itself.
	Write(samples []int32) error

	// Close releases output resources.
	Close() error

	// SetVolume sets software volume, 0-100.
	SetVolume(volume int)

	// SetMuted sets mute state.
	SetMuted(muted bool)

	// GetVolume returns the current software volume.
	GetVolume() int

	// IsMuted returns the current mute state.
	IsMuted() bool
}
