// ABOUTME: Audio output package for playing decoded PCM
// ABOUTME: Provides the Output interface and the oto-backed implementation
// Package output provides audio playback interfaces.
//
// NewOto backs Output with ebitengine/oto/v3, a bounded channel between the
// scheduler-consuming task and oto's own realtime callback thread.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 2, 16)
//	err = out.Write(samples)
package output
