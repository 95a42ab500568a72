// ABOUTME: Audio decoder package
// ABOUTME: Provides the Decoder interface and the linear PCM implementation
// Package decode converts wire-format audio bytes into int32 PCM samples.
//
// Linear PCM (16-bit and 24-bit, little-endian) is the only codec in scope;
// other codecs are a non-goal of this client.
//
// Example:
//
//	decoder, err := decode.NewPCM(format)
//	samples, err := decoder.Decode(audioData)
package decode
