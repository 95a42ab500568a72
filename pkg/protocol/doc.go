// ABOUTME: Sendspin wire protocol package
// ABOUTME: Defines the tagged-envelope message schema and the binary frame demultiplexer
// Package protocol implements the Sendspin wire protocol: a JSON tagged-record
// envelope for control messages and a compact binary framing for audio,
// artwork, and visualizer payloads.
//
// Example:
//
//	env, err := protocol.Decode(rawText)
//	var hello protocol.ServerHello
//	err = env.DecodePayload(&hello)
package protocol
