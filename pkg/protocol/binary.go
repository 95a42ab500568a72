// ABOUTME: Binary frame demultiplexer for the Sendspin wire protocol
// ABOUTME: Parses type-ID + big-endian timestamp + payload and dispatches by channel
package protocol

import (
	"encoding/binary"
	"fmt"
)

// Binary frame type IDs, normative per the Sendspin wire schema.
const (
	BinaryTypePlayerAudio     uint8 = 0x04
	BinaryTypeArtworkChannel0 uint8 = 0x08
	BinaryTypeArtworkChannel1 uint8 = 0x09
	BinaryTypeArtworkChannel2 uint8 = 0x0A
	BinaryTypeArtworkChannel3 uint8 = 0x0B
	BinaryTypeVisualizer      uint8 = 0x10
)

// binaryFrameMinLen is the 1-byte type ID plus 8-byte timestamp prefix.
const binaryFrameMinLen = 9

// IsArtworkType reports whether typeID is one of the four artwork channels.
func IsArtworkType(typeID uint8) bool {
	return typeID >= BinaryTypeArtworkChannel0 && typeID <= BinaryTypeArtworkChannel3
}

// ArtworkChannel returns the channel number (0-3) for an artwork type ID.
func ArtworkChannel(typeID uint8) (uint8, bool) {
	if !IsArtworkType(typeID) {
		return 0, false
	}
	return typeID - BinaryTypeArtworkChannel0, true
}

// AudioChunk is a player-audio binary frame (type 0x04).
type AudioChunk struct {
	Timestamp int64
	Data      []byte
}

// ArtworkChunk is an artwork binary frame (types 0x08-0x0B). An empty Data
// is the clear command for Channel.
type ArtworkChunk struct {
	Channel   uint8
	Timestamp int64
	Data      []byte
}

// IsClear reports whether this chunk clears the artwork channel.
func (a ArtworkChunk) IsClear() bool {
	return len(a.Data) == 0
}

// VisualizerChunk is a visualizer binary frame (type 0x10). Payload is
// opaque to this client; no visualizer renderer is implemented.
type VisualizerChunk struct {
	Timestamp int64
	Data      []byte
}

// UnknownChunk preserves a frame whose type ID is not in the normative
// table. Never dropped silently; callers are expected to log it.
type UnknownChunk struct {
	TypeID  uint8
	Payload []byte
}

// BinaryFrame is the parsed result of one inbound binary WebSocket message,
// exactly one of its fields populated.
type BinaryFrame struct {
	Audio      *AudioChunk
	Artwork    *ArtworkChunk
	Visualizer *VisualizerChunk
	Unknown    *UnknownChunk
}

// DecodeBinaryFrame parses a raw binary WebSocket frame into a typed
// BinaryFrame. Frames shorter than 9 bytes are a decode failure; frames
// with an unrecognized type ID decode successfully into Unknown, never an
// error, so the caller can still log and move on.
func DecodeBinaryFrame(frame []byte) (BinaryFrame, error) {
	if len(frame) < binaryFrameMinLen {
		return BinaryFrame{}, fmt.Errorf("protocol: binary frame too short: got %d bytes, need at least %d", len(frame), binaryFrameMinLen)
	}

	typeID := frame[0]
	timestamp := int64(binary.BigEndian.Uint64(frame[1:9]))
	payload := frame[9:]

	switch {
	case typeID == BinaryTypePlayerAudio:
		return BinaryFrame{Audio: &AudioChunk{Timestamp: timestamp, Data: payload}}, nil
	case IsArtworkType(typeID):
		channel, _ := ArtworkChannel(typeID)
		return BinaryFrame{Artwork: &ArtworkChunk{Channel: channel, Timestamp: timestamp, Data: payload}}, nil
	case typeID == BinaryTypeVisualizer:
		return BinaryFrame{Visualizer: &VisualizerChunk{Timestamp: timestamp, Data: payload}}, nil
	default:
		return BinaryFrame{Unknown: &UnknownChunk{TypeID: typeID, Payload: payload}}, nil
	}
}
