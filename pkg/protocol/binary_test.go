// ABOUTME: Tests for the binary frame demultiplexer
// ABOUTME: Covers the normative type-ID table and the timestamp round-trip invariant
package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecodeAudioChunk(t *testing.T) {
	frame := []byte{0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0F, 0x42, 0x40, 0xDE, 0xAD, 0xBE, 0xEF}
	bf, err := DecodeBinaryFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, bf.Audio)
	require.Equal(t, int64(1_000_000), bf.Audio.Timestamp)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, bf.Audio.Data)
}

func TestDecodeArtworkClear(t *testing.T) {
	frame := []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	bf, err := DecodeBinaryFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, bf.Artwork)
	require.EqualValues(t, 1, bf.Artwork.Channel)
	require.True(t, bf.Artwork.IsClear())
}

func TestDecodeVisualizer(t *testing.T) {
	frame := []byte{0x10, 0, 0, 0, 0, 0, 0, 0, 1, 0xAA}
	bf, err := DecodeBinaryFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, bf.Visualizer)
	require.Equal(t, int64(1), bf.Visualizer.Timestamp)
}

func TestDecodeUnknownTypePreserved(t *testing.T) {
	frame := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}
	bf, err := DecodeBinaryFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, bf.Unknown)
	require.EqualValues(t, 0xFF, bf.Unknown.TypeID)
	require.Equal(t, []byte{1, 2, 3}, bf.Unknown.Payload)
}

func TestDecodeTooShortIsError(t *testing.T) {
	_, err := DecodeBinaryFrame([]byte{0x04, 0, 0, 0})
	require.Error(t, err)
}

// TestDecodeBinaryFrameTimestampProperty checks the quantified invariant from
// §8: for every binary frame with len >= 9, the decoded timestamp equals the
// big-endian i64 encoded in bytes [1:9], regardless of type ID or payload.
func TestDecodeBinaryFrameTimestampProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		typeID := uint8(rapid.IntRange(0, 255).Draw(rt, "typeID"))
		ts := rapid.Int64().Draw(rt, "timestamp")
		payloadLen := rapid.IntRange(0, 64).Draw(rt, "payloadLen")
		payload := rapid.SliceOfN(rapid.Byte(), payloadLen, payloadLen).Draw(rt, "payload")

		frame := make([]byte, 9+payloadLen)
		frame[0] = typeID
		binary.BigEndian.PutUint64(frame[1:9], uint64(ts))
		copy(frame[9:], payload)

		bf, err := DecodeBinaryFrame(frame)
		require.NoError(rt, err)

		var gotTS int64
		switch {
		case bf.Audio != nil:
			gotTS = bf.Audio.Timestamp
		case bf.Artwork != nil:
			gotTS = bf.Artwork.Timestamp
		case bf.Visualizer != nil:
			gotTS = bf.Visualizer.Timestamp
		case bf.Unknown != nil:
			gotTS = int64(binary.BigEndian.Uint64(frame[1:9]))
		default:
			t.Fatal("no frame variant populated")
		}
		require.Equal(rt, ts, gotTS)
	})
}
