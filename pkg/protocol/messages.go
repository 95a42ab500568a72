// ABOUTME: Sendspin protocol message type definitions
// ABOUTME: Defines the tagged-envelope wire schema and one Go type per discriminator
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message discriminator values, normative per the Sendspin wire schema.
const (
	TypeClientHello         = "client/hello"
	TypeServerHello          = "server/hello"
	TypeClientTime           = "client/time"
	TypeServerTime           = "server/time"
	TypeClientState          = "client/state"
	TypeServerState          = "server/state"
	TypeClientCommand        = "client/command"
	TypeServerCommand        = "server/command"
	TypeStreamStart          = "stream/start"
	TypeStreamEnd            = "stream/end"
	TypeStreamClear          = "stream/clear"
	TypeStreamRequestFormat  = "stream/request-format"
	TypeGroupUpdate          = "group/update"
	TypeClientGoodbye        = "client/goodbye"
)

// ErrUnknownMessageType is wrapped by UnknownMessageError and can be matched
// with errors.Is by callers that want to treat unrecognized discriminators
// as a distinct, recoverable case.
var ErrUnknownMessageType = errors.New("protocol: unknown message type")

// UnknownMessageError reports an envelope whose type field does not match a
// known discriminator. The raw type string is kept so callers can log it.
type UnknownMessageError struct {
	Type string
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("protocol: unknown message type %q", e.Type)
}

func (e *UnknownMessageError) Unwrap() error {
	return ErrUnknownMessageType
}

// Message is the top-level tagged-record envelope: a string type
// discriminator and an opaque payload object.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Encode builds an envelope around payload, marshaling it to the wire form.
func Encode(msgType string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("protocol: encode %s: %w", msgType, err)
	}
	return Message{Type: msgType, Payload: raw}, nil
}

// Decode parses the outer envelope only; the payload is left raw until the
// caller knows which typed struct to decode it into via DecodePayload.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("protocol: decode envelope: %w", err)
	}
	return m, nil
}

// DecodePayload unmarshals the envelope's payload into v.
func (m Message) DecodePayload(v any) error {
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("protocol: decode payload for %s: %w", m.Type, err)
	}
	return nil
}

// MarshalJSON round-trips the envelope as {"type":...,"payload":...}.
func (m Message) MarshalJSON() ([]byte, error) {
	type wire Message
	if m.Payload == nil {
		m.Payload = json.RawMessage("{}")
	}
	return json.Marshal(wire(m))
}

// ClientHello is sent by the client to initiate the handshake.
type ClientHello struct {
	ClientID            string               `json:"client_id"`
	Name                string               `json:"name"`
	Version             uint32               `json:"version"`
	SupportedRoles      []string             `json:"supported_roles"`
	DeviceInfo          *DeviceInfo          `json:"device_info,omitempty"`
	PlayerV1Support     *PlayerV1Support     `json:"player@v1_support,omitempty"`
	ArtworkV1Support    *ArtworkV1Support    `json:"artwork@v1_support,omitempty"`
	VisualizerV1Support *VisualizerV1Support `json:"visualizer@v1_support,omitempty"`
}

// DeviceInfo identifies the client's hardware/software to the server. All
// fields are optional per spec.
type DeviceInfo struct {
	ProductName     string `json:"product_name,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty"`
	SoftwareVersion string `json:"software_version,omitempty"`
}

// PlayerV1Support advertises player@v1 capabilities.
type PlayerV1Support struct {
	SupportedFormats  []AudioFormatSpec `json:"supported_formats"`
	BufferCapacity    uint32            `json:"buffer_capacity"`
	SupportedCommands []string          `json:"supported_commands"`
}

// AudioFormatSpec names one codec/rate/channel/depth combination a client
// can accept.
type AudioFormatSpec struct {
	Codec      string `json:"codec"`
	Channels   uint8  `json:"channels"`
	SampleRate uint32 `json:"sample_rate"`
	BitDepth   uint8  `json:"bit_depth"`
}

// ArtworkV1Support advertises artwork@v1 capabilities. Channels names which
// of the four artwork channels (0-3) the client can render.
type ArtworkV1Support struct {
	Channels []uint8 `json:"channels"`
}

// VisualizerV1Support advertises visualizer@v1 capabilities.
type VisualizerV1Support struct {
	BufferCapacity uint32 `json:"buffer_capacity"`
}

// ConnectionReason explains why the server accepted this connection.
type ConnectionReason string

const (
	ConnectionReasonDiscovery ConnectionReason = "discovery"
	ConnectionReasonPlayback  ConnectionReason = "playback"
)

// ServerHello is the server's response to client/hello.
type ServerHello struct {
	ServerID         string           `json:"server_id"`
	Name             string           `json:"name"`
	Version          uint32           `json:"version"`
	ActiveRoles      []string         `json:"active_roles"`
	ConnectionReason ConnectionReason `json:"connection_reason"`
}

// ClientTime begins one clock-sync exchange.
type ClientTime struct {
	ClientTransmitted int64 `json:"client_transmitted"`
}

// ServerTime is the server's reply to client/time, echoing t1 and adding the
// server-loop timestamps t2 and t3.
type ServerTime struct {
	ClientTransmitted int64 `json:"client_transmitted"`
	ServerReceived    int64 `json:"server_received"`
	ServerTransmitted int64 `json:"server_transmitted"`
}

// PlayerSyncState reports whether the player considers itself synchronized
// with the server clock.
type PlayerSyncState string

const (
	PlayerSyncStateSynchronized PlayerSyncState = "synchronized"
	PlayerSyncStateError        PlayerSyncState = "error"
)

// PlayerState is the player role's contribution to client/state.
type PlayerState struct {
	State  PlayerSyncState `json:"state"`
	Volume *uint8          `json:"volume,omitempty"`
	Muted  *bool           `json:"muted,omitempty"`
}

// ClientState reports per-role client state; only the player key is
// populated by this client.
type ClientState struct {
	Player *PlayerState `json:"player,omitempty"`
}

// PlaybackState is the group-level transport state reported in server/state
// and group/update.
type PlaybackState string

const (
	PlaybackStatePlaying PlaybackState = "playing"
	PlaybackStatePaused  PlaybackState = "paused"
	PlaybackStateStopped PlaybackState = "stopped"
)

// RepeatMode is the group-level repeat setting.
type RepeatMode string

const (
	RepeatOff RepeatMode = "off"
	RepeatOne RepeatMode = "one"
	RepeatAll RepeatMode = "all"
)

// PlayerBroadcastState is the player role's contribution to server/state:
// the server's view of group transport/volume, echoed down to every client.
type PlayerBroadcastState struct {
	PlaybackState PlaybackState `json:"playback_state"`
	Volume        *uint8        `json:"volume,omitempty"`
	Muted         *bool         `json:"muted,omitempty"`
	Repeat        RepeatMode    `json:"repeat,omitempty"`
}

// ServerState reports per-role server-side state down to the client.
type ServerState struct {
	Player *PlayerBroadcastState `json:"player,omitempty"`
}

// PlayerCommand is a control command addressed to the player role, in
// either direction (client/command or server/command).
type PlayerCommand struct {
	Command string `json:"command"`
	Volume  *uint8 `json:"volume,omitempty"`
	Mute    *bool  `json:"mute,omitempty"`
}

// ServerCommand wraps a role-specific command sent from server to client.
type ServerCommand struct {
	Player *PlayerCommand `json:"player,omitempty"`
}

// ClientCommand wraps a role-specific command sent from client to server
// (this player sends one when the status UI changes volume or mute).
type ClientCommand struct {
	Player *PlayerCommand `json:"player,omitempty"`
}

// StreamPlayerConfig is the audio format the server is about to stream.
type StreamPlayerConfig struct {
	Codec       string `json:"codec"`
	SampleRate  uint32 `json:"sample_rate"`
	Channels    uint8  `json:"channels"`
	BitDepth    uint8  `json:"bit_depth"`
	CodecHeader string `json:"codec_header,omitempty"`
}

// StreamArtworkConfig names the artwork channels about to be populated.
type StreamArtworkConfig struct {
	Channels []uint8 `json:"channels"`
}

// StreamVisualizerConfig carries visualizer stream parameters. Left empty;
// no visualizer renderer is implemented in this client.
type StreamVisualizerConfig struct{}

// StreamStart notifies the client that one or more role streams are about
// to begin. Each field is present only for roles this session activated.
type StreamStart struct {
	Player     *StreamPlayerConfig     `json:"player,omitempty"`
	Artwork    *StreamArtworkConfig    `json:"artwork,omitempty"`
	Visualizer *StreamVisualizerConfig `json:"visualizer,omitempty"`
}

// StreamEnd ends streams for the named roles (all roles if Roles is empty).
type StreamEnd struct {
	Roles []string `json:"roles,omitempty"`
}

// StreamClear instructs the client to flush buffered data for the named
// roles without ending the stream (e.g. on seek).
type StreamClear struct {
	Roles []string `json:"roles,omitempty"`
}

// StreamRequestFormat lets the client ask the server for a specific audio
// format ahead of the next stream/start.
type StreamRequestFormat struct {
	Codec      string `json:"codec"`
	SampleRate uint32 `json:"sample_rate"`
	Channels   uint8  `json:"channels"`
	BitDepth   uint8  `json:"bit_depth"`
}

// GroupUpdate reports a change in the playback group this client belongs
// to: membership, name, or transport state.
type GroupUpdate struct {
	GroupID       string        `json:"group_id"`
	GroupName     string        `json:"group_name,omitempty"`
	PlaybackState PlaybackState `json:"playback_state,omitempty"`
	Repeat        RepeatMode    `json:"repeat,omitempty"`
}

// GoodbyeReason explains why the session is ending.
type GoodbyeReason string

const (
	GoodbyeAnotherServer GoodbyeReason = "another_server"
	GoodbyeShutdown      GoodbyeReason = "shutdown"
	GoodbyeRestart       GoodbyeReason = "restart"
	GoodbyeUserRequest   GoodbyeReason = "user_request"
)

// ClientGoodbye is sent before a graceful disconnect.
type ClientGoodbye struct {
	Reason GoodbyeReason `json:"reason"`
}
