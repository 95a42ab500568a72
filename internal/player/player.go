// ABOUTME: Player orchestrator wiring transport, state machine, decoder, scheduler, and output
// ABOUTME: Owns the session lifecycle: handshake, clock sync, stream handling, and clean shutdown
package player

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Sendspin/sendspin-go/internal/artwork"
	"github.com/Sendspin/sendspin-go/internal/config"
	"github.com/Sendspin/sendspin-go/internal/discovery"
	"github.com/Sendspin/sendspin-go/internal/scheduler"
	"github.com/Sendspin/sendspin-go/internal/statemachine"
	"github.com/Sendspin/sendspin-go/internal/statusui"
	"github.com/Sendspin/sendspin-go/internal/transport"
	"github.com/Sendspin/sendspin-go/internal/version"
	"github.com/Sendspin/sendspin-go/pkg/audio"
	"github.com/Sendspin/sendspin-go/pkg/audio/decode"
	"github.com/Sendspin/sendspin-go/pkg/audio/output"
	"github.com/Sendspin/sendspin-go/pkg/protocol"
	syncpkg "github.com/Sendspin/sendspin-go/pkg/sync"
)

// ErrKind classifies a failure per the error handling design: fatal kinds
// propagate to the top-level exit, recoverable kinds are absorbed where
// they're detected.
type ErrKind int

const (
	ErrKindConnection ErrKind = iota
	ErrKindProtocol
	ErrKindDecode
	ErrKindOutput
	ErrKindSync
	ErrKindUnknownBinary
)

func (k ErrKind) fatal() bool {
	switch k {
	case ErrKindConnection, ErrKindProtocol, ErrKindOutput:
		return true
	default:
		return false
	}
}

// Error wraps an underlying error with its behavioral kind.
type Error struct {
	Kind ErrKind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

const (
	syncInterval    = 5 * time.Second
	pollPeriod      = time.Millisecond
	outputOpenRetry = time.Second
)

// Config holds the tunables the orchestrator and its collaborators read,
// mirroring internal/config.Config's normative field names.
type Config struct {
	ServerURL     string
	Name          string
	MinLeadMs     int
	StartBufferMs int
	LogLead       bool
	TUI           bool
}

// Player owns one session's worth of collaborators and goroutines.
type Player struct {
	cfg Config

	conn  *transport.Conn
	sm    *statemachine.StateMachine
	clock *syncpkg.Clock
	sched *scheduler.Scheduler
	out   output.Output
	art   *artwork.Sink
	ui    *statusui.Program

	decoder    decode.Decoder
	decoderMu  sync.Mutex
	lastFormat audio.Format

	clientID string

	outputOpened      atomic.Bool
	lastOutputAttempt time.Time

	nextContinuousDeadline time.Time
	prebufferAccumulated   int64 // microseconds
	playbackStarted        atomic.Bool

	stats struct {
		received atomic.Int64
		played   atomic.Int64
		dropped  atomic.Int64
	}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	firstDecodeFailureLogged atomic.Bool
}

// New builds a Player ready to Start. The transport is not dialed until
// Start is called.
func New(cfg Config) *Player {
	return &Player{
		cfg:      cfg,
		sm:       statemachine.New(),
		clock:    syncpkg.New(),
		sched:    scheduler.New(),
		clientID: uuid.New().String(),
	}
}

// Start dials the server, runs the handshake, and blocks until the session
// ends (clean close or fatal error). It returns a non-nil *Error for any
// fatal condition; a clean client/goodbye or local Stop returns nil.
func (p *Player) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)
	defer p.cancel()

	sink, err := artwork.NewSink()
	if err != nil {
		log.Warnf("player: artwork sink unavailable: %v", err)
	} else {
		p.art = sink
	}

	if p.cfg.TUI {
		p.ui = statusui.New()
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if err := p.ui.Run(); err != nil {
				log.Warnf("player: status ui exited: %v", err)
			}
			p.cancel()
		}()
		p.wg.Add(1)
		go p.handleUIEvents()
	}

	serverURL, err := p.resolveServerURL()
	if err != nil {
		return &Error{Kind: ErrKindConnection, Err: err}
	}

	conn, err := transport.Dial(serverURL)
	if err != nil {
		return &Error{Kind: ErrKindConnection, Err: err}
	}
	p.conn = conn
	defer p.conn.Close()

	_ = p.sm.Apply(statemachine.EventTransportOpen)

	if err := p.handshake(); err != nil {
		return err
	}

	p.wg.Add(1)
	go p.clockSyncLoop()

	p.wg.Add(1)
	go p.playbackDriver()

	err = p.readLoop()

	p.cancel()
	p.wg.Wait()

	if p.decoder != nil {
		_ = p.decoder.Close()
	}
	if p.out != nil {
		_ = p.out.Close()
	}
	if p.art != nil {
		_ = p.art.Cleanup()
	}

	return err
}

// Stop requests a graceful shutdown: client/goodbye, then transport close.
func (p *Player) Stop() {
	if p.conn != nil {
		goodbye, err := protocol.Encode(protocol.TypeClientGoodbye, protocol.ClientGoodbye{
			Reason: protocol.GoodbyeUserRequest,
		})
		if err == nil {
			_ = p.conn.WriteJSON(goodbye)
		}
		_ = p.conn.Close()
	}
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Player) resolveServerURL() (string, error) {
	if p.cfg.ServerURL != "" {
		return p.cfg.ServerURL, nil
	}

	mgr := discovery.NewManager(discovery.Config{ServiceName: p.displayName()})
	if err := mgr.Browse(); err != nil {
		return "", fmt.Errorf("discovery: %w", err)
	}
	defer mgr.Stop()

	select {
	case server := <-mgr.Servers():
		return fmt.Sprintf("ws://%s:%d%s", server.Host, server.Port, config.WebSocketPath), nil
	case <-time.After(10 * time.Second):
		return "", fmt.Errorf("discovery: no server found within 10s and --server was not set")
	}
}

func (p *Player) displayName() string {
	if p.cfg.Name != "" {
		return p.cfg.Name
	}
	host, err := os.Hostname()
	if err != nil {
		return "sendspin-player"
	}
	return host
}

// handshake drives client/hello -> server/hello -> client/state -> one
// initial client/time, per spec.md §6.
func (p *Player) handshake() error {
	hello := protocol.ClientHello{
		ClientID:       p.clientID,
		Name:           p.displayName(),
		Version:        1,
		SupportedRoles: []string{"player@v1", "artwork@v1"},
		DeviceInfo: &protocol.DeviceInfo{
			ProductName:     version.Product,
			Manufacturer:    version.Manufacturer,
			SoftwareVersion: version.Version,
		},
		PlayerV1Support: &protocol.PlayerV1Support{
			SupportedFormats: []protocol.AudioFormatSpec{
				{Codec: "pcm", Channels: 2, SampleRate: 44100, BitDepth: 16},
				{Codec: "pcm", Channels: 2, SampleRate: 44100, BitDepth: 24},
				{Codec: "pcm", Channels: 2, SampleRate: 48000, BitDepth: 16},
				{Codec: "pcm", Channels: 2, SampleRate: 48000, BitDepth: 24},
			},
			BufferCapacity:    32,
			SupportedCommands: []string{"play", "pause", "stop", "volume", "mute"},
		},
		ArtworkV1Support: &protocol.ArtworkV1Support{Channels: []uint8{0, 1, 2, 3}},
	}

	msg, err := protocol.Encode(protocol.TypeClientHello, hello)
	if err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		return &Error{Kind: ErrKindConnection, Err: err}
	}
	_ = p.sm.Apply(statemachine.EventClientHelloSent)

	isBinary, data, err := p.conn.ReadFrame()
	if err != nil {
		return &Error{Kind: ErrKindConnection, Err: err}
	}
	if isBinary {
		err := fmt.Errorf("player: expected server/hello, got a binary frame")
		_ = p.sm.Apply(statemachine.EventProtocolViolation)
		return &Error{Kind: ErrKindProtocol, Err: err}
	}

	env, err := protocol.Decode(data)
	if err != nil || env.Type != protocol.TypeServerHello {
		_ = p.sm.Apply(statemachine.EventProtocolViolation)
		return &Error{Kind: ErrKindProtocol, Err: fmt.Errorf("player: expected %s, got %q (decode err: %v)", protocol.TypeServerHello, env.Type, err)}
	}

	var serverHello protocol.ServerHello
	if err := env.DecodePayload(&serverHello); err != nil {
		_ = p.sm.Apply(statemachine.EventProtocolViolation)
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	if !rolesSubset(serverHello.ActiveRoles, hello.SupportedRoles) {
		_ = p.sm.Apply(statemachine.EventProtocolViolation)
		return &Error{Kind: ErrKindProtocol, Err: fmt.Errorf("player: server/hello active_roles %v is not a subset of advertised roles %v", serverHello.ActiveRoles, hello.SupportedRoles)}
	}
	_ = p.sm.Apply(statemachine.EventServerHelloValid)

	log.Infof("player: connected to %s (server_id=%s)", serverHello.Name, serverHello.ServerID)
	if p.ui != nil {
		connected := true
		p.ui.Send(statusui.StatusMsg{Connected: &connected, ServerName: serverHello.Name, Volume: p.currentVolume()})
	}

	state := protocol.ClientState{Player: &protocol.PlayerState{State: protocol.PlayerSyncStateSynchronized}}
	stateMsg, err := protocol.Encode(protocol.TypeClientState, state)
	if err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	if err := p.conn.WriteJSON(stateMsg); err != nil {
		return &Error{Kind: ErrKindConnection, Err: err}
	}

	return p.sendClientTime()
}

// rolesSubset reports whether every role in active is present in advertised.
func rolesSubset(active, advertised []string) bool {
	allowed := make(map[string]bool, len(advertised))
	for _, r := range advertised {
		allowed[r] = true
	}
	for _, r := range active {
		if !allowed[r] {
			return false
		}
	}
	return true
}

func (p *Player) sendClientTime() error {
	t1 := time.Now().UnixMicro()
	msg, err := protocol.Encode(protocol.TypeClientTime, protocol.ClientTime{ClientTransmitted: t1})
	if err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	return p.conn.WriteJSON(msg)
}

func (p *Player) clockSyncLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			if err := p.sendClientTime(); err != nil {
				log.Warnf("player: sync pinger: %v", err)
			}
		}
	}
}

// readLoop is the Reader task: drives the inbound transport, decodes
// envelopes or binary frames, and routes to the appropriate handler.
func (p *Player) readLoop() error {
	for {
		isBinary, data, err := p.conn.ReadFrame()
		if err != nil {
			if transport.IsUnexpectedClose(err) {
				return &Error{Kind: ErrKindConnection, Err: err}
			}
			_ = p.sm.Apply(statemachine.EventTransportClosed)
			return nil
		}

		if isBinary {
			p.handleBinaryFrame(data)
			continue
		}

		if err := p.handleTextFrame(data); err != nil {
			if e, ok := err.(*Error); ok && e.Kind.fatal() {
				return err
			}
			log.Warnf("player: %v", err)
		}
	}
}

func (p *Player) handleTextFrame(data []byte) error {
	env, err := protocol.Decode(data)
	if err != nil {
		_ = p.sm.Apply(statemachine.EventProtocolViolation)
		return &Error{Kind: ErrKindProtocol, Err: err}
	}

	switch env.Type {
	case protocol.TypeServerTime:
		return p.handleServerTime(env)
	case protocol.TypeStreamStart:
		return p.handleStreamStart(env)
	case protocol.TypeStreamEnd:
		_ = p.sm.Apply(statemachine.EventStreamEnd)
		p.sched.Flush()
		return nil
	case protocol.TypeStreamClear:
		_ = p.sm.Apply(statemachine.EventStreamClear)
		p.sched.Flush()
		return nil
	case protocol.TypeServerState:
		return p.handleServerState(env)
	case protocol.TypeServerCommand:
		return p.handleServerCommand(env)
	case protocol.TypeGroupUpdate:
		return p.handleGroupUpdate(env)
	case protocol.TypeClientGoodbye:
		_ = p.sm.Apply(statemachine.EventClientGoodbye)
		return nil
	default:
		// Unknown types are logged, never promoted to fatal (spec.md §4.4).
		log.Debugf("player: %v", &protocol.UnknownMessageError{Type: env.Type})
		return nil
	}
}

func (p *Player) handleServerTime(env protocol.Message) error {
	var st protocol.ServerTime
	if err := env.DecodePayload(&st); err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	t4 := time.Now().UnixMicro()
	p.clock.Update(st.ClientTransmitted, st.ServerReceived, st.ServerTransmitted, t4)
	_ = p.sm.Apply(statemachine.EventServerTime)

	if p.ui != nil {
		snap := p.clock.Snapshot()
		rtt := int64(0)
		if snap.RTTMicros != nil {
			rtt = *snap.RTTMicros
		}
		p.ui.Send(statusui.StatusMsg{SyncRTT: rtt, SyncQuality: p.clock.Quality()})
	}
	return nil
}

func (p *Player) handleStreamStart(env protocol.Message) error {
	var start protocol.StreamStart
	if err := env.DecodePayload(&start); err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	_ = p.sm.Apply(statemachine.EventStreamStart)
	p.sched.Flush()

	if start.Player != nil {
		format := audio.Format{
			Codec:      start.Player.Codec,
			SampleRate: int(start.Player.SampleRate),
			Channels:   int(start.Player.Channels),
			BitDepth:   int(start.Player.BitDepth),
		}
		if start.Player.CodecHeader != "" {
			format.CodecHeader = []byte(start.Player.CodecHeader)
		}

		dec, err := decode.NewPCM(format)
		if err != nil {
			return &Error{Kind: ErrKindDecode, Err: err}
		}

		p.decoderMu.Lock()
		if p.decoder != nil {
			_ = p.decoder.Close()
		}
		p.decoder = dec
		p.lastFormat = format
		p.decoderMu.Unlock()

		p.resetPrebuffer()

		if err := p.ensureOutput(format); err != nil {
			if p.outputOpened.Load() {
				return &Error{Kind: ErrKindOutput, Err: err}
			}
			log.Warnf("player: output open failed, will retry on next buffer: %v", err)
		}

		if p.ui != nil {
			p.ui.Send(statusui.StatusMsg{
				Codec: format.Codec, SampleRate: format.SampleRate,
				Channels: format.Channels, BitDepth: format.BitDepth,
			})
		}
	}

	if start.Artwork != nil {
		log.Debugf("player: stream/start advertises artwork channels %v", start.Artwork.Channels)
	}

	return nil
}

func (p *Player) ensureOutput(format audio.Format) error {
	if p.out == nil {
		p.out = output.NewOto()
	}
	if err := p.out.Open(format.SampleRate, format.Channels, format.BitDepth); err != nil {
		return fmt.Errorf("player: open output: %w", err)
	}
	p.outputOpened.Store(true)
	return nil
}

// retryOutputIfNeeded lazily reopens the output device after an earlier
// open failure, rate-limited so a persistently unavailable device doesn't
// spin a retry on every chunk. A failed retry is only logged; an open
// failure becomes fatal in handleStreamStart once an earlier Open has
// succeeded. Whether any buffer has been written is not tracked.
func (p *Player) retryOutputIfNeeded(format audio.Format) {
	if p.outputOpened.Load() {
		return
	}
	if !p.lastOutputAttempt.IsZero() && time.Since(p.lastOutputAttempt) < outputOpenRetry {
		return
	}
	p.lastOutputAttempt = time.Now()
	if err := p.ensureOutput(format); err != nil {
		log.Debugf("player: output still unavailable: %v", err)
	}
}

func (p *Player) resetPrebuffer() {
	p.nextContinuousDeadline = time.Now().Add(time.Duration(p.cfg.StartBufferMs) * time.Millisecond)
	atomic.StoreInt64(&p.prebufferAccumulated, 0)
	p.playbackStarted.Store(false)
}

func (p *Player) handleServerState(env protocol.Message) error {
	var state protocol.ServerState
	if err := env.DecodePayload(&state); err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	if state.Player != nil && p.out != nil {
		if state.Player.Volume != nil {
			p.out.SetVolume(int(*state.Player.Volume))
		}
		if state.Player.Muted != nil {
			p.out.SetMuted(*state.Player.Muted)
		}
		if p.ui != nil {
			p.ui.Send(statusui.StatusMsg{Volume: p.currentVolume()})
		}
	}
	return nil
}

func (p *Player) handleServerCommand(env protocol.Message) error {
	var cmd protocol.ServerCommand
	if err := env.DecodePayload(&cmd); err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	if cmd.Player == nil || p.out == nil {
		return nil
	}
	if cmd.Player.Volume != nil {
		p.out.SetVolume(int(*cmd.Player.Volume))
	}
	if cmd.Player.Mute != nil {
		p.out.SetMuted(*cmd.Player.Mute)
	}
	switch cmd.Player.Command {
	case "stop", "pause":
		p.sched.Flush()
	}
	if p.ui != nil {
		p.ui.Send(statusui.StatusMsg{Volume: p.currentVolume()})
	}
	return nil
}

func (p *Player) handleGroupUpdate(env protocol.Message) error {
	var update protocol.GroupUpdate
	if err := env.DecodePayload(&update); err != nil {
		return &Error{Kind: ErrKindProtocol, Err: err}
	}
	if p.ui != nil && update.GroupName != "" {
		p.ui.Send(statusui.StatusMsg{Title: update.GroupName})
	}
	return nil
}

func (p *Player) currentVolume() int {
	if p.out == nil {
		return 0
	}
	return p.out.GetVolume()
}

// handleBinaryFrame demuxes one binary frame and dispatches by channel.
func (p *Player) handleBinaryFrame(data []byte) {
	frame, err := protocol.DecodeBinaryFrame(data)
	if err != nil {
		log.Warnf("player: %v", err)
		return
	}

	switch {
	case frame.Audio != nil:
		p.handleAudioChunk(*frame.Audio)
	case frame.Artwork != nil:
		p.handleArtworkChunk(*frame.Artwork)
	case frame.Visualizer != nil:
		log.Debugf("player: discarding visualizer frame (%d bytes)", len(frame.Visualizer.Data))
	case frame.Unknown != nil:
		log.Debugf("player: unknown binary type 0x%02x (%d bytes)", frame.Unknown.TypeID, len(frame.Unknown.Payload))
	}
}

// handleAudioChunk decodes and enqueues one PCM chunk per spec.md §4.8.
func (p *Player) handleAudioChunk(chunk protocol.AudioChunk) {
	p.stats.received.Add(1)

	p.decoderMu.Lock()
	dec := p.decoder
	p.decoderMu.Unlock()
	if dec == nil {
		log.Debugf("player: audio chunk before stream/start, dropping")
		p.stats.dropped.Add(1)
		return
	}

	samples, err := dec.Decode(chunk.Data)
	if err != nil {
		p.stats.dropped.Add(1)
		if !p.firstDecodeFailureLogged.Swap(true) {
			log.Warnf("player: decode failure: %v (first 16 bytes: %s)", err, hexPreview(chunk.Data))
		} else {
			log.Debugf("player: decode failure: %v", err)
		}
		return
	}

	format, ok := p.currentFormat()
	if !ok {
		p.stats.dropped.Add(1)
		return
	}

	p.retryOutputIfNeeded(format)

	frames := len(samples) / max(format.Channels, 1)
	chunkDurationMicros := int64(frames) * 1_000_000 / int64(format.SampleRate)

	now := time.Now()
	var deadline time.Time
	if local, synced := p.clock.ServerToLocal(chunk.Timestamp); synced {
		deadline = local
	} else {
		if p.nextContinuousDeadline.IsZero() {
			p.nextContinuousDeadline = now.Add(time.Duration(p.cfg.StartBufferMs) * time.Millisecond)
		}
		deadline = p.nextContinuousDeadline
		p.nextContinuousDeadline = p.nextContinuousDeadline.Add(time.Duration(chunkDurationMicros) * time.Microsecond)
	}

	minLead := time.Duration(p.cfg.MinLeadMs) * time.Millisecond
	if deadline.Before(now.Add(minLead)) {
		deadline = now.Add(minLead)
	}

	accumulated := atomic.AddInt64(&p.prebufferAccumulated, chunkDurationMicros)
	if accumulated >= int64(p.cfg.StartBufferMs)*1000 {
		p.playbackStarted.Store(true)
	}

	if p.cfg.LogLead {
		log.Debugf("player: chunk ts=%d deadline_lead=%s", chunk.Timestamp, time.Until(deadline))
	}

	p.sched.Schedule(audio.Buffer{
		Timestamp: chunk.Timestamp,
		PlayAt:    deadline,
		Samples:   samples,
		Format:    format,
	})
}

func (p *Player) currentFormat() (audio.Format, bool) {
	p.decoderMu.Lock()
	defer p.decoderMu.Unlock()
	if p.decoder == nil {
		return audio.Format{}, false
	}
	return p.lastFormat, p.lastFormat.SampleRate > 0
}

func (p *Player) handleArtworkChunk(chunk protocol.ArtworkChunk) {
	if p.art == nil {
		return
	}
	if err := p.art.Update(chunk.Channel, chunk.Data); err != nil {
		log.Warnf("player: artwork update: %v", err)
		return
	}
	if p.ui != nil {
		p.ui.Send(statusui.StatusMsg{ArtworkPath: p.art.CurrentPath(chunk.Channel)})
	}
}

// playbackDriver is the dedicated playback-driver task: polls the
// scheduler at pollPeriod and writes ready buffers to the output.
func (p *Player) playbackDriver() {
	defer p.wg.Done()
	ticker := time.NewTicker(pollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			buf, ok := p.sched.NextReady()
			if !ok {
				continue
			}
			if p.out == nil {
				p.stats.dropped.Add(1)
				continue
			}
			if err := p.out.Write(buf.Samples); err != nil {
				log.Warnf("player: output write: %v", err)
				continue
			}
			p.stats.played.Add(1)

			if p.ui != nil && p.stats.played.Load()%20 == 0 {
				p.publishStats()
			}
		}
	}
}

func (p *Player) publishStats() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	log.Debugf("player: heap_alloc=%d received=%d played=%d dropped=%d",
		mem.Alloc, p.stats.received.Load(), p.stats.played.Load(), p.stats.dropped.Load())

	p.ui.Send(statusui.StatusMsg{
		Received:    p.stats.received.Load(),
		Played:      p.stats.played.Load(),
		Dropped:     p.stats.dropped.Load(),
		BufferDepth: p.sched.Len(),
	})
}

func (p *Player) handleUIEvents() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case change, ok := <-p.ui.Changes():
			if !ok {
				return
			}
			if p.out != nil {
				p.out.SetVolume(change.Volume)
				p.out.SetMuted(change.Muted)
			}
			p.sendVolumeCommand(change)
		case <-p.ui.QuitRequested():
			p.Stop()
			return
		}
	}
}

func (p *Player) sendVolumeCommand(change statusui.VolumeChangeMsg) {
	volume := uint8(change.Volume)
	cmd := protocol.ClientCommand{Player: &protocol.PlayerCommand{
		Command: "volume",
		Volume:  &volume,
		Mute:    &change.Muted,
	}}
	msg, err := protocol.Encode(protocol.TypeClientCommand, cmd)
	if err != nil {
		log.Warnf("player: encode volume command: %v", err)
		return
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		log.Warnf("player: send volume command: %v", err)
	}
}

func hexPreview(data []byte) string {
	n := len(data)
	if n > 16 {
		n = 16
	}
	return hex.EncodeToString(data[:n])
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
