// ABOUTME: Protocol state machine for the Sendspin handshake and session lifecycle
// ABOUTME: Explicit states and named transitions so the current phase is directly inspectable
package statemachine

import "fmt"

// Phase is one node in the session's state graph.
type Phase string

const (
	Connecting          Phase = "connecting"
	AwaitingServerHello Phase = "awaiting_server_hello"
	Idle                Phase = "idle"
	Streaming           Phase = "streaming"
	Closed              Phase = "closed"
)

// Event is an input that may move the state machine between phases.
type Event string

const (
	EventTransportOpen     Event = "transport_open"
	EventClientHelloSent   Event = "client_hello_sent"
	EventServerHelloValid  Event = "server_hello_valid"
	EventProtocolViolation Event = "protocol_violation"
	EventStreamStart       Event = "stream_start"
	EventStreamEnd         Event = "stream_end"
	EventStreamClear       Event = "stream_clear"
	EventServerTime        Event = "server_time"
	EventTransportClosed   Event = "transport_closed"
	EventClientGoodbye     Event = "client_goodbye"
)

// ErrInvalidTransition reports an event that has no defined transition from
// the current phase.
type ErrInvalidTransition struct {
	From  Phase
	Event Event
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("statemachine: no transition for event %q from phase %q", e.Event, e.From)
}

// StateMachine drives the protocol phase graph from spec §4.4. It holds only
// the current phase: a format swap (stream/start while already streaming)
// and a flush-in-place (stream/clear) both leave it in Streaming and are not
// told apart here.
type StateMachine struct {
	phase Phase
}

// New returns a state machine in the initial Connecting phase.
func New() *StateMachine {
	return &StateMachine{phase: Connecting}
}

// Phase returns the current phase.
func (sm *StateMachine) Phase() Phase {
	return sm.phase
}

// Apply drives one transition. Transport close and client/goodbye are
// accepted from any phase; everything else follows the graph in §4.4
// exactly. An event with no defined transition from the current phase is an
// error and the phase is left unchanged. A caller that receives an
// unexpected message while AwaitingServerHello reports it as
// EventProtocolViolation, which closes the session.
func (sm *StateMachine) Apply(event Event) error {
	if event == EventTransportClosed || event == EventClientGoodbye {
		sm.phase = Closed
		return nil
	}

	switch sm.phase {
	case Connecting:
		if event == EventTransportOpen {
			sm.phase = Connecting // transport-open is implicit; hello send below moves on
			return nil
		}
		if event == EventClientHelloSent {
			sm.phase = AwaitingServerHello
			return nil
		}
	case AwaitingServerHello:
		if event == EventServerHelloValid {
			sm.phase = Idle
			return nil
		}
		if event == EventProtocolViolation {
			sm.phase = Closed
			return nil
		}
	case Idle:
		if event == EventStreamStart {
			sm.phase = Streaming
			return nil
		}
		if event == EventServerTime {
			return nil
		}
	case Streaming:
		switch event {
		case EventStreamEnd:
			sm.phase = Idle
			return nil
		case EventStreamStart, EventStreamClear:
			sm.phase = Streaming
			return nil
		case EventServerTime:
			return nil
		}
	case Closed:
		// terminal; any further event is a no-op rather than an error, since
		// cleanup paths may fire more than one closing event.
		return nil
	}

	return &ErrInvalidTransition{From: sm.phase, Event: event}
}
