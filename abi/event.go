package abi

import "sync"

// EventType tags the lifecycle event union.
type EventType uint32

const (
	EventNone EventType = iota
	EventGameLoadMethods
	EventGameUnload
	EventGameState
	EventGameMove
)

// EventAny is the wire representation of one lifecycle event. Which
// payload fields are meaningful depends on Type; payload pointers are
// borrowed and only valid for the duration of a single dispatch call
// unless the event was built by an owning constructor.
type EventAny struct {
	Type     EventType
	ClientID uint32
	LobbyID  uint32

	// EventGameLoadMethods payload.
	Methods  *GameMethods
	InitInfo GameInit

	// EventGameState payload. Nil means "no state".
	State *string

	// EventGameMove payload.
	Player PlayerID
	Move   MoveWireSync
}

// EventQueue is the host-owned, one-way outbound queue. Push copies the
// event value; the bridge provides no receive path, inbound events
// arrive exclusively through the process-event entry point.
type EventQueue struct {
	mu     sync.Mutex
	events []EventAny
}

// Push appends a copy of the event.
func (q *EventQueue) Push(ev *EventAny) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, *ev)
}

// Drain removes and returns all queued events in push order.
func (q *EventQueue) Drain() []EventAny {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
