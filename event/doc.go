// Package event decodes the host's lifecycle event union into safe
// variants and builds owned events for the outbound queue.
//
// Decoding is read-only: variants borrow the wire event's payload and
// are only valid for the duration of a single dispatch call. The owned
// constructors (NewGameMove, NewGameState) deep-copy their payloads so
// the produced event outlives the caller's buffers.
package event
