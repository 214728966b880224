package event_test

import (
	"testing"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/event"
)

func TestDecodeVariants(t *testing.T) {
	methods := &abi.GameMethods{GameName: "Nim"}

	v := event.Decode(&abi.EventAny{Type: abi.EventGameLoadMethods, Methods: methods})
	load, ok := v.(event.GameLoadMethods)
	if !ok {
		t.Fatalf("got %T, want GameLoadMethods", v)
	}
	if load.Methods != methods {
		t.Fatalf("methods pointer not carried through")
	}

	if _, ok := event.Decode(&abi.EventAny{Type: abi.EventGameUnload}).(event.GameUnload); !ok {
		t.Fatalf("unload did not decode")
	}

	state := "A 21"
	v = event.Decode(&abi.EventAny{Type: abi.EventGameState, State: &state})
	st, ok := v.(event.GameState)
	if !ok || st.State == nil || *st.State != "A 21" {
		t.Fatalf("state did not decode: %#v", v)
	}

	v = event.Decode(&abi.EventAny{Type: abi.EventType(999)})
	if _, ok := v.(event.Unknown); !ok {
		t.Fatalf("unknown type decoded as %T", v)
	}
}

func TestDecodeGameMove(t *testing.T) {
	ev := abi.EventAny{
		Type:   abi.EventGameMove,
		Player: 2,
		Move: abi.MoveWireSync{
			MD:      abi.MoveDataWire{Code: 3},
			SyncCtr: 7,
		},
	}
	mv, ok := event.Decode(&ev).(event.GameMove)
	if !ok {
		t.Fatalf("move did not decode")
	}
	if mv.Player != 2 || mv.Data.SyncCtr != 7 {
		t.Fatalf("got player %d sync %d", mv.Player, mv.Data.SyncCtr)
	}
	code, ok := mv.Data.MD.Code()
	if !ok || code != 3 {
		t.Fatalf("got move %v", mv.Data.MD)
	}
}

func TestNewGameMoveOwnsPayload(t *testing.T) {
	payload := []byte{1, 2, 3}
	ev := event.NewGameMove(1, abi.Sync(abi.NewBigMove(payload)))

	payload[0] = 9
	md := ev.Move.MD.Decode()
	big, ok := md.Big()
	if !ok || big[0] != 1 {
		t.Fatalf("event borrows caller storage: %v", big)
	}
}

func TestQueuePushDrain(t *testing.T) {
	var q abi.EventQueue
	ev := event.NewGameState("B 18")
	q.Push(&ev)
	q.Push(&ev)

	if q.Len() != 2 {
		t.Fatalf("got len %d, want 2", q.Len())
	}
	drained := q.Drain()
	if len(drained) != 2 {
		t.Fatalf("drained %d events", len(drained))
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty after drain")
	}
	if drained[0].State == nil || *drained[0].State != "B 18" {
		t.Fatalf("payload lost in queue")
	}
}
