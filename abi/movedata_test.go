package abi

import (
	"bytes"
	"testing"
)

func TestMoveDataWireDecodeFixed(t *testing.T) {
	w := MoveDataWire{Code: 42}
	md := w.Decode()
	if md.IsBig() {
		t.Fatalf("fixed code decoded as big move")
	}
	code, ok := md.Code()
	if !ok || code != 42 {
		t.Fatalf("got code %d ok=%v, want 42", code, ok)
	}
}

func TestMoveDataWireDecodeBig(t *testing.T) {
	payload := []byte{1, 2, 3}
	md := MoveDataWire{Data: payload}.Decode()
	if !md.IsBig() {
		t.Fatalf("payload decoded as fixed code")
	}
	big, ok := md.Big()
	if !ok || !bytes.Equal(big, payload) {
		t.Fatalf("got payload %v, want %v", big, payload)
	}
}

func TestZeroLengthBigMoveStaysBig(t *testing.T) {
	// A non-nil empty payload is a big move; only nil means fixed code.
	w := MoveDataWire{Data: []byte{}}
	if md := w.Decode(); !md.IsBig() {
		t.Fatalf("zero-length payload decoded as fixed code")
	}

	rt := NewBigMove(nil).Encode()
	if rt.Data == nil {
		t.Fatalf("big move encoded with nil payload")
	}
	if !rt.Decode().IsBig() {
		t.Fatalf("round-tripped zero-length big move lost its tag")
	}
}

func TestMoveDataEncodeRoundTrip(t *testing.T) {
	for _, md := range []MoveData{
		NewMoveCode(0),
		NewMoveCode(MoveNone),
		NewBigMove([]byte("payload")),
		NewBigMove([]byte{}),
	} {
		got := md.Encode().Decode()
		if !got.Equal(md) {
			t.Fatalf("round trip changed value: %#v -> %#v", md, got)
		}
	}
}

func TestMoveDataCloneIndependence(t *testing.T) {
	payload := []byte{1, 2, 3}
	md := NewBigMove(payload)
	cp := md.Clone()

	payload[0] = 9
	big, _ := cp.Big()
	if big[0] != 1 {
		t.Fatalf("clone shares storage with original")
	}
	if !md.Equal(NewBigMove([]byte{9, 2, 3})) {
		t.Fatalf("original no longer borrows caller storage")
	}
}

func TestMoveDataEqual(t *testing.T) {
	if NewMoveCode(1).Equal(NewBigMove([]byte{1})) {
		t.Fatalf("fixed code equal to big move")
	}
	if !NewBigMove([]byte{}).Equal(NewBigMove(nil)) {
		t.Fatalf("empty big moves not equal")
	}
	if NewMoveCode(1).Equal(NewMoveCode(2)) {
		t.Fatalf("distinct codes equal")
	}
}

func TestSyncDefaultCounter(t *testing.T) {
	s := Sync(NewMoveCode(7))
	if s.SyncCtr != SyncCtrDefault {
		t.Fatalf("got sync counter %d, want %d", s.SyncCtr, SyncCtrDefault)
	}
	w := s.Encode()
	if w.SyncCtr != SyncCtrDefault || w.MD.Code != 7 {
		t.Fatalf("encode lost fields: %#v", w)
	}
}
