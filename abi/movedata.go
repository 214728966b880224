package abi

import "bytes"

// MoveDataWire is the boundary representation of a move value. The
// discriminant is the nilness of Data: a nil slice means the move is the
// fixed Code, a non-nil slice (including a non-nil empty one) means the
// move is the variable-length payload. Implementers never construct this
// type directly; Decode and MoveData.Encode are the only translation
// points.
type MoveDataWire struct {
	Code MoveCode
	Data []byte
}

// Decode converts the wire value into the safe tagged representation.
// Variable payloads are borrowed, not copied; the result is only valid
// as long as the wire value's backing storage.
func (w MoveDataWire) Decode() MoveData {
	if w.Data == nil {
		return NewMoveCode(w.Code)
	}
	return NewBigMove(w.Data)
}

// MoveWireSync pairs a wire move value with its synchronization counter.
type MoveWireSync struct {
	MD      MoveDataWire
	SyncCtr uint64
}

// Decode converts the wire pair into the safe tagged representation.
func (w MoveWireSync) Decode() MoveDataSync {
	return MoveDataSync{MD: w.MD.Decode(), SyncCtr: w.SyncCtr}
}

// MoveData is the tagged variant all bridge code operates on: either a
// fixed move code or a variable-length byte payload.
type MoveData struct {
	code  MoveCode
	big   []byte
	fixed bool // true when the value is a fixed code
}

// NewMoveCode returns a fixed-code move value.
func NewMoveCode(code MoveCode) MoveData {
	return MoveData{code: code, fixed: true}
}

// NewBigMove returns a variable-length move value borrowing b. A nil b
// is normalized to a non-nil empty payload so that the zero-length big
// move stays distinguishable from a fixed code on the wire.
func NewBigMove(b []byte) MoveData {
	if b == nil {
		b = []byte{}
	}
	return MoveData{big: b}
}

// Code returns the fixed move code, if the value holds one.
func (m MoveData) Code() (MoveCode, bool) {
	if !m.fixed {
		return MoveNone, false
	}
	return m.code, true
}

// Big returns the variable-length payload, if the value holds one.
func (m MoveData) Big() ([]byte, bool) {
	if m.fixed {
		return nil, false
	}
	return m.big, true
}

// IsBig reports whether the value is a variable-length move.
func (m MoveData) IsBig() bool { return !m.fixed }

// Encode produces the wire representation. Fixed codes carry a nil
// payload; variable moves carry a non-nil payload even when empty. The
// payload is borrowed from m, so the caller owns its lifetime.
func (m MoveData) Encode() MoveDataWire {
	if m.fixed {
		return MoveDataWire{Code: m.code}
	}
	b := m.big
	if b == nil {
		b = []byte{}
	}
	return MoveDataWire{Data: b}
}

// Clone returns a storage-independent copy of m.
func (m MoveData) Clone() MoveData {
	if m.fixed {
		return m
	}
	return NewBigMove(bytes.Clone(m.big))
}

// Equal reports whether two move values have the same tag and content.
func (m MoveData) Equal(o MoveData) bool {
	if m.fixed != o.fixed {
		return false
	}
	if m.fixed {
		return m.code == o.code
	}
	return bytes.Equal(m.big, o.big)
}

// MoveDataSync pairs a safe move value with its synchronization counter.
type MoveDataSync struct {
	MD      MoveData
	SyncCtr uint64
}

// Sync wraps a move value with the default synchronization counter.
func Sync(md MoveData) MoveDataSync {
	return MoveDataSync{MD: md, SyncCtr: SyncCtrDefault}
}

// Encode produces the wire representation of the pair.
func (m MoveDataSync) Encode() MoveWireSync {
	return MoveWireSync{MD: m.MD.Encode(), SyncCtr: m.SyncCtr}
}
