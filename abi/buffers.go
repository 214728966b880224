package abi

import "fmt"

// StrBuf is an output buffer for strings crossing the boundary.
//
// In caller-supplied mode (NewStrBuf) the capacity is fixed; writing past
// it is a contract violation by the implementer and panics rather than
// corrupting host memory. In bridge-owned mode (NewGrowStrBuf) the buffer
// grows as needed and its contents stay valid until the next call that
// writes the same buffer slot.
//
// StrBuf implements io.Writer so implementers can fmt.Fprintf into it.
type StrBuf struct {
	buf     []byte
	bounded bool
}

// NewStrBuf returns a caller-supplied buffer. The size covers the
// protocol's trailing terminator, so the usable capacity is size-1.
func NewStrBuf(size uint64) *StrBuf {
	if size == 0 {
		panic("abi: string buffer size must not be 0")
	}
	return &StrBuf{buf: make([]byte, 0, size-1), bounded: true}
}

// NewGrowStrBuf returns a bridge-owned growable buffer.
func NewGrowStrBuf() *StrBuf {
	return &StrBuf{}
}

// Write appends p. Exceeding a bounded buffer's capacity panics; the
// bridge must never write past the bound the host declared.
func (b *StrBuf) Write(p []byte) (int, error) {
	if b.bounded && len(b.buf)+len(p) > cap(b.buf) {
		panic(fmt.Sprintf(
			"abi: string buffer overflow: %d bytes into capacity %d",
			len(b.buf)+len(p), cap(b.buf),
		))
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s under the same capacity rules as Write.
func (b *StrBuf) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Len returns the number of bytes written since the last Reset.
func (b *StrBuf) Len() int { return len(b.buf) }

// Bytes returns the written contents. The view is valid until the next
// Reset or Write.
func (b *StrBuf) Bytes() []byte { return b.buf }

// String returns a copy of the written contents.
func (b *StrBuf) String() string { return string(b.buf) }

// Reset discards the contents, keeping the allocation for reuse.
func (b *StrBuf) Reset() { b.buf = b.buf[:0] }

// OutVec is an output array for fixed-size elements crossing the
// boundary. Like StrBuf it exists in a bounded caller-supplied flavor
// and a growable bridge-owned flavor.
type OutVec[T any] struct {
	items   []T
	bounded bool
}

// NewOutVec returns a caller-supplied vector with a fixed capacity.
func NewOutVec[T any](capacity int) *OutVec[T] {
	return &OutVec[T]{items: make([]T, 0, capacity), bounded: true}
}

// NewGrowVec returns a bridge-owned growable vector.
func NewGrowVec[T any]() *OutVec[T] {
	return &OutVec[T]{}
}

// Push appends one element. Exceeding a bounded vector's capacity is a
// contract violation (the implementer declared the bound in its sizer)
// and panics.
func (v *OutVec[T]) Push(x T) {
	if v.bounded && len(v.items) >= cap(v.items) {
		panic(fmt.Sprintf("abi: output vector overflow: capacity %d", cap(v.items)))
	}
	v.items = append(v.items, x)
}

// Len returns the number of elements pushed since the last Reset.
func (v *OutVec[T]) Len() int { return len(v.items) }

// Cap returns the declared capacity, or 0 for growable vectors.
func (v *OutVec[T]) Cap() int {
	if !v.bounded {
		return 0
	}
	return cap(v.items)
}

// Items returns the pushed elements. The view is valid until the next
// Reset or Push.
func (v *OutVec[T]) Items() []T { return v.items }

// Reset discards the contents, keeping the allocation for reuse.
func (v *OutVec[T]) Reset() { v.items = v.items[:0] }
