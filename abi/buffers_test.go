package abi

import "testing"

func TestStrBufBoundedOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on overflow")
		}
	}()
	b := NewStrBuf(4) // usable capacity 3
	b.WriteString("abcd")
}

func TestStrBufBoundedFitsCapacity(t *testing.T) {
	b := NewStrBuf(4)
	if _, err := b.WriteString("abc"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if b.String() != "abc" {
		t.Fatalf("got %q", b.String())
	}
}

func TestStrBufZeroSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on zero size")
		}
	}()
	NewStrBuf(0)
}

func TestGrowStrBufGrows(t *testing.T) {
	b := NewGrowStrBuf()
	for i := 0; i < 100; i++ {
		b.WriteString("x")
	}
	if b.Len() != 100 {
		t.Fatalf("got len %d, want 100", b.Len())
	}
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("reset did not clear")
	}
}

func TestOutVecBoundedOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on overflow")
		}
	}()
	v := NewOutVec[PlayerID](1)
	v.Push(1)
	v.Push(2)
}

func TestOutVecReuse(t *testing.T) {
	v := NewOutVec[PlayerID](2)
	v.Push(1)
	v.Push(2)
	v.Reset()
	v.Push(3)
	items := v.Items()
	if len(items) != 1 || items[0] != 3 {
		t.Fatalf("got %v after reuse", items)
	}
}

func TestBufSizerValidate(t *testing.T) {
	s := BufSizer{StateStr: 8, MoveStr: 4}
	s.Validate(GameFeatureFlags{}) // must not panic

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for zero options size")
		}
	}()
	s.Validate(GameFeatureFlags{Options: true})
}
