package host_test

import (
	"testing"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
	"github.com/playmesh/plugbridge/examples/nim"
	"github.com/playmesh/plugbridge/host"
)

func TestCreateFailureIsStructured(t *testing.T) {
	_, err := host.New(nim.Methods(), abi.StandardInit("bad-options", ""))
	if err == nil {
		t.Fatalf("create should have failed")
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("got %T, want *errors.Error", err)
	}
	if e.Kind != errors.KindInvalidInput {
		t.Fatalf("got kind %s", e.Kind)
	}
	if e.Detail == "" {
		t.Fatalf("last-error message not carried into the error")
	}
}

func TestIllegalMoveError(t *testing.T) {
	d, err := host.NewDefault(nim.Methods())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer d.Close()

	err = d.IsLegal(2, abi.Sync(abi.NewMoveCode(1)))
	if err == nil {
		t.Fatalf("player 2 is not to move")
	}
	if errors.CodeOf(err) != abi.ErrInvalidInput {
		t.Fatalf("got code %s", errors.CodeOf(err))
	}
}

func TestMoveStringRoundTrip(t *testing.T) {
	d, err := host.NewDefault(nim.Methods())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer d.Close()

	mov, err := d.ParseMove(1, "2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	str, err := d.MoveString(1, mov)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if str != "2" {
		t.Fatalf("got %q, want \"2\"", str)
	}
}

func TestUnsupportedFeatures(t *testing.T) {
	d, err := host.NewDefault(nim.Methods())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer d.Close()

	if _, err := d.RandomMove(1); err == nil {
		t.Fatalf("random move should be unsupported")
	}
	if err := d.Redact(nil); err == nil {
		t.Fatalf("redact should be unsupported")
	}
}

func TestSizerExposed(t *testing.T) {
	d, err := host.NewDefault(nim.Methods())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer d.Close()

	s := d.Sizer()
	if s.PlayerCount != 2 || s.MaxMoves != 3 {
		t.Fatalf("got sizer %#v", s)
	}
}
