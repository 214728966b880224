package wasmhost

import (
	"context"
	"os"
	"testing"

	"github.com/playmesh/plugbridge/abi"
)

func TestLoadRejectsInvalidModule(t *testing.T) {
	ctx := context.Background()
	rt := NewRuntime(ctx)
	defer rt.Close(ctx)

	if _, err := rt.Load(ctx, []byte("not a wasm module"), "bad"); err == nil {
		t.Fatalf("garbage module accepted")
	}
}

// TestLoadGuestModule drives a real guest end to end. The fixture is
// built out of tree; skip when it is absent.
func TestLoadGuestModule(t *testing.T) {
	data, err := os.ReadFile("testdata/nim.wasm")
	if err != nil {
		t.Skipf("guest fixture not available: %v", err)
	}

	ctx := context.Background()
	rt := NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Load(ctx, data, "nim")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	m := mod.Methods()

	g := &abi.Game{Methods: m}
	if code := m.Create(g, &abi.GameInit{Kind: abi.GameInitDefault}); !code.IsOK() {
		t.Fatalf("create failed: %s: %s", code, m.GetLastError(g))
	}
	defer m.Destroy(g)

	view, code := m.ExportState(g, abi.PlayerNone, nil)
	if !code.IsOK() {
		t.Fatalf("export state failed: %s", code)
	}
	if string(view) != "A 21" {
		t.Fatalf("got state %q", view)
	}
}
