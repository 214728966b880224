package frontend_test

import (
	"testing"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
	"github.com/playmesh/plugbridge/event"
	"github.com/playmesh/plugbridge/frontend"
)

type fakeCanvas struct {
	translateX, translateY float32
}

func (c *fakeCanvas) Translate(x, y float32) {
	c.translateX, c.translateY = x, y
}

type fakeSurface struct {
	canvas  fakeCanvas
	flushes int
}

func (s *fakeSurface) Canvas() abi.Canvas { return &s.canvas }
func (s *fakeSurface) Flush()             { s.flushes++ }

// viewer records what the bridge hands it.
type viewer struct {
	events  []event.Variant
	inputs  []abi.InputEvent
	renders int
	drew    bool
}

var _ frontend.Methods[*viewer] = (*viewer)(nil)

func (v *viewer) RuntimeOptsDisplay(ctx *frontend.Context) error { return nil }

func (v *viewer) ProcessEvent(ctx *frontend.Context, ev event.Variant) error {
	v.events = append(v.events, ev)
	return nil
}

func (v *viewer) ProcessInput(ctx *frontend.Context, ev abi.InputEvent) error {
	v.inputs = append(v.inputs, ev)
	return nil
}

func (v *viewer) Update(ctx *frontend.Context) error { return nil }

func (v *viewer) Render(ctx *frontend.Context) error {
	v.renders++
	v.drew = ctx.Canvas.Get() != nil
	return nil
}

func viewerMethods(t *testing.T) *abi.FrontendMethods {
	t.Helper()
	return frontend.BuildMethods[*viewer](frontend.Metadata{
		FrontendName: "Viewer",
		Version:      abi.Semver{Major: 0, Minor: 1, Patch: 0},
		Features:     abi.FrontendFeatureFlags{Options: true},
	}, func(opts any) (*viewer, error) {
		return &viewer{}, nil
	}, frontend.Hooks{
		IsGameCompatible: func(info frontend.GameInfo) error {
			if info.GameName == "unsupported" {
				return errors.Unsupported(errors.PhaseDispatch, info.GameName)
			}
			return nil
		},
		OptsCreate: func() (any, error) { return new(bool), nil },
	})
}

func newFrontend(t *testing.T, m *abi.FrontendMethods, dd *abi.DisplayData) *abi.Frontend {
	t.Helper()
	f := &abi.Frontend{Methods: m}
	opts, code := m.OptsCreate()
	if !code.IsOK() {
		t.Fatalf("opts create failed: %s", code)
	}
	if code := m.Create(f, dd, opts); !code.IsOK() {
		t.Fatalf("create failed: %s: %s", code, m.GetLastError(f))
	}
	return f
}

func TestCreateReturnsOK(t *testing.T) {
	m := viewerMethods(t)
	f := newFrontend(t, m, &abi.DisplayData{})

	if f.Data1 == nil || f.Data2 == nil {
		t.Fatalf("live handle must have both slots set")
	}
	if code := m.Destroy(f); !code.IsOK() {
		t.Fatalf("destroy failed: %s", code)
	}
	if f.Data1 != nil || f.Data2 != nil {
		t.Fatalf("destroyed handle must have both slots nil")
	}
}

func TestSurfaceCachedAcrossFrames(t *testing.T) {
	var surfaces []*fakeSurface
	dd := &abi.DisplayData{
		FBW: 800, FBH: 600,
		NewSurface: func(w, h int32) abi.Surface {
			if w != 800 || h != 600 {
				t.Fatalf("surface created at %dx%d", w, h)
			}
			s := &fakeSurface{}
			surfaces = append(surfaces, s)
			return s
		},
	}
	m := viewerMethods(t)
	f := newFrontend(t, m, dd)
	defer m.Destroy(f)

	for i := 0; i < 3; i++ {
		if code := m.Render(f); !code.IsOK() {
			t.Fatalf("render %d failed: %s", i, code)
		}
	}
	if len(surfaces) != 1 {
		t.Fatalf("created %d surfaces over 3 frames, want 1", len(surfaces))
	}
	if surfaces[0].flushes != 3 {
		t.Fatalf("got %d flushes, want 3", surfaces[0].flushes)
	}
}

func TestResizeRecreatesSurface(t *testing.T) {
	var surfaces []*fakeSurface
	dd := &abi.DisplayData{
		FBW: 800, FBH: 600,
		NewSurface: func(w, h int32) abi.Surface {
			s := &fakeSurface{}
			surfaces = append(surfaces, s)
			return s
		},
	}
	m := viewerMethods(t)
	f := newFrontend(t, m, dd)
	defer m.Destroy(f)

	m.Render(f)
	m.Render(f)

	resize := abi.InputEvent{
		Type:   abi.InputWindow,
		Window: abi.WindowEvent{Event: abi.WindowSizeChanged, Data1: 1024, Data2: 768},
	}
	if code := m.ProcessInput(f, resize); !code.IsOK() {
		t.Fatalf("resize input failed: %s", code)
	}
	dd.FBW, dd.FBH = 1024, 768

	m.Render(f)
	if len(surfaces) != 2 {
		t.Fatalf("created %d surfaces across resize, want 2", len(surfaces))
	}
}

func TestPointerTranslation(t *testing.T) {
	dd := &abi.DisplayData{X: 10, Y: 20, W: 300, H: 200}
	m := viewerMethods(t)
	f := newFrontend(t, m, dd)
	defer m.Destroy(f)

	v := f.Data1.(*viewer)

	m.ProcessInput(f, abi.InputEvent{
		Type:   abi.InputMouseMotion,
		Motion: abi.MouseMotionEvent{X: 110, Y: 120},
	})
	m.ProcessInput(f, abi.InputEvent{
		Type:   abi.InputMouseButtonUp,
		Button: abi.MouseButtonEvent{X: 10, Y: 20, Button: abi.ButtonLeft},
	})
	m.ProcessInput(f, abi.InputEvent{
		Type: abi.InputKeyDown,
		Key:  abi.KeyEvent{Keycode: 13},
	})

	if len(v.inputs) != 3 {
		t.Fatalf("got %d inputs", len(v.inputs))
	}
	if mo := v.inputs[0].Motion; mo.X != 100 || mo.Y != 100 {
		t.Fatalf("motion translated to (%d,%d), want (100,100)", mo.X, mo.Y)
	}
	if bt := v.inputs[1].Button; bt.X != 0 || bt.Y != 0 {
		t.Fatalf("button translated to (%d,%d), want (0,0)", bt.X, bt.Y)
	}
	// Key events carry no coordinates and pass through untouched.
	if v.inputs[2].Key.Keycode != 13 {
		t.Fatalf("key event mangled: %#v", v.inputs[2].Key)
	}
}

func TestEventDispatch(t *testing.T) {
	m := viewerMethods(t)
	f := newFrontend(t, m, &abi.DisplayData{})
	defer m.Destroy(f)

	methods := &abi.GameMethods{GameName: "Nim"}
	if code := m.ProcessEvent(f, &abi.EventAny{Type: abi.EventGameLoadMethods, Methods: methods}); !code.IsOK() {
		t.Fatalf("process event failed: %s", code)
	}

	v := f.Data1.(*viewer)
	if len(v.events) != 1 {
		t.Fatalf("got %d events", len(v.events))
	}
	load, ok := v.events[0].(event.GameLoadMethods)
	if !ok || load.Methods.GameName != "Nim" {
		t.Fatalf("decoded event wrong: %#v", v.events[0])
	}
}

func TestIsGameCompatible(t *testing.T) {
	m := viewerMethods(t)
	if code := m.IsGameCompatible(&abi.GameMethods{GameName: "Nim"}); !code.IsOK() {
		t.Fatalf("Nim should be compatible: %s", code)
	}
	if code := m.IsGameCompatible(&abi.GameMethods{GameName: "unsupported"}); code.IsOK() {
		t.Fatalf("incompatible game accepted")
	}
}

func TestMissingCompatibilityHookPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing IsGameCompatible hook")
		}
	}()
	frontend.BuildMethods[*viewer](frontend.Metadata{FrontendName: "Broken"},
		func(opts any) (*viewer, error) { return &viewer{}, nil },
		frontend.Hooks{})
}

func TestOptionsFeatureGating(t *testing.T) {
	m := viewerMethods(t)
	if m.OptsCreate == nil || m.OptsDisplay == nil || m.OptsDestroy == nil {
		t.Fatalf("options entries missing with options feature set")
	}

	plain := frontend.BuildMethods[*viewer](frontend.Metadata{FrontendName: "Plain"},
		func(opts any) (*viewer, error) { return &viewer{}, nil },
		frontend.Hooks{IsGameCompatible: func(frontend.GameInfo) error { return nil }})
	if plain.OptsCreate != nil || plain.OptsDisplay != nil || plain.OptsDestroy != nil {
		t.Fatalf("options entries present without the feature")
	}
}
