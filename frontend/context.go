package frontend

import (
	"github.com/playmesh/plugbridge/abi"
)

// aux is the bridge-private state attached to the frontend handle's
// second extension slot.
type aux struct {
	err string

	// The host mutates display data between calls, so keep the pointer
	// it handed to create rather than a copy.
	dd      *abi.DisplayData
	options any

	// Drawing surface cached across frames. Dropped on resize so the
	// next render recreates it at the new size.
	surface abi.Surface
}

func auxOf(f *abi.Frontend) *aux {
	a, _ := f.Data2.(*aux)
	return a
}

func dataOf[F any](f *abi.Frontend) F {
	return f.Data1.(F)
}

// Context is the per-call view handed to every capability method. It is
// only valid for the duration of that call.
type Context struct {
	// Options is the read-only pre-create options value, nil when the
	// options feature is disabled.
	Options any
	// DisplayData is the host-maintained frame geometry.
	DisplayData *abi.DisplayData
	// Outbox sends events to the host.
	Outbox *Outbox
	// Canvas lazily provides the cached drawing surface's canvas.
	Canvas *CanvasManager
}

func newContext(f *abi.Frontend) *Context {
	a := auxOf(f)
	return &Context{
		Options:     a.options,
		DisplayData: a.dd,
		Outbox:      &Outbox{q: a.dd.Outbox},
		Canvas:      &CanvasManager{a: a},
	}
}

// Outbox is the safe wrapper around the host's one-way event queue.
type Outbox struct {
	q *abi.EventQueue
}

// Push copies one event into the host's queue. It is a no-op when the
// host did not supply a queue.
func (o *Outbox) Push(ev *abi.EventAny) {
	if o.q == nil {
		return
	}
	o.q.Push(ev)
}

// CanvasManager lazily creates and caches the drawing surface.
type CanvasManager struct {
	a *aux
}

// Get returns a canvas positioned at the frontend's display-area
// origin, creating the surface at framebuffer size on first use. It
// returns nil when drawing is disabled (no surface factory supplied).
func (c *CanvasManager) Get() abi.Canvas {
	dd := c.a.dd
	if c.a.surface == nil {
		if dd.NewSurface == nil {
			return nil
		}
		c.a.surface = dd.NewSurface(dd.FBW, dd.FBH)
	}
	canvas := c.a.surface.Canvas()
	canvas.Translate(dd.X, dd.Y)
	return canvas
}
