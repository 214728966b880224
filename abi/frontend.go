package abi

// Frontend is the opaque instance handle the host owns for one frontend.
// The slot discipline matches Game: Data1 holds the implementer's
// object, Data2 the bridge's auxiliary state, both nil after destroy.
type Frontend struct {
	Methods *FrontendMethods

	Data1 any
	Data2 any
}

// Canvas is the opaque drawing handle the rendering backend exposes. The
// bridge only needs to reposition its origin; frontends type-assert to
// whatever richer surface their backend provides.
type Canvas interface {
	Translate(x, y float32)
}

// Surface is one drawable framebuffer-sized surface. The bridge caches
// it across frames and drops it when the window size changes.
type Surface interface {
	Canvas() Canvas
	Flush()
}

// SurfaceFactory creates a surface sized to the current framebuffer.
// The host supplies it through DisplayData; it is only invoked from
// inside a render call.
type SurfaceFactory func(width, height int32) Surface

// DisplayData is the host-maintained frame geometry and communication
// block. The host mutates it between calls, so the bridge keeps a
// reference rather than a copy.
type DisplayData struct {
	// Display area origin within the window, and its size.
	X, Y float32
	W, H float32

	// Framebuffer dimensions.
	FBW, FBH int32

	// Outbox is the one-way event queue toward the host.
	Outbox *EventQueue

	// NewSurface lazily creates the drawing surface. Nil when drawing is
	// disabled.
	NewSurface SurfaceFactory
}

// FrontendMethods is the exported method table for one frontend
// implementation. Entries for unset feature bits are nil.
type FrontendMethods struct {
	FrontendName string
	Version      Semver
	Features     FrontendFeatureFlags

	GetLastError func(f *Frontend) string

	// Optional: options feature (pre-create options lifecycle).
	OptsCreate  func() (any, ErrorCode)
	OptsDisplay func(opts any) ErrorCode
	OptsDestroy func(opts any) ErrorCode

	Create  func(f *Frontend, dd *DisplayData, opts any) ErrorCode
	Destroy func(f *Frontend) ErrorCode

	RuntimeOptsDisplay func(f *Frontend) ErrorCode
	ProcessEvent       func(f *Frontend, ev *EventAny) ErrorCode
	ProcessInput       func(f *Frontend, ev InputEvent) ErrorCode
	Update             func(f *Frontend) ErrorCode
	Render             func(f *Frontend) ErrorCode

	IsGameCompatible func(game *GameMethods) ErrorCode
}
