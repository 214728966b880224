package frontend

import (
	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/event"
)

// Methods is the capability contract a frontend implementation
// fulfills. The type parameter is the implementation type itself (use a
// pointer type so mutating methods work).
//
// All methods are invoked synchronously by the host between create and
// destroy, in any order; none may block or spawn work that outlives the
// call.
type Methods[F any] interface {
	// RuntimeOptsDisplay renders the frontend's runtime option controls.
	RuntimeOptsDisplay(ctx *Context) error
	// ProcessEvent handles one decoded lifecycle event. Borrowed payload
	// fields are only valid for the duration of this call.
	ProcessEvent(ctx *Context, ev event.Variant) error
	// ProcessInput handles one raw input event, already translated into
	// the frontend's local coordinate space.
	ProcessInput(ctx *Context, ev abi.InputEvent) error
	// Update advances animations and internal state.
	Update(ctx *Context) error
	// Render draws the current frame through ctx.Canvas.
	Render(ctx *Context) error
}

// Creator constructs a frontend instance from its pre-create options
// (nil when the options feature is disabled).
type Creator[F any] func(opts any) (F, error)

// Destroyer is implemented by frontends that need teardown beyond
// garbage collection. The bridge invokes it exactly once, from destroy.
type Destroyer interface {
	Destroy()
}

// GameInfo is the borrowed summary of a game's static metadata handed to
// the compatibility probe.
type GameInfo struct {
	GameName    string
	VariantName string
	ImplName    string
	Version     abi.Semver
	Features    abi.GameFeatureFlags
}

// Hooks carries the per-implementation-type callbacks that exist outside
// any instance.
type Hooks struct {
	// IsGameCompatible reports whether this frontend can present the
	// described game. Required.
	IsGameCompatible func(info GameInfo) error

	// Pre-create options lifecycle. OptsCreate is required when the
	// options feature bit is set; OptsDisplay may be nil.
	OptsCreate  func() (any, error)
	OptsDisplay func(opts any) error
}

// Metadata is the static per-implementation record the table builder
// embeds into the exported methods.
type Metadata struct {
	FrontendName string
	Version      abi.Semver
	Features     abi.FrontendFeatureFlags
}
