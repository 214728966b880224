package frontend

import (
	"go.uber.org/zap"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
	"github.com/playmesh/plugbridge/event"
)

func fail(f *abi.Frontend, err error) abi.ErrorCode {
	if a := auxOf(f); a != nil {
		a.err = err.Error()
	}
	code := errors.CodeOf(err)
	Logger().Debug("frontend call failed",
		zap.String("code", code.String()),
		zap.Error(err),
	)
	return code
}

// BuildMethods assembles the exported method table for frontend
// implementation type F. Option entries are nil when the options feature
// bit is unset; it panics when the bit is set without an OptsCreate
// hook, or when the compatibility hook is missing.
func BuildMethods[F Methods[F]](meta Metadata, create Creator[F], hooks Hooks) *abi.FrontendMethods {
	if create == nil {
		panic("frontend: create must not be nil")
	}
	if hooks.IsGameCompatible == nil {
		panic("frontend: IsGameCompatible hook must not be nil")
	}
	if meta.Features.Options && hooks.OptsCreate == nil {
		panic("frontend: options feature enabled but OptsCreate hook is nil")
	}

	m := &abi.FrontendMethods{
		FrontendName: meta.FrontendName,
		Version:      meta.Version,
		Features:     meta.Features,
	}

	m.GetLastError = func(f *abi.Frontend) string {
		if a := auxOf(f); a != nil {
			return a.err
		}
		return ""
	}

	m.Create = func(f *abi.Frontend, dd *abi.DisplayData, opts any) abi.ErrorCode {
		// Zero the user-object slot first so a failed creation leaves a
		// handle the host can still destroy and query for the error.
		f.Data1 = nil
		f.Data2 = &aux{dd: dd, options: opts}

		obj, err := create(opts)
		if err != nil {
			return fail(f, err)
		}
		f.Data1 = obj
		Logger().Debug("frontend instance created", zap.String("frontend", meta.FrontendName))
		return abi.ErrOK
	}

	m.Destroy = func(f *abi.Frontend) abi.ErrorCode {
		if f.Data1 != nil {
			if d, ok := f.Data1.(Destroyer); ok {
				d.Destroy()
			}
			// Leave nil to catch use-after-destroy.
			f.Data1 = nil
		}
		f.Data2 = nil
		return abi.ErrOK
	}

	m.RuntimeOptsDisplay = func(f *abi.Frontend) abi.ErrorCode {
		if err := dataOf[F](f).RuntimeOptsDisplay(newContext(f)); err != nil {
			return fail(f, err)
		}
		return abi.ErrOK
	}

	m.ProcessEvent = func(f *abi.Frontend, ev *abi.EventAny) abi.ErrorCode {
		if err := dataOf[F](f).ProcessEvent(newContext(f), event.Decode(ev)); err != nil {
			return fail(f, err)
		}
		return abi.ErrOK
	}

	m.ProcessInput = func(f *abi.Frontend, ev abi.InputEvent) abi.ErrorCode {
		a := auxOf(f)
		if ev.Type == abi.InputWindow && ev.Window.Event == abi.WindowSizeChanged {
			// Next render recreates the surface at the new size.
			a.surface = nil
		}

		translateInput(&ev, a.dd)
		if err := dataOf[F](f).ProcessInput(newContext(f), ev); err != nil {
			return fail(f, err)
		}
		return abi.ErrOK
	}

	m.Update = func(f *abi.Frontend) abi.ErrorCode {
		if err := dataOf[F](f).Update(newContext(f)); err != nil {
			return fail(f, err)
		}
		return abi.ErrOK
	}

	m.Render = func(f *abi.Frontend) abi.ErrorCode {
		if err := dataOf[F](f).Render(newContext(f)); err != nil {
			return fail(f, err)
		}
		if s := auxOf(f).surface; s != nil {
			s.Flush()
		}
		return abi.ErrOK
	}

	m.IsGameCompatible = func(game *abi.GameMethods) abi.ErrorCode {
		info := GameInfo{
			GameName:    game.GameName,
			VariantName: game.VariantName,
			ImplName:    game.ImplName,
			Version:     game.Version,
			Features:    game.Features,
		}
		if err := hooks.IsGameCompatible(info); err != nil {
			return errors.CodeOf(err)
		}
		return abi.ErrOK
	}

	if meta.Features.Options {
		m.OptsCreate = func() (any, abi.ErrorCode) {
			opts, err := hooks.OptsCreate()
			if err != nil {
				return nil, errors.CodeOf(err)
			}
			return opts, abi.ErrOK
		}
		m.OptsDisplay = func(opts any) abi.ErrorCode {
			if hooks.OptsDisplay == nil {
				return abi.ErrOK
			}
			if err := hooks.OptsDisplay(opts); err != nil {
				return errors.CodeOf(err)
			}
			return abi.ErrOK
		}
		m.OptsDestroy = func(opts any) abi.ErrorCode {
			// Options are garbage collected; the hook exists so the host
			// can drive a symmetric lifecycle.
			return abi.ErrOK
		}
	}

	return m
}

// translateInput rebases pointer-carrying input kinds from window
// coordinates into the frontend's local space.
func translateInput(ev *abi.InputEvent, dd *abi.DisplayData) {
	dx, dy := int32(dd.X), int32(dd.Y)
	switch ev.Type {
	case abi.InputMouseMotion:
		ev.Motion.X -= dx
		ev.Motion.Y -= dy
	case abi.InputMouseButtonDown, abi.InputMouseButtonUp:
		ev.Button.X -= dx
		ev.Button.Y -= dy
	case abi.InputMouseWheel:
		ev.Wheel.X -= dx
		ev.Wheel.Y -= dy
	}
}
