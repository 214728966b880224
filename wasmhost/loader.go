package wasmhost

import (
	"bytes"
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
)

// Runtime hosts wasm plugin modules. One runtime can load any number of
// modules; closing it closes them all.
type Runtime struct {
	rt wazero.Runtime
}

// NewRuntime creates a wasm runtime with WASI available to guests.
func NewRuntime(ctx context.Context) *Runtime {
	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	return &Runtime{rt: rt}
}

// Close releases the runtime and every module loaded through it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

// requiredExports are the entry points every guest must provide.
var requiredExports = []string{
	"pb_alloc", "pb_free",
	"pb_game_api_version", "pb_describe", "pb_last_error", "pb_result",
	"pb_create", "pb_destroy", "pb_clone", "pb_copy_from", "pb_compare",
	"pb_sizer", "pb_player_count", "pb_import_state", "pb_export_state",
	"pb_players_to_move", "pb_get_concrete_moves", "pb_is_legal_move",
	"pb_make_move", "pb_get_results", "pb_get_move_data", "pb_get_move_str",
}

// Module is one loaded wasm plugin. All calls into the guest are
// serialized; wasm module instances are single-threaded.
type Module struct {
	mu  sync.Mutex
	ctx context.Context
	mod api.Module
	fns map[string]api.Function

	meta metadata
}

// Load compiles and instantiates a guest, verifies its ABI version and
// export surface, and reads its metadata.
func (r *Runtime) Load(ctx context.Context, wasmBytes []byte, name string) (*Module, error) {
	compiled, err := r.rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.New(errors.PhaseRegistration, errors.KindInvalidInput).
			Cause(err).
			Detail("compiling module %q", name).
			Build()
	}
	mod, err := r.rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.New(errors.PhaseRegistration, errors.KindInternal).
			Cause(err).
			Detail("instantiating module %q", name).
			Build()
	}

	m := &Module{ctx: ctx, mod: mod, fns: make(map[string]api.Function)}
	for _, export := range requiredExports {
		fn := mod.ExportedFunction(export)
		if fn == nil {
			mod.Close(ctx)
			return nil, errors.New(errors.PhaseRegistration, errors.KindInvalidInput).
				Path(name).
				Detail("missing export %q", export).
				Build()
		}
		m.fns[export] = fn
	}
	// Feature exports are resolved lazily after describe.
	for _, export := range []string{"pb_export_options", "pb_print"} {
		if fn := mod.ExportedFunction(export); fn != nil {
			m.fns[export] = fn
		}
	}

	ver, err := m.callOne("pb_game_api_version")
	if err != nil {
		mod.Close(ctx)
		return nil, err
	}
	if ver != abi.GameAPIVersion {
		mod.Close(ctx)
		return nil, errors.VersionMismatch(errors.PhaseRegistration, abi.GameAPIVersion, ver)
	}

	desc, err := m.readPackedCall("pb_describe")
	if err != nil {
		mod.Close(ctx)
		return nil, err
	}
	m.meta, err = parseDescribe(string(desc))
	if err != nil {
		mod.Close(ctx)
		return nil, err
	}
	if m.meta.Features.Options && m.fns["pb_export_options"] == nil {
		mod.Close(ctx)
		return nil, errors.New(errors.PhaseRegistration, errors.KindInvalidInput).
			Path(name).
			Detail("options feature declared but pb_export_options not exported").
			Build()
	}
	if m.meta.Features.Print && m.fns["pb_print"] == nil {
		mod.Close(ctx)
		return nil, errors.New(errors.PhaseRegistration, errors.KindInvalidInput).
			Path(name).
			Detail("print feature declared but pb_print not exported").
			Build()
	}

	Logger().Info("wasm plugin loaded",
		zap.String("module", name),
		zap.String("game", m.meta.GameName),
		zap.String("impl", m.meta.ImplName),
	)
	return m, nil
}

// Close releases the guest instance.
func (m *Module) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mod.Close(ctx)
}

// callOne invokes an export expecting exactly one result.
func (m *Module) callOne(name string, args ...uint64) (uint64, error) {
	res, err := m.fns[name].Call(m.ctx, args...)
	if err != nil {
		return 0, errors.New(errors.PhaseHost, errors.KindInternal).
			Cause(err).
			Detail("guest call %s trapped", name).
			Build()
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0], nil
}

// readPacked copies the bytes behind a ptr<<32|len pair out of guest
// memory. The copy is required: guest memory may move on growth.
func (m *Module) readPacked(v uint64) ([]byte, error) {
	ptr, length := unpack(v)
	if length == 0 {
		return []byte{}, nil
	}
	b, ok := m.mod.Memory().Read(ptr, length)
	if !ok {
		return nil, errors.New(errors.PhaseHost, errors.KindStateCorrupted).
			Detail("guest returned out-of-range view ptr=%d len=%d", ptr, length).
			Build()
	}
	return bytes.Clone(b), nil
}

func (m *Module) readPackedCall(name string, args ...uint64) ([]byte, error) {
	v, err := m.callOne(name, args...)
	if err != nil {
		return nil, err
	}
	return m.readPacked(v)
}

// result fetches the output bytes of the most recent guest call.
func (m *Module) result() ([]byte, error) {
	return m.readPackedCall("pb_result")
}

// guestWrite copies data into guest memory. The returned release
// function must run after the call consuming the bytes.
func (m *Module) guestWrite(data []byte) (ptr uint32, length uint32, release func(), err error) {
	if len(data) == 0 {
		return 0, 0, func() {}, nil
	}
	v, err := m.callOne("pb_alloc", uint64(len(data)))
	if err != nil {
		return 0, 0, nil, err
	}
	ptr = uint32(v)
	if !m.mod.Memory().Write(ptr, data) {
		return 0, 0, nil, errors.New(errors.PhaseHost, errors.KindOutOfMemory).
			Detail("guest allocation ptr=%d len=%d not writable", ptr, len(data)).
			Build()
	}
	length = uint32(len(data))
	release = func() { m.callOne("pb_free", uint64(ptr), uint64(length)) }
	return ptr, length, release, nil
}

// lastError reads the guest's error channel.
func (m *Module) lastError() string {
	b, err := m.readPackedCall("pb_last_error")
	if err != nil {
		return ""
	}
	return string(b)
}
