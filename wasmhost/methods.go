package wasmhost

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
)

// guestAux is the host-side auxiliary state for one guest instance. It
// mirrors the in-process bridge: an error channel plus the per-kind
// owned buffers of the output-buffer protocol. The guest instance id
// lives in the handle's first extension slot.
type guestAux struct {
	err string

	state   *abi.StrBuf
	options *abi.StrBuf
	moveStr *abi.StrBuf
	print   *abi.StrBuf
	players *abi.OutVec[abi.PlayerID]
	results *abi.OutVec[abi.PlayerID]
	moves   *abi.OutVec[abi.MoveDataWire]
}

func newGuestAux() *guestAux {
	return &guestAux{
		state:   abi.NewGrowStrBuf(),
		options: abi.NewGrowStrBuf(),
		moveStr: abi.NewGrowStrBuf(),
		print:   abi.NewGrowStrBuf(),
		players: abi.NewGrowVec[abi.PlayerID](),
		results: abi.NewGrowVec[abi.PlayerID](),
		moves:   abi.NewGrowVec[abi.MoveDataWire](),
	}
}

func gaux(g *abi.Game) *guestAux {
	a, _ := g.Data2.(*guestAux)
	return a
}

func gid(g *abi.Game) uint64 {
	id, _ := g.Data1.(uint64)
	return id
}

// fail records a host-side failure (trap, memory fault, decode error)
// in the handle's error channel.
func (m *Module) fail(g *abi.Game, err error) abi.ErrorCode {
	if a := gaux(g); a != nil {
		a.err = err.Error()
	}
	code := errors.CodeOf(err)
	Logger().Debug("guest call failed on the host side",
		zap.String("code", code.String()),
		zap.Error(err),
	)
	return code
}

// guestFail propagates a guest-reported failure, pulling the message
// through the guest's error channel.
func (m *Module) guestFail(g *abi.Game, code abi.ErrorCode) abi.ErrorCode {
	if a := gaux(g); a != nil {
		a.err = m.lastError()
	}
	return code
}

func (m *Module) callCode(name string, args ...uint64) (abi.ErrorCode, error) {
	v, err := m.callOne(name, args...)
	if err != nil {
		return abi.ErrCustomAny, err
	}
	return abi.ErrorCode(uint32(v)), nil
}

// callID invokes an export returning an instance id or a negated error
// code.
func (m *Module) callID(name string, args ...uint64) (uint64, abi.ErrorCode, error) {
	v, err := m.callOne(name, args...)
	if err != nil {
		return 0, abi.ErrCustomAny, err
	}
	if iv := int64(v); iv < 0 {
		return 0, abi.ErrorCode(uint32(-iv)), nil
	}
	return v, abi.ErrOK, nil
}

func commitStr(slot, caller *abi.StrBuf, data []byte) []byte {
	dst := caller
	if dst == nil {
		dst = slot
	}
	dst.Reset()
	dst.Write(data)
	return dst.Bytes()
}

func commitPlayers(slot, caller *abi.OutVec[abi.PlayerID], data []byte) []abi.PlayerID {
	dst := caller
	if dst == nil {
		dst = slot
	}
	dst.Reset()
	for _, b := range data {
		dst.Push(abi.PlayerID(b))
	}
	return dst.Items()
}

func commitMoves(slot, caller *abi.OutVec[abi.MoveDataWire], moves []abi.MoveDataWire) []abi.MoveDataWire {
	dst := caller
	if dst == nil {
		dst = slot
	}
	dst.Reset()
	for _, w := range moves {
		dst.Push(w)
	}
	return dst.Items()
}

// Methods builds the method table driving this guest. The table is
// interchangeable with one built by the in-process bridge.
func (m *Module) Methods() *abi.GameMethods {
	mt := &abi.GameMethods{
		GameName:    m.meta.GameName,
		VariantName: m.meta.VariantName,
		ImplName:    m.meta.ImplName,
		Version:     m.meta.Version,
		Features:    m.meta.Features,
	}

	mt.GetLastError = func(g *abi.Game) string {
		if a := gaux(g); a != nil {
			return a.err
		}
		return ""
	}

	mt.Create = func(g *abi.Game, init *abi.GameInit) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		g.Data1 = nil
		g.Data2 = newGuestAux()

		ptr, length, release, err := m.guestWrite(encodeInitBlob(init))
		if err != nil {
			return m.fail(g, err)
		}
		defer release()

		id, code, err := m.callID("pb_create", uint64(init.Kind), uint64(ptr), uint64(length))
		if err != nil {
			return m.fail(g, err)
		}
		if !code.IsOK() {
			return m.guestFail(g, code)
		}

		code, err = m.callCode("pb_sizer", id)
		if err != nil {
			return m.fail(g, err)
		}
		if !code.IsOK() {
			return m.guestFail(g, code)
		}
		blob, err := m.result()
		if err != nil {
			return m.fail(g, err)
		}
		sizer, err := decodeSizerBlob(blob)
		if err != nil {
			return m.fail(g, err)
		}
		sizer.Validate(m.meta.Features)

		g.Sizer = sizer
		g.Data1 = id
		return abi.ErrOK
	}

	mt.Destroy = func(g *abi.Game) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		if g.Data1 != nil {
			m.callOne("pb_destroy", gid(g))
			g.Data1 = nil
		}
		g.Data2 = nil
		return abi.ErrOK
	}

	mt.Clone = func(g *abi.Game, target *abi.Game) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		target.Methods = g.Methods
		target.Sizer = g.Sizer
		target.Data1 = nil
		target.Data2 = newGuestAux()

		id, code, err := m.callID("pb_clone", gid(g))
		if err != nil {
			return m.fail(target, err)
		}
		if !code.IsOK() {
			return m.guestFail(target, code)
		}
		target.Data1 = id
		return abi.ErrOK
	}

	mt.CopyFrom = func(g *abi.Game, other *abi.Game) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.codeEntry(g, "pb_copy_from", gid(g), gid(other))
	}

	mt.Compare = func(g *abi.Game, other *abi.Game) (bool, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		v, code, err := m.callID("pb_compare", gid(g), gid(other))
		if err != nil {
			return false, m.fail(g, err)
		}
		if !code.IsOK() {
			return false, m.guestFail(g, code)
		}
		return v != 0, abi.ErrOK
	}

	mt.PlayerCount = func(g *abi.Game) (uint8, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		v, code, err := m.callID("pb_player_count", gid(g))
		if err != nil {
			return 0, m.fail(g, err)
		}
		if !code.IsOK() {
			return 0, m.guestFail(g, code)
		}
		return uint8(v), abi.ErrOK
	}

	mt.ImportState = func(g *abi.Game, state *string) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		var has uint64
		var data []byte
		if state != nil {
			has = 1
			data = []byte(*state)
		}
		ptr, length, release, err := m.guestWrite(data)
		if err != nil {
			return m.fail(g, err)
		}
		defer release()
		return m.codeEntry(g, "pb_import_state", gid(g), has, uint64(ptr), uint64(length))
	}

	mt.ExportState = func(g *abi.Game, player abi.PlayerID, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		data, code := m.bytesEntry(g, "pb_export_state", gid(g), uint64(player))
		if !code.IsOK() {
			return nil, code
		}
		return commitStr(gaux(g).state, buf, data), abi.ErrOK
	}

	mt.PlayersToMove = func(g *abi.Game, out *abi.OutVec[abi.PlayerID]) ([]abi.PlayerID, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		data, code := m.bytesEntry(g, "pb_players_to_move", gid(g))
		if !code.IsOK() {
			return nil, code
		}
		return commitPlayers(gaux(g).players, out, data), abi.ErrOK
	}

	mt.GetConcreteMoves = func(g *abi.Game, player abi.PlayerID, out *abi.OutVec[abi.MoveDataWire]) ([]abi.MoveDataWire, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		data, code := m.bytesEntry(g, "pb_get_concrete_moves", gid(g), uint64(player))
		if !code.IsOK() {
			return nil, code
		}
		moves, err := decodeMoveListBlob(data)
		if err != nil {
			return nil, m.fail(g, err)
		}
		return commitMoves(gaux(g).moves, out, moves), abi.ErrOK
	}

	mt.IsLegalMove = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.moveEntry(g, "pb_is_legal_move", player, mov)
	}

	mt.MakeMove = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync) abi.ErrorCode {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.moveEntry(g, "pb_make_move", player, mov)
	}

	mt.GetResults = func(g *abi.Game, out *abi.OutVec[abi.PlayerID]) ([]abi.PlayerID, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		data, code := m.bytesEntry(g, "pb_get_results", gid(g))
		if !code.IsOK() {
			return nil, code
		}
		return commitPlayers(gaux(g).results, out, data), abi.ErrOK
	}

	mt.GetMoveData = func(g *abi.Game, player abi.PlayerID, str string) (abi.MoveWireSync, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		ptr, length, release, err := m.guestWrite([]byte(str))
		if err != nil {
			return abi.MoveWireSync{}, m.fail(g, err)
		}
		defer release()

		data, code := m.bytesEntry(g, "pb_get_move_data", gid(g), uint64(player), uint64(ptr), uint64(length))
		if !code.IsOK() {
			return abi.MoveWireSync{}, code
		}
		if len(data) < 8 {
			return abi.MoveWireSync{}, m.fail(g, errors.InvalidInput(errors.PhaseDecode,
				"move data blob too short"))
		}
		sync := binary.LittleEndian.Uint64(data)
		w, err := decodeMoveBlob(data[8:])
		if err != nil {
			return abi.MoveWireSync{}, m.fail(g, err)
		}
		return abi.MoveWireSync{MD: w, SyncCtr: sync}, abi.ErrOK
	}

	mt.GetMoveStr = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
		m.mu.Lock()
		defer m.mu.Unlock()
		ptr, length, release, err := m.guestWrite(encodeMoveBlob(mov.MD))
		if err != nil {
			return nil, m.fail(g, err)
		}
		defer release()

		data, code := m.bytesEntry(g, "pb_get_move_str", gid(g), uint64(player), mov.SyncCtr, uint64(ptr), uint64(length))
		if !code.IsOK() {
			return nil, code
		}
		return commitStr(gaux(g).moveStr, buf, data), abi.ErrOK
	}

	if m.meta.Features.Options {
		mt.ExportOptions = func(g *abi.Game, player abi.PlayerID, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
			m.mu.Lock()
			defer m.mu.Unlock()
			data, code := m.bytesEntry(g, "pb_export_options", gid(g), uint64(player))
			if !code.IsOK() {
				return nil, code
			}
			return commitStr(gaux(g).options, buf, data), abi.ErrOK
		}
	}

	if m.meta.Features.Print {
		mt.Print = func(g *abi.Game, player abi.PlayerID, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
			m.mu.Lock()
			defer m.mu.Unlock()
			data, code := m.bytesEntry(g, "pb_print", gid(g), uint64(player))
			if !code.IsOK() {
				return nil, code
			}
			return commitStr(gaux(g).print, buf, data), abi.ErrOK
		}
	}

	return mt
}

// codeEntry runs a guest export that returns only an error code.
func (m *Module) codeEntry(g *abi.Game, name string, args ...uint64) abi.ErrorCode {
	code, err := m.callCode(name, args...)
	if err != nil {
		return m.fail(g, err)
	}
	if !code.IsOK() {
		return m.guestFail(g, code)
	}
	return abi.ErrOK
}

// bytesEntry runs a guest export and fetches its output bytes.
func (m *Module) bytesEntry(g *abi.Game, name string, args ...uint64) ([]byte, abi.ErrorCode) {
	code, err := m.callCode(name, args...)
	if err != nil {
		return nil, m.fail(g, err)
	}
	if !code.IsOK() {
		return nil, m.guestFail(g, code)
	}
	data, err := m.result()
	if err != nil {
		return nil, m.fail(g, err)
	}
	return data, abi.ErrOK
}

// moveEntry runs a guest export taking (player, sync, move blob).
func (m *Module) moveEntry(g *abi.Game, name string, player abi.PlayerID, mov abi.MoveWireSync) abi.ErrorCode {
	ptr, length, release, err := m.guestWrite(encodeMoveBlob(mov.MD))
	if err != nil {
		return m.fail(g, err)
	}
	defer release()
	return m.codeEntry(g, name, gid(g), uint64(player), mov.SyncCtr, uint64(ptr), uint64(length))
}
