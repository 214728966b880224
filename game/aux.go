package game

import (
	"bytes"

	"github.com/playmesh/plugbridge/abi"
)

// aux is the bridge-private auxiliary state attached to the handle's
// second extension slot. It is allocated in create and clone, mutated on
// every query call, and released exactly once in destroy. Implementers
// never see it.
type aux struct {
	// Last-error message, overwritten by each failing call.
	err string

	// Per-kind owned output buffers for the bridge-owns-buffer protocol.
	// Each is only invalidated by the next call writing the same kind.
	state   *abi.StrBuf
	options *abi.StrBuf
	moveStr *abi.StrBuf
	print   *abi.StrBuf
	players *abi.OutVec[abi.PlayerID]
	results *abi.OutVec[abi.PlayerID]
	moves   *abi.OutVec[abi.MoveDataWire]
	actions *abi.OutVec[abi.MoveDataWire]
	probs   *abi.OutVec[float32]

	// Staging area. User methods write here first so a failing call
	// never corrupts the committed per-kind buffers.
	tmpStr     *abi.StrBuf
	tmpPlayers *abi.OutVec[abi.PlayerID]
	tmpProbs   *abi.OutVec[float32]
	moveStage  []abi.MoveData

	// Big-move payloads handed across the boundary. They stay alive
	// until the next mutating call on this instance.
	bigArena [][]byte
}

func newAux() *aux {
	return &aux{
		state:      abi.NewGrowStrBuf(),
		options:    abi.NewGrowStrBuf(),
		moveStr:    abi.NewGrowStrBuf(),
		print:      abi.NewGrowStrBuf(),
		players:    abi.NewGrowVec[abi.PlayerID](),
		results:    abi.NewGrowVec[abi.PlayerID](),
		moves:      abi.NewGrowVec[abi.MoveDataWire](),
		actions:    abi.NewGrowVec[abi.MoveDataWire](),
		probs:      abi.NewGrowVec[float32](),
		tmpStr:     abi.NewGrowStrBuf(),
		tmpPlayers: abi.NewGrowVec[abi.PlayerID](),
		tmpProbs:   abi.NewGrowVec[float32](),
	}
}

// auxOf locates the auxiliary state behind a handle. It returns nil for
// a destroyed or never-created handle.
func auxOf(g *abi.Game) *aux {
	a, _ := g.Data2.(*aux)
	return a
}

// dataOf locates the user object behind a handle.
func dataOf[G any](g *abi.Game) G {
	return g.Data1.(G)
}

// clearScratch drops the big-move payloads. Called at the start of every
// mutating call, ending the lifetime promised for previously returned
// wire views.
func (a *aux) clearScratch() {
	a.bigArena = nil
}

// encodeMove translates one safe move value to the wire. Variable
// payloads are copied into the scratch arena so the returned view stays
// valid after the user object mutates, until the next mutating call.
func (a *aux) encodeMove(m abi.MoveData) abi.MoveDataWire {
	if big, ok := m.Big(); ok {
		cp := bytes.Clone(big)
		if cp == nil {
			cp = []byte{}
		}
		a.bigArena = append(a.bigArena, cp)
		return abi.MoveDataWire{Data: cp}
	}
	return m.Encode()
}

// stageStr runs fn against a clean staging buffer and, on success,
// commits the output into the caller's buffer (when given) or the owned
// per-kind slot. On failure neither destination is touched.
func (a *aux) stageStr(slot, caller *abi.StrBuf, fn func(*abi.StrBuf) error) ([]byte, error) {
	a.tmpStr.Reset()
	if err := fn(a.tmpStr); err != nil {
		return nil, err
	}
	dst := caller
	if dst == nil {
		dst = slot
	}
	dst.Reset()
	dst.Write(a.tmpStr.Bytes())
	return dst.Bytes(), nil
}

// stagePlayers is stageStr for player-id lists, bounded by max.
func (a *aux) stagePlayers(slot, caller *abi.OutVec[abi.PlayerID], max int, fn func(*PlayerBuf) error) ([]abi.PlayerID, error) {
	a.tmpPlayers.Reset()
	if err := fn(&PlayerBuf{out: a.tmpPlayers, max: max}); err != nil {
		return nil, err
	}
	dst := caller
	if dst == nil {
		dst = slot
	}
	dst.Reset()
	for _, p := range a.tmpPlayers.Items() {
		dst.Push(p)
	}
	return dst.Items(), nil
}

// stageMoves collects safe move values, then encodes them into the
// caller's vector or the given owned slot.
func (a *aux) stageMoves(slot, caller *abi.OutVec[abi.MoveDataWire], max int, fn func(*MoveBuf) error) ([]abi.MoveDataWire, error) {
	a.moveStage = a.moveStage[:0]
	mb := &MoveBuf{moves: a.moveStage, max: max}
	if err := fn(mb); err != nil {
		return nil, err
	}
	a.moveStage = mb.moves
	dst := caller
	if dst == nil {
		dst = slot
	}
	dst.Reset()
	for _, m := range mb.moves {
		dst.Push(a.encodeMove(m))
	}
	return dst.Items(), nil
}
