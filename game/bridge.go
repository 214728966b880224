package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
)

// fail records the error in the instance's error channel and returns the
// wire code. Every failing trampoline goes through here before
// returning, so get_last_error always sees the most recent failure.
func fail(g *abi.Game, err error) abi.ErrorCode {
	if a := auxOf(g); a != nil {
		a.err = err.Error()
	}
	code := errors.CodeOf(err)
	Logger().Debug("game call failed",
		zap.String("code", code.String()),
		zap.Error(err),
	)
	return code
}

// BuildMethods assembles the exported method table for implementation
// type G. Entries for unset feature bits are left nil so the host
// statically knows which capabilities exist. It panics when a feature
// bit is set but G does not implement the corresponding capability
// interface; that mismatch is a defect in the plugin, not a runtime
// condition.
func BuildMethods[G Methods[G]](meta Metadata, create Creator[G]) *abi.GameMethods {
	if create == nil {
		panic("game: create must not be nil")
	}
	checkCapabilities[G](meta)

	m := &abi.GameMethods{
		GameName:    meta.GameName,
		VariantName: meta.VariantName,
		ImplName:    meta.ImplName,
		Version:     meta.Version,
		Features:    meta.Features,
	}

	m.GetLastError = func(g *abi.Game) string {
		// Reads only auxiliary state; callable even when creation
		// failed and no user object exists.
		if a := auxOf(g); a != nil {
			return a.err
		}
		return ""
	}

	m.Create = func(g *abi.Game, init *abi.GameInit) abi.ErrorCode {
		// Zero the user-object slot first so a failed creation leaves a
		// handle the host can still destroy and query for the error.
		g.Data1 = nil
		g.Data2 = newAux()

		obj, sizer, err := create(init)
		if err != nil {
			return fail(g, err)
		}
		sizer.Validate(meta.Features)
		g.Sizer = sizer
		g.Data1 = obj
		Logger().Debug("game instance created", zap.String("game", meta.GameName))
		return abi.ErrOK
	}

	m.Destroy = func(g *abi.Game) abi.ErrorCode {
		if g.Data1 != nil {
			if d, ok := g.Data1.(Destroyer); ok {
				d.Destroy()
			}
			// Leave nil to catch use-after-destroy.
			g.Data1 = nil
		}
		g.Data2 = nil
		return abi.ErrOK
	}

	m.Clone = func(g *abi.Game, target *abi.Game) abi.ErrorCode {
		// Copy the header, then run the same two-phase initialization
		// as create so a half-built clone is still destroyable.
		target.Methods = g.Methods
		target.Sizer = g.Sizer
		target.Data1 = nil
		target.Data2 = newAux()
		target.Data1 = dataOf[G](g).Clone()
		return abi.ErrOK
	}

	m.CopyFrom = func(g *abi.Game, other *abi.Game) abi.ErrorCode {
		auxOf(g).clearScratch()
		if err := dataOf[G](g).CopyFrom(dataOf[G](other)); err != nil {
			return fail(g, err)
		}
		return abi.ErrOK
	}

	m.Compare = func(g *abi.Game, other *abi.Game) (bool, abi.ErrorCode) {
		return dataOf[G](g).Equal(dataOf[G](other)), abi.ErrOK
	}

	m.PlayerCount = func(g *abi.Game) (uint8, abi.ErrorCode) {
		n, err := dataOf[G](g).PlayerCount()
		if err != nil {
			return 0, fail(g, err)
		}
		return n, abi.ErrOK
	}

	m.ImportState = func(g *abi.Game, state *string) abi.ErrorCode {
		auxOf(g).clearScratch()
		if err := dataOf[G](g).ImportState(state); err != nil {
			return fail(g, err)
		}
		return abi.ErrOK
	}

	m.ExportState = func(g *abi.Game, player abi.PlayerID, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
		a := auxOf(g)
		view, err := a.stageStr(a.state, buf, func(sb *abi.StrBuf) error {
			return dataOf[G](g).ExportState(player, sb)
		})
		if err != nil {
			return nil, fail(g, err)
		}
		return view, abi.ErrOK
	}

	m.PlayersToMove = func(g *abi.Game, out *abi.OutVec[abi.PlayerID]) ([]abi.PlayerID, abi.ErrorCode) {
		a := auxOf(g)
		view, err := a.stagePlayers(a.players, out, int(g.Sizer.MaxPlayersToMove), func(pb *PlayerBuf) error {
			return dataOf[G](g).PlayersToMove(pb)
		})
		if err != nil {
			return nil, fail(g, err)
		}
		return view, abi.ErrOK
	}

	m.GetConcreteMoves = func(g *abi.Game, player abi.PlayerID, out *abi.OutVec[abi.MoveDataWire]) ([]abi.MoveDataWire, abi.ErrorCode) {
		a := auxOf(g)
		view, err := a.stageMoves(a.moves, out, int(g.Sizer.MaxMoves), func(mb *MoveBuf) error {
			return dataOf[G](g).GetConcreteMoves(player, mb)
		})
		if err != nil {
			return nil, fail(g, err)
		}
		return view, abi.ErrOK
	}

	m.IsLegalMove = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync) abi.ErrorCode {
		if err := dataOf[G](g).IsLegalMove(player, mov.Decode()); err != nil {
			return fail(g, err)
		}
		return abi.ErrOK
	}

	m.MakeMove = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync) abi.ErrorCode {
		auxOf(g).clearScratch()
		if err := dataOf[G](g).MakeMove(player, mov.Decode()); err != nil {
			return fail(g, err)
		}
		return abi.ErrOK
	}

	m.GetResults = func(g *abi.Game, out *abi.OutVec[abi.PlayerID]) ([]abi.PlayerID, abi.ErrorCode) {
		a := auxOf(g)
		view, err := a.stagePlayers(a.results, out, int(g.Sizer.MaxResults), func(pb *PlayerBuf) error {
			return dataOf[G](g).GetResults(pb)
		})
		if err != nil {
			return nil, fail(g, err)
		}
		return view, abi.ErrOK
	}

	m.GetMoveData = func(g *abi.Game, player abi.PlayerID, str string) (abi.MoveWireSync, abi.ErrorCode) {
		a := auxOf(g)
		md, err := dataOf[G](g).GetMoveData(player, str)
		if err != nil {
			return abi.MoveWireSync{}, fail(g, err)
		}
		return abi.MoveWireSync{MD: a.encodeMove(md), SyncCtr: abi.SyncCtrDefault}, abi.ErrOK
	}

	m.GetMoveStr = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
		a := auxOf(g)
		view, err := a.stageStr(a.moveStr, buf, func(sb *abi.StrBuf) error {
			return dataOf[G](g).GetMoveStr(player, mov.Decode(), sb)
		})
		if err != nil {
			return nil, fail(g, err)
		}
		return view, abi.ErrOK
	}

	if meta.Features.Options {
		m.ExportOptions = func(g *abi.Game, player abi.PlayerID, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
			a := auxOf(g)
			view, err := a.stageStr(a.options, buf, func(sb *abi.StrBuf) error {
				return any(dataOf[G](g)).(OptionsExporter).ExportOptions(player, sb)
			})
			if err != nil {
				return nil, fail(g, err)
			}
			return view, abi.ErrOK
		}
	}

	if meta.Features.Print {
		m.Print = func(g *abi.Game, player abi.PlayerID, buf *abi.StrBuf) ([]byte, abi.ErrorCode) {
			a := auxOf(g)
			view, err := a.stageStr(a.print, buf, func(sb *abi.StrBuf) error {
				return any(dataOf[G](g)).(Printer).Print(player, sb)
			})
			if err != nil {
				return nil, fail(g, err)
			}
			return view, abi.ErrOK
		}
	}

	if meta.Features.RandomMoves {
		m.GetConcreteMoveProbabilities = func(g *abi.Game, player abi.PlayerID, moves *abi.OutVec[abi.MoveDataWire], probs *abi.OutVec[float32]) ([]abi.MoveDataWire, []float32, abi.ErrorCode) {
			a := auxOf(g)
			r := any(dataOf[G](g)).(Randomizer)

			a.moveStage = a.moveStage[:0]
			a.tmpProbs.Reset()
			max := int(g.Sizer.MaxMoves)
			mb := &MoveBuf{moves: a.moveStage, max: max}
			pb := &ProbBuf{out: a.tmpProbs, max: max}
			if err := r.GetConcreteMoveProbabilities(player, mb, pb); err != nil {
				return nil, nil, fail(g, err)
			}
			a.moveStage = mb.moves

			moveDst := moves
			if moveDst == nil {
				moveDst = a.moves
			}
			moveDst.Reset()
			for _, m := range mb.moves {
				moveDst.Push(a.encodeMove(m))
			}

			probDst := probs
			if probDst == nil {
				probDst = a.probs
			}
			probDst.Reset()
			for _, p := range a.tmpProbs.Items() {
				probDst.Push(p)
			}
			return moveDst.Items(), probDst.Items(), abi.ErrOK
		}

		m.GetRandomMove = func(g *abi.Game, seed uint64) (abi.MoveWireSync, abi.ErrorCode) {
			a := auxOf(g)
			md, err := any(dataOf[G](g)).(Randomizer).GetRandomMove(seed)
			if err != nil {
				return abi.MoveWireSync{}, fail(g, err)
			}
			return abi.MoveWireSync{MD: a.encodeMove(md), SyncCtr: abi.SyncCtrDefault}, abi.ErrOK
		}
	}

	if meta.Features.HiddenInformation {
		m.GetActions = func(g *abi.Game, player abi.PlayerID, out *abi.OutVec[abi.MoveDataWire]) ([]abi.MoveDataWire, abi.ErrorCode) {
			a := auxOf(g)
			view, err := a.stageMoves(a.actions, out, int(g.Sizer.MaxActions), func(mb *MoveBuf) error {
				return any(dataOf[G](g)).(HiddenInformer).GetActions(player, mb)
			})
			if err != nil {
				return nil, fail(g, err)
			}
			return view, abi.ErrOK
		}

		m.MoveToAction = func(g *abi.Game, player abi.PlayerID, mov abi.MoveWireSync, target abi.PlayerID) (abi.MoveWireSync, abi.ErrorCode) {
			a := auxOf(g)
			md, err := any(dataOf[G](g)).(HiddenInformer).MoveToAction(player, mov.Decode(), target)
			if err != nil {
				return abi.MoveWireSync{}, fail(g, err)
			}
			return abi.MoveWireSync{MD: a.encodeMove(md), SyncCtr: mov.SyncCtr}, abi.ErrOK
		}

		m.RedactKeepState = func(g *abi.Game, players []abi.PlayerID) abi.ErrorCode {
			auxOf(g).clearScratch()
			if err := any(dataOf[G](g)).(HiddenInformer).RedactKeepState(players); err != nil {
				return fail(g, err)
			}
			return abi.ErrOK
		}
	}

	return m
}

// checkCapabilities panics when a declared feature bit has no matching
// capability implementation on G.
func checkCapabilities[G Methods[G]](meta Metadata) {
	var zero G
	requires := func(flag bool, ok bool, name string) {
		if flag && !ok {
			panic(fmt.Sprintf("game: %s feature enabled but %T does not implement game.%s",
				name, zero, name))
		}
	}
	_, opts := any(zero).(OptionsExporter)
	requires(meta.Features.Options, opts, "OptionsExporter")
	_, prt := any(zero).(Printer)
	requires(meta.Features.Print, prt, "Printer")
	_, rnd := any(zero).(Randomizer)
	requires(meta.Features.RandomMoves, rnd, "Randomizer")
	_, hid := any(zero).(HiddenInformer)
	requires(meta.Features.HiddenInformation, hid, "HiddenInformer")
}
