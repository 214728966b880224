package host

import (
	"go.uber.org/zap"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
)

// Driver owns one live game instance. It allocates the caller-supplied
// output buffers once, at the bounds the game declared during create,
// and reuses them across calls; the trampolines reset them before every
// commit. A Driver is not safe for concurrent use, matching the
// one-call-at-a-time contract of the underlying table.
type Driver struct {
	g *abi.Game

	stateBuf *abi.StrBuf
	moveBuf  *abi.StrBuf
	optsBuf  *abi.StrBuf
	printBuf *abi.StrBuf
	players  *abi.OutVec[abi.PlayerID]
	results  *abi.OutVec[abi.PlayerID]
	moves    *abi.OutVec[abi.MoveDataWire]
}

// New creates a game instance through the table and wraps it. A failed
// create is destroyed before returning so no handle leaks.
func New(methods *abi.GameMethods, init *abi.GameInit) (*Driver, error) {
	g := &abi.Game{Methods: methods}
	if code := methods.Create(g, init); !code.IsOK() {
		err := lastErr(g, errors.PhaseCreate, code)
		methods.Destroy(g)
		return nil, err
	}
	Logger().Debug("game instance opened",
		zap.String("game", methods.GameName),
		zap.String("impl", methods.ImplName),
	)
	return wrap(g), nil
}

// NewDefault creates a game instance in its default configuration.
func NewDefault(methods *abi.GameMethods) (*Driver, error) {
	return New(methods, &abi.GameInit{Kind: abi.GameInitDefault})
}

func wrap(g *abi.Game) *Driver {
	s := g.Sizer
	return &Driver{
		g:        g,
		stateBuf: abi.NewStrBuf(s.StateStr),
		moveBuf:  abi.NewStrBuf(s.MoveStr),
		optsBuf:  strBufOrNil(s.OptionsStr),
		printBuf: strBufOrNil(s.PrintStr),
		players:  abi.NewOutVec[abi.PlayerID](int(s.MaxPlayersToMove)),
		results:  abi.NewOutVec[abi.PlayerID](int(s.MaxResults)),
		moves:    abi.NewOutVec[abi.MoveDataWire](int(s.MaxMoves)),
	}
}

func strBufOrNil(size uint64) *abi.StrBuf {
	if size == 0 {
		return nil
	}
	return abi.NewStrBuf(size)
}

// lastErr reads the instance's error channel and rebuilds a structured
// error from the (code, message) pair.
func lastErr(g *abi.Game, phase errors.Phase, code abi.ErrorCode) error {
	var msg string
	if g.Methods.GetLastError != nil {
		msg = g.Methods.GetLastError(g)
	}
	return errors.FromCode(phase, code, msg)
}

func (d *Driver) check(phase errors.Phase, code abi.ErrorCode) error {
	if code.IsOK() {
		return nil
	}
	return lastErr(d.g, phase, code)
}

// Methods returns the underlying table, for metadata inspection.
func (d *Driver) Methods() *abi.GameMethods { return d.g.Methods }

// Sizer returns the bounds the game declared at create.
func (d *Driver) Sizer() abi.BufSizer { return d.g.Sizer }

// Close destroys the instance. Further calls on the driver are invalid.
func (d *Driver) Close() error {
	return d.check(errors.PhaseDestroy, d.g.Methods.Destroy(d.g))
}

// Clone duplicates the instance into an independent driver.
func (d *Driver) Clone() (*Driver, error) {
	target := &abi.Game{}
	if code := d.g.Methods.Clone(d.g, target); !code.IsOK() {
		return nil, lastErr(d.g, errors.PhaseClone, code)
	}
	return wrap(target), nil
}

// CopyFrom overwrites this instance's position with other's.
func (d *Driver) CopyFrom(other *Driver) error {
	return d.check(errors.PhaseMutate, d.g.Methods.CopyFrom(d.g, other.g))
}

// Compare reports whether both instances hold the same position.
func (d *Driver) Compare(other *Driver) (bool, error) {
	eq, code := d.g.Methods.Compare(d.g, other.g)
	return eq, d.check(errors.PhaseQuery, code)
}

// PlayerCount returns the number of players in this configuration.
func (d *Driver) PlayerCount() (uint8, error) {
	n, code := d.g.Methods.PlayerCount(d.g)
	return n, d.check(errors.PhaseQuery, code)
}

// ImportState loads the given position.
func (d *Driver) ImportState(state string) error {
	return d.check(errors.PhaseMutate, d.g.Methods.ImportState(d.g, &state))
}

// Reset returns the instance to its initial position.
func (d *Driver) Reset() error {
	return d.check(errors.PhaseMutate, d.g.Methods.ImportState(d.g, nil))
}

// ExportState renders the position as seen by player. PlayerNone asks
// for the omniscient view.
func (d *Driver) ExportState(player abi.PlayerID) (string, error) {
	view, code := d.g.Methods.ExportState(d.g, player, d.stateBuf)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return "", err
	}
	return string(view), nil
}

// PlayersToMove returns the players who may act. Empty means the game
// is over. The view is valid until the next PlayersToMove call.
func (d *Driver) PlayersToMove() ([]abi.PlayerID, error) {
	view, code := d.g.Methods.PlayersToMove(d.g, d.players)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return nil, err
	}
	return view, nil
}

// LegalMoves enumerates the moves available to player, decoded into
// storage-independent values.
func (d *Driver) LegalMoves(player abi.PlayerID) ([]abi.MoveData, error) {
	view, code := d.g.Methods.GetConcreteMoves(d.g, player, d.moves)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return nil, err
	}
	out := make([]abi.MoveData, len(view))
	for i, w := range view {
		out[i] = w.Decode().Clone()
	}
	return out, nil
}

// IsLegal reports whether the move is playable by player, as an error.
func (d *Driver) IsLegal(player abi.PlayerID, mov abi.MoveDataSync) error {
	return d.check(errors.PhaseQuery, d.g.Methods.IsLegalMove(d.g, player, mov.Encode()))
}

// MakeMove applies the move for player.
func (d *Driver) MakeMove(player abi.PlayerID, mov abi.MoveDataSync) error {
	return d.check(errors.PhaseMutate, d.g.Methods.MakeMove(d.g, player, mov.Encode()))
}

// MakeMoveCode applies a fixed-code move with the default sync counter.
func (d *Driver) MakeMoveCode(player abi.PlayerID, code abi.MoveCode) error {
	return d.MakeMove(player, abi.Sync(abi.NewMoveCode(code)))
}

// Results returns the winning players of a finished game.
func (d *Driver) Results() ([]abi.PlayerID, error) {
	view, code := d.g.Methods.GetResults(d.g, d.results)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return nil, err
	}
	return view, nil
}

// ParseMove turns player's move string into a move value.
func (d *Driver) ParseMove(player abi.PlayerID, str string) (abi.MoveDataSync, error) {
	w, code := d.g.Methods.GetMoveData(d.g, player, str)
	if err := d.check(errors.PhaseDecode, code); err != nil {
		return abi.MoveDataSync{}, err
	}
	md := w.Decode()
	return abi.MoveDataSync{MD: md.MD.Clone(), SyncCtr: md.SyncCtr}, nil
}

// MoveString renders the move as player's move string.
func (d *Driver) MoveString(player abi.PlayerID, mov abi.MoveDataSync) (string, error) {
	view, code := d.g.Methods.GetMoveStr(d.g, player, mov.Encode(), d.moveBuf)
	if err := d.check(errors.PhaseEncode, code); err != nil {
		return "", err
	}
	return string(view), nil
}

// ExportOptions renders the instance's options string. It fails when
// the game does not declare the options feature.
func (d *Driver) ExportOptions(player abi.PlayerID) (string, error) {
	if d.g.Methods.ExportOptions == nil {
		return "", errors.Unsupported(errors.PhaseHost, "options")
	}
	view, code := d.g.Methods.ExportOptions(d.g, player, d.optsBuf)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return "", err
	}
	return string(view), nil
}

// Print renders the human-readable board for player. It fails when the
// game does not declare the print feature.
func (d *Driver) Print(player abi.PlayerID) (string, error) {
	if d.g.Methods.Print == nil {
		return "", errors.Unsupported(errors.PhaseHost, "print")
	}
	view, code := d.g.Methods.Print(d.g, player, d.printBuf)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return "", err
	}
	return string(view), nil
}

// RandomMove draws the random player's move for the given seed. It
// fails when the game does not declare the random-moves feature.
func (d *Driver) RandomMove(seed uint64) (abi.MoveDataSync, error) {
	if d.g.Methods.GetRandomMove == nil {
		return abi.MoveDataSync{}, errors.Unsupported(errors.PhaseHost, "random moves")
	}
	w, code := d.g.Methods.GetRandomMove(d.g, seed)
	if err := d.check(errors.PhaseQuery, code); err != nil {
		return abi.MoveDataSync{}, err
	}
	md := w.Decode()
	return abi.MoveDataSync{MD: md.MD.Clone(), SyncCtr: md.SyncCtr}, nil
}

// Redact strips all state hidden from the given players. It fails when
// the game does not declare the hidden-information feature.
func (d *Driver) Redact(players []abi.PlayerID) error {
	if d.g.Methods.RedactKeepState == nil {
		return errors.Unsupported(errors.PhaseHost, "hidden information")
	}
	return d.check(errors.PhaseMutate, d.g.Methods.RedactKeepState(d.g, players))
}
