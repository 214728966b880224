package game

import (
	"github.com/playmesh/plugbridge/abi"
)

// Methods is the capability contract a game implementation fulfills.
//
// The type parameter is the implementation type itself (use a pointer
// type so mutating methods work): type Nim struct{...} implements
// Methods[*Nim]. Construction is separate, see Creator.
//
// Implementations must be safe to hand to any goroutine; the host may
// run different instances on different goroutines, though it never
// calls into one instance concurrently.
type Methods[G any] interface {
	// CopyFrom overwrites the receiver's state with other's, reusing
	// allocations where possible.
	CopyFrom(other G) error
	// Clone returns a value-equal, storage-independent duplicate.
	Clone() G
	// Equal reports value equality with other.
	Equal(other G) bool
	// PlayerCount returns the number of players in this game.
	PlayerCount() (uint8, error)
	// ImportState replaces the position with the one encoded in state.
	// A nil state restores the initial position.
	ImportState(state *string) error
	// ExportState writes the current position as plain text.
	ExportState(player abi.PlayerID, buf *abi.StrBuf) error
	// PlayersToMove reports the players that may act now.
	PlayersToMove(players *PlayerBuf) error
	// GetConcreteMoves enumerates the legal moves available to player.
	GetConcreteMoves(player abi.PlayerID, moves *MoveBuf) error
	// IsLegalMove reports whether the move is legal for player here.
	IsLegalMove(player abi.PlayerID, mov abi.MoveDataSync) error
	// MakeMove applies a move previously validated by IsLegalMove.
	MakeMove(player abi.PlayerID, mov abi.MoveDataSync) error
	// GetResults reports the winning players of a finished game.
	GetResults(players *PlayerBuf) error
	// GetMoveData parses a human-readable move string.
	GetMoveData(player abi.PlayerID, str string) (abi.MoveData, error)
	// GetMoveStr writes a human-readable form of the move.
	GetMoveStr(player abi.PlayerID, mov abi.MoveDataSync, buf *abi.StrBuf) error
}

// Creator constructs a game instance from an initialization description
// and declares the buffer bounds the host may trust.
type Creator[G any] func(init *abi.GameInit) (G, abi.BufSizer, error)

// Destroyer is implemented by games that need teardown beyond garbage
// collection. The bridge invokes it exactly once, from destroy.
type Destroyer interface {
	Destroy()
}

// OptionsExporter must be implemented when the options feature flag is
// enabled.
type OptionsExporter interface {
	ExportOptions(player abi.PlayerID, buf *abi.StrBuf) error
}

// Printer must be implemented when the print feature flag is enabled.
type Printer interface {
	Print(player abi.PlayerID, buf *abi.StrBuf) error
}

// Randomizer must be implemented when the random-moves feature flag is
// enabled.
type Randomizer interface {
	GetConcreteMoveProbabilities(player abi.PlayerID, moves *MoveBuf, probs *ProbBuf) error
	GetRandomMove(seed uint64) (abi.MoveData, error)
}

// HiddenInformer must be implemented when the hidden-information feature
// flag is enabled.
type HiddenInformer interface {
	// GetActions enumerates player's distinguishable actions.
	GetActions(player abi.PlayerID, moves *MoveBuf) error
	// MoveToAction translates a move into target's action view.
	MoveToAction(player abi.PlayerID, mov abi.MoveDataSync, target abi.PlayerID) (abi.MoveData, error)
	// RedactKeepState strips information not visible to players.
	RedactKeepState(players []abi.PlayerID) error
}

// Metadata is the static per-implementation record the table builder
// embeds into the exported methods.
type Metadata struct {
	GameName    string
	VariantName string
	ImplName    string
	Version     abi.Semver
	Features    abi.GameFeatureFlags
}
