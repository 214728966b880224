package abi

// PlayerID identifies one mover inside a game instance. Identifiers are
// dense starting at 1; 0 is reserved for "no player" and the top value
// for the random "player" in games with chance moves.
type PlayerID uint8

const (
	PlayerNone PlayerID = 0
	PlayerRand PlayerID = 0xFF
)

// MoveCode is the fixed-width integer encoding of a move, used when the
// game's move space is small and enumerable.
type MoveCode uint64

// MoveNone is the reserved invalid move code.
const MoveNone MoveCode = ^MoveCode(0)

// SyncCtrDefault is the synchronization counter value plain games attach
// to their moves. Games with hidden information or randomness manage the
// counter themselves to detect stale move application.
const SyncCtrDefault uint64 = 1

// ABI versions the plugin registration entry points report. The host
// rejects plugins built against a different version.
const (
	GameAPIVersion     uint64 = 34
	FrontendAPIVersion uint64 = 7
)
