package abi

// Game is the opaque instance handle the host owns for one game. The two
// extension slots carry the implementer's object (Data1) and the
// bridge's auxiliary state (Data2); the host never inspects either. Both
// slots are populated for a live instance and both nil after destroy;
// partial states are never observable.
type Game struct {
	Methods *GameMethods
	Sizer   BufSizer

	Data1 any
	Data2 any
}

// GameMethods is the exported method table for one game implementation.
// Entries for unset feature bits are nil. All entries are synchronous
// and must be called one at a time per handle; distinct handles are
// independent.
//
// Output entries follow the output-buffer protocol: when the caller
// passes a buffer it is written in place, when it passes nil the bridge
// writes into its per-kind auxiliary buffer. Either way the returned
// view is valid until the next call that writes the same buffer slot.
type GameMethods struct {
	GameName    string
	VariantName string
	ImplName    string
	Version     Semver
	Features    GameFeatureFlags

	GetLastError func(g *Game) string

	Create   func(g *Game, init *GameInit) ErrorCode
	Destroy  func(g *Game) ErrorCode
	Clone    func(g *Game, target *Game) ErrorCode
	CopyFrom func(g *Game, other *Game) ErrorCode
	Compare  func(g *Game, other *Game) (bool, ErrorCode)

	PlayerCount func(g *Game) (uint8, ErrorCode)
	ImportState func(g *Game, state *string) ErrorCode
	ExportState func(g *Game, player PlayerID, buf *StrBuf) ([]byte, ErrorCode)

	PlayersToMove    func(g *Game, out *OutVec[PlayerID]) ([]PlayerID, ErrorCode)
	GetConcreteMoves func(g *Game, player PlayerID, out *OutVec[MoveDataWire]) ([]MoveDataWire, ErrorCode)
	IsLegalMove      func(g *Game, player PlayerID, mov MoveWireSync) ErrorCode
	MakeMove         func(g *Game, player PlayerID, mov MoveWireSync) ErrorCode
	GetResults       func(g *Game, out *OutVec[PlayerID]) ([]PlayerID, ErrorCode)

	GetMoveData func(g *Game, player PlayerID, str string) (MoveWireSync, ErrorCode)
	GetMoveStr  func(g *Game, player PlayerID, mov MoveWireSync, buf *StrBuf) ([]byte, ErrorCode)

	// Optional: options feature.
	ExportOptions func(g *Game, player PlayerID, buf *StrBuf) ([]byte, ErrorCode)

	// Optional: print feature.
	Print func(g *Game, player PlayerID, buf *StrBuf) ([]byte, ErrorCode)

	// Optional: random-moves feature.
	GetConcreteMoveProbabilities func(g *Game, player PlayerID, moves *OutVec[MoveDataWire], probs *OutVec[float32]) ([]MoveDataWire, []float32, ErrorCode)
	GetRandomMove                func(g *Game, seed uint64) (MoveWireSync, ErrorCode)

	// Optional: hidden-information feature.
	GetActions      func(g *Game, player PlayerID, out *OutVec[MoveDataWire]) ([]MoveDataWire, ErrorCode)
	MoveToAction    func(g *Game, player PlayerID, mov MoveWireSync, target PlayerID) (MoveWireSync, ErrorCode)
	RedactKeepState func(g *Game, players []PlayerID) ErrorCode
}
