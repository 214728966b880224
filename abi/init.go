package abi

// GameInitKind discriminates the initialization description passed to
// create.
type GameInitKind uint8

const (
	// GameInitDefault asks for the game's default position and options.
	GameInitDefault GameInitKind = iota
	// GameInitStandard carries optional options, legacy and state
	// strings. Nil pointers mean "use the default".
	GameInitStandard
	// GameInitSerialized carries an opaque serialized game produced by a
	// previous export.
	GameInitSerialized
)

// GameInit describes how a game instance should be initialized.
type GameInit struct {
	Kind GameInitKind

	// Standard fields. Only meaningful when Kind is GameInitStandard.
	Opts   *string
	Legacy *string
	State  *string

	// Serialized payload. Only meaningful when Kind is GameInitSerialized.
	Serialized []byte
}

// StandardInit builds a standard initialization description. Empty
// strings are passed as absent.
func StandardInit(opts, state string) *GameInit {
	init := &GameInit{Kind: GameInitStandard}
	if opts != "" {
		init.Opts = &opts
	}
	if state != "" {
		init.State = &state
	}
	return init
}
