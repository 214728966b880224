package event

import (
	"github.com/playmesh/plugbridge/abi"
)

// Base carries the routing fields shared by all events.
type Base struct {
	Type     abi.EventType
	ClientID uint32
	LobbyID  uint32
}

// Variant is one decoded lifecycle event.
type Variant interface {
	base() Base
}

// GameLoadMethods announces that the host loaded a game's method table.
type GameLoadMethods struct {
	Base     Base
	Methods  *abi.GameMethods
	InitInfo abi.GameInit
}

// GameUnload announces that the current game was unloaded.
type GameUnload struct {
	Base Base
}

// GameState announces a replaced game position. A nil State means the
// default position.
type GameState struct {
	Base  Base
	State *string
}

// GameMove announces one applied move.
type GameMove struct {
	Base   Base
	Player abi.PlayerID
	Data   abi.MoveDataSync
}

// Unknown wraps event types this bridge version does not know.
type Unknown struct {
	Base Base
}

func (e GameLoadMethods) base() Base { return e.Base }
func (e GameUnload) base() Base      { return e.Base }
func (e GameState) base() Base       { return e.Base }
func (e GameMove) base() Base        { return e.Base }
func (e Unknown) base() Base         { return e.Base }

// Decode converts a wire event into its safe variant. Payload fields are
// borrowed; they are only valid for the duration of the dispatch call
// that delivered the wire event.
func Decode(ev *abi.EventAny) Variant {
	b := Base{Type: ev.Type, ClientID: ev.ClientID, LobbyID: ev.LobbyID}
	switch ev.Type {
	case abi.EventGameLoadMethods:
		return GameLoadMethods{Base: b, Methods: ev.Methods, InitInfo: ev.InitInfo}
	case abi.EventGameUnload:
		return GameUnload{Base: b}
	case abi.EventGameState:
		return GameState{Base: b, State: ev.State}
	case abi.EventGameMove:
		return GameMove{Base: b, Player: ev.Player, Data: ev.Move.Decode()}
	default:
		return Unknown{Base: b}
	}
}

// NewGameMove builds an owned move event, deep-copying the move payload.
func NewGameMove(player abi.PlayerID, mov abi.MoveDataSync) abi.EventAny {
	owned := abi.MoveDataSync{MD: mov.MD.Clone(), SyncCtr: mov.SyncCtr}
	return abi.EventAny{
		Type:   abi.EventGameMove,
		Player: player,
		Move:   owned.Encode(),
	}
}

// NewGameState builds an owned state event.
func NewGameState(state string) abi.EventAny {
	s := state
	return abi.EventAny{
		Type:  abi.EventGameState,
		State: &s,
	}
}
