package game

import (
	"fmt"

	"github.com/playmesh/plugbridge/abi"
)

// PlayerBuf collects player ids up to the bound the sizer declared.
// Exceeding the bound is a contract violation and panics.
type PlayerBuf struct {
	out *abi.OutVec[abi.PlayerID]
	max int
}

// Push appends one player id.
func (b *PlayerBuf) Push(p abi.PlayerID) {
	if b.out.Len() >= b.max {
		panic(fmt.Sprintf("game: player buffer overflow: declared max %d", b.max))
	}
	b.out.Push(p)
}

// Len returns the number of pushed ids.
func (b *PlayerBuf) Len() int { return b.out.Len() }

// MoveBuf collects move values up to the bound the sizer declared.
type MoveBuf struct {
	moves []abi.MoveData
	max   int
}

// Push appends one move value.
func (b *MoveBuf) Push(m abi.MoveData) {
	if len(b.moves) >= b.max {
		panic(fmt.Sprintf("game: move buffer overflow: declared max %d", b.max))
	}
	b.moves = append(b.moves, m)
}

// PushCode appends a fixed-code move.
func (b *MoveBuf) PushCode(c abi.MoveCode) {
	b.Push(abi.NewMoveCode(c))
}

// Len returns the number of pushed moves.
func (b *MoveBuf) Len() int { return len(b.moves) }

// ProbBuf collects per-move probabilities alongside a MoveBuf.
type ProbBuf struct {
	out *abi.OutVec[float32]
	max int
}

// Push appends one probability.
func (b *ProbBuf) Push(p float32) {
	if b.out.Len() >= b.max {
		panic(fmt.Sprintf("game: probability buffer overflow: declared max %d", b.max))
	}
	b.out.Push(p)
}

// Len returns the number of pushed probabilities.
func (b *ProbBuf) Len() int { return b.out.Len() }
