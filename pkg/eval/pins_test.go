package eval_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPinsDetectsRookPin(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E3, Color: board.White, Piece: board.Knight},
		{Square: board.E8, Color: board.Black, Piece: board.Rook},
		{Square: board.A8, Color: board.Black, Piece: board.King},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	pins := eval.FindPins(pos, board.White, board.King)
	require.Len(t, pins, 1)
	assert.Equal(t, board.E8, pins[0].Attacker)
	assert.Equal(t, board.E3, pins[0].Pinned)
	assert.Equal(t, board.E1, pins[0].Target)
}

func TestFindPinsDetectsBishopPin(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.C3, Color: board.White, Piece: board.Knight},
		{Square: board.H8, Color: board.Black, Piece: board.Bishop},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	pins := eval.FindPins(pos, board.White, board.King)
	require.Len(t, pins, 1)
	assert.Equal(t, board.H8, pins[0].Attacker)
	assert.Equal(t, board.C3, pins[0].Pinned)
	assert.Equal(t, board.A1, pins[0].Target)
}

func TestFindPinsReturnsNoneWhenClear(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	pins := eval.FindPins(pos, board.White, board.King)
	assert.Empty(t, pins)
}
