package eval_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCaptureFindsAttackingRook(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.A4, Color: board.White, Piece: board.Rook},
		{Square: board.H4, Color: board.Black, Piece: board.Pawn},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	attackers := eval.FindCapture(pos, board.White, board.H4)
	require.Len(t, attackers, 1)
	assert.Equal(t, board.Rook, attackers[0].Piece)
	assert.Equal(t, board.A4, attackers[0].Square)
}

func TestFindCaptureFindsAttackingPawn(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.D4, Color: board.White, Piece: board.Pawn},
		{Square: board.E5, Color: board.Black, Piece: board.Knight},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	attackers := eval.FindCapture(pos, board.White, board.E5)
	require.Len(t, attackers, 1)
	assert.Equal(t, board.Pawn, attackers[0].Piece)
	assert.Equal(t, board.D4, attackers[0].Square)
}

func TestFindCaptureReturnsNoneWhenUnattacked(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.A1, Color: board.White, Piece: board.Rook},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	attackers := eval.FindCapture(pos, board.White, board.H8)
	assert.Empty(t, attackers)
}

func TestSortByNominalValueAscending(t *testing.T) {
	pieces := []board.Placement{
		{Square: board.A1, Piece: board.Queen},
		{Square: board.B1, Piece: board.Pawn},
		{Square: board.C1, Piece: board.Rook},
	}

	sorted := eval.SortByNominalValue(pieces)
	require.Len(t, sorted, 3)
	assert.Equal(t, board.Pawn, sorted[0].Piece)
	assert.Equal(t, board.Rook, sorted[1].Piece)
	assert.Equal(t, board.Queen, sorted[2].Piece)
}
