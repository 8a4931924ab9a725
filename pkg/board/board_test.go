package board_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInitialBoard(t *testing.T) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

func TestBoardApplyUndoMoveRoundTrip(t *testing.T) {
	b := newInitialBoard(t)
	before := b.String()
	beforeHash := b.Zobrist()

	m := board.NewMove(board.E2, board.E4, 0)
	require.True(t, b.ApplyMove(m))
	assert.NotEqual(t, beforeHash, b.Zobrist())
	assert.Equal(t, board.Black, b.Turn())

	undone, ok := b.UndoMove()
	require.True(t, ok)
	assert.Equal(t, m, undone)
	assert.Equal(t, before, b.String())
	assert.Equal(t, beforeHash, b.Zobrist())
	assert.Equal(t, board.White, b.Turn())
}

func TestBoardApplyMoveRejectsExposedCheck(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.E2, Color: board.White, Piece: board.Knight},
		{Square: board.E8, Color: board.Black, Piece: board.Rook},
		{Square: board.A8, Color: board.Black, Piece: board.King},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	b := board.NewBoard(board.NewZobristTable(1), pos, board.White, 0, 1)

	m := board.NewMove(board.E2, board.C3, 0)
	assert.False(t, b.ApplyMove(m))
}

func TestBoardForkIsIndependent(t *testing.T) {
	b := newInitialBoard(t)
	fork := b.Fork()

	require.True(t, fork.ApplyMove(board.NewMove(board.E2, board.E4, 0)))

	assert.NotEqual(t, b.Zobrist(), fork.Zobrist())
	assert.Equal(t, board.White, b.Turn())
	assert.Equal(t, board.Black, fork.Turn())
}

func TestBoardInCheck(t *testing.T) {
	b := newInitialBoard(t)
	assert.False(t, b.InCheck())
}
