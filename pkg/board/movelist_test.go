package board_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveListNextReturnsHighestPriorityFirst(t *testing.T) {
	moves := []board.Move{
		board.NewMove(board.A2, board.A3, 0),
		board.NewMove(board.B2, board.B3, 0),
		board.NewMove(board.C2, board.C3, 0),
	}
	priorities := map[board.Move]board.MovePriority{
		moves[0]: 1,
		moves[1]: 99,
		moves[2]: 50,
	}

	ml := board.NewMoveList(moves, func(m board.Move) board.MovePriority { return priorities[m] })

	require.Equal(t, 3, ml.Size())

	first, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, moves[1], first)

	second, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, moves[2], second)

	third, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, moves[0], third)

	_, ok = ml.Next()
	assert.False(t, ok)
}

func TestMoveListEmpty(t *testing.T) {
	ml := board.NewMoveList(nil, func(board.Move) board.MovePriority { return 0 })
	assert.Equal(t, 0, ml.Size())

	_, ok := ml.Next()
	assert.False(t, ok)
}

func TestFirstPrioritizesGivenMove(t *testing.T) {
	pinned := board.NewMove(board.A2, board.A3, 0)
	other := board.NewMove(board.B2, board.B3, 0)

	fn := board.First(pinned, func(board.Move) board.MovePriority { return 1000 })

	assert.Greater(t, fn(pinned), fn(other))
}

func TestSortByPriorityDescending(t *testing.T) {
	a := board.NewMove(board.A2, board.A3, 0)
	b := board.NewMove(board.B2, board.B3, 0)
	c := board.NewMove(board.C2, board.C3, 0)
	moves := []board.Move{a, b, c}

	priorities := map[board.Move]board.MovePriority{a: 1, b: 3, c: 2}
	board.SortByPriority(moves, func(m board.Move) board.MovePriority { return priorities[m] })

	assert.Equal(t, []board.Move{b, c, a}, moves)
}
