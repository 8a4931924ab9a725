package search_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/riftchess/rift/pkg/search"
)

func newMoves() []board.Move {
	return []board.Move{
		board.NewMove(board.E2, board.E4, 0),
		board.NewMove(board.D2, board.D4, 0),
		board.NewMove(board.G1, board.F3, 0),
	}
}

func TestNewRootMoveListInitializesNegInf(t *testing.T) {
	l := search.NewRootMoveList(newMoves())
	require.Equal(t, 3, l.Len())

	for i := 0; i < l.Len(); i++ {
		rm := l.At(i)
		assert.Equal(t, eval.NegInf, rm.PrevScore)
		assert.Equal(t, eval.NegInf, rm.Score)
	}
}

func TestRootMoveListSort(t *testing.T) {
	l := search.NewRootMoveList(newMoves())

	rm0 := l.At(0)
	rm0.Score = 10
	l.Set(0, rm0)

	rm1 := l.At(1)
	rm1.Score = 50
	l.Set(1, rm1)

	l.Sort()

	assert.Equal(t, eval.Score(50), l.First().Score)
}

func TestRootMoveListRollback(t *testing.T) {
	l := search.NewRootMoveList(newMoves())

	rm := l.At(0)
	rm.Score = 77
	l.Set(0, rm)

	l.Rollback()

	got := l.At(0)
	assert.Equal(t, eval.Score(77), got.PrevScore)
	assert.Equal(t, eval.NegInf, got.Score)
}

func TestRootMoveListIndexOf(t *testing.T) {
	moves := newMoves()
	l := search.NewRootMoveList(moves)

	idx, ok := l.IndexOf(moves[1])
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = l.IndexOf(board.NewMove(board.H2, board.H4, 0))
	assert.False(t, ok)
}

func TestRootMoveListMoves(t *testing.T) {
	moves := newMoves()
	l := search.NewRootMoveList(moves)

	assert.Equal(t, moves, l.Moves())
}

func TestRootMoveListShufflePreservesSet(t *testing.T) {
	moves := newMoves()
	l := search.NewRootMoveList(moves)

	l.Shuffle(rand.New(rand.NewSource(1)))

	shuffled := l.Moves()
	assert.ElementsMatch(t, moves, shuffled)
}

func TestRootMoveListSortByKey(t *testing.T) {
	l := search.NewRootMoveList(newMoves())

	l.SortByKey(func(rm search.RootMove) int {
		if rm.Move.To() == board.D4 {
			return 100
		}
		return 0
	})

	assert.Equal(t, board.D2, l.First().Move.From())
}
