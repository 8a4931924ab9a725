package board_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestLoss(t *testing.T) {
	assert.Equal(t, board.BlackWins, board.Loss(board.White))
	assert.Equal(t, board.WhiteWins, board.Loss(board.Black))
}

func TestResultIsTerminal(t *testing.T) {
	assert.False(t, board.Result{Outcome: board.Undecided}.IsTerminal())
	assert.True(t, board.Result{Outcome: board.Draw}.IsTerminal())
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "*", board.Result{Outcome: board.Undecided}.String())
	assert.Equal(t, "1-0", board.Result{Outcome: board.WhiteWins}.String())
	assert.Equal(t, "0-1", board.Result{Outcome: board.BlackWins}.String())
	assert.Equal(t, "1/2-1/2", board.Result{Outcome: board.Draw}.String())
}
