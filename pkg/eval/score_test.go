package eval_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestScoreIsMate(t *testing.T) {
	assert.False(t, eval.Draw.IsMate())
	assert.False(t, eval.MaxScore.IsMate())
	assert.False(t, eval.MinScore.IsMate())
	assert.True(t, (eval.MATE).IsMate())
	assert.True(t, (-eval.MATE).IsMate())
}

func TestScoreMateDistance(t *testing.T) {
	d, ok := eval.MATE.MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 1, d)

	d, ok = (eval.MATE - 1).MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 1, d)

	d, ok = (eval.MATE - 2).MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 2, d)

	d, ok = (-eval.MATE).MateDistance()
	assert.True(t, ok)
	assert.Equal(t, -1, d)

	_, ok = eval.Draw.MateDistance()
	assert.False(t, ok)
}

func TestScoreCrop(t *testing.T) {
	assert.Equal(t, eval.MaxScore, eval.Crop(eval.MATE))
	assert.Equal(t, eval.MinScore, eval.Crop(-eval.MATE))
	assert.Equal(t, eval.Score(100), eval.Crop(100))
}

func TestScoreMaxMin(t *testing.T) {
	assert.Equal(t, eval.Score(10), eval.Max(5, 10))
	assert.Equal(t, eval.Score(5), eval.Min(5, 10))
}

func TestUnit(t *testing.T) {
	assert.Equal(t, eval.Score(1), eval.Unit(board.White))
	assert.Equal(t, eval.Score(-1), eval.Unit(board.Black))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "0", eval.Draw.String())
	assert.Equal(t, "mate 1", eval.MATE.String())
	assert.Equal(t, "mate -1", (-eval.MATE).String())
}
