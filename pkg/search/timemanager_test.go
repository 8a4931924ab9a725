package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/search"
)

func TestNewTimeManagerWhiteToMove(t *testing.T) {
	tc := search.TimeControl{White: 60 * time.Second, WhiteInc: 1 * time.Second, MovesToGo: 20}
	tm := search.NewTimeManager(time.Now(), tc, board.White)

	assert.Greater(t, tm.IdealTime(), time.Duration(0))
	assert.GreaterOrEqual(t, tm.MaximumTime(), tm.IdealTime())
}

func TestNewTimeManagerUsesSideToMoveClock(t *testing.T) {
	tc := search.TimeControl{White: 10 * time.Second, Black: 100 * time.Second, MovesToGo: 10}

	white := search.NewTimeManager(time.Now(), tc, board.White)
	black := search.NewTimeManager(time.Now(), tc, board.Black)

	assert.Less(t, white.IdealTime(), black.IdealTime())
}

func TestNewTimeManagerMaximumCappedByRemainder(t *testing.T) {
	tc := search.TimeControl{White: 100 * time.Second, MovesToGo: 1}
	tm := search.NewTimeManager(time.Now(), tc, board.White)

	assert.LessOrEqual(t, tm.MaximumTime(), tc.White*4/5)
}

func TestNewTimeManagerZeroTimeControl(t *testing.T) {
	tm := search.NewTimeManager(time.Now(), search.TimeControl{}, board.White)

	assert.Equal(t, time.Duration(0), tm.IdealTime())
	assert.Equal(t, time.Duration(0), tm.MaximumTime())
}

func TestTimeManagerElapsed(t *testing.T) {
	tm := search.NewTimeManager(time.Now().Add(-50*time.Millisecond), search.TimeControl{}, board.White)

	assert.GreaterOrEqual(t, tm.Elapsed(), 50*time.Millisecond)
}
