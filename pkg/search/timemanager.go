package search

import (
	"time"

	"github.com/riftchess/rift/pkg/board"
)

// TimeControl describes a UCI `go` command's clock parameters for one side.
type TimeControl struct {
	White, Black     time.Duration
	WhiteInc, BlackInc time.Duration
	MovesToGo        int // 0 == rest of game
}

// TimeManager computes ideal/maximum search-time budgets for one move and tracks elapsed
// time against them, grounded on the teacher's searchctl.TimeControl.Limits but reworked to
// distinguish a soft "ideal" budget (stability-adjustable across iterations) from a hard
// "maximum" ceiling enforced by checkTime, per SPEC_FULL.md's time-management design.
type TimeManager struct {
	start        time.Time
	ideal, maximum time.Duration
}

// NewTimeManager computes the ideal and maximum time budgets for turn given tc.
func NewTimeManager(start time.Time, tc TimeControl, turn board.Color) *TimeManager {
	remainder, inc := tc.White, tc.WhiteInc
	if turn == board.Black {
		remainder, inc = tc.Black, tc.BlackInc
	}

	moves := 40
	if tc.MovesToGo > 0 {
		moves = tc.MovesToGo
	}

	ideal := remainder/time.Duration(moves) + inc*3/4
	maximum := remainder * 4 / 5
	if k := ideal * 5; k < maximum {
		maximum = k
	}
	if ideal > maximum {
		ideal = maximum
	}

	return &TimeManager{start: start, ideal: ideal, maximum: maximum}
}

// IdealTime returns the soft per-move budget.
func (m *TimeManager) IdealTime() time.Duration {
	return m.ideal
}

// MaximumTime returns the hard per-move ceiling.
func (m *TimeManager) MaximumTime() time.Duration {
	return m.maximum
}

// Elapsed returns the time spent searching this move so far.
func (m *TimeManager) Elapsed() time.Duration {
	return time.Since(m.start)
}
