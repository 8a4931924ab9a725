package eval

import (
	"fmt"

	"github.com/riftchess/rift/pkg/board"
)

// Score is a signed centipawn value. Positive favors the side to move at the node where the
// score was produced, per the negamax convention. Mate scores are encoded as MATE-ply so that
// shorter mates score higher than longer ones; DRAW is exactly 0.
//
// If all pawns become queens and the opponent has only the king left, the standard material
// advantage score is 9*800 (p) + 900 (q) + 2*500 (r) + 2*300 (k) + 2*300 (b) = 10300 centipawns,
// so Score comfortably fits in an int16 alongside the MATE encoding below.
type Score int16

const (
	Draw     Score = 0
	Inf      Score = 32000
	NegInf   Score = -Inf
	MinScore Score = -31000
	MaxScore Score = 31000

	// MATE is the score for delivering mate on the current move (ply 0). A mate found N plies
	// deeper scores MATE-N, so the engine always prefers the shortest mate.
	MATE Score = 30000
)

func (s Score) String() string {
	if d, ok := s.MateDistance(); ok {
		return fmt.Sprintf("mate %d", d)
	}
	return fmt.Sprintf("%d", int(s))
}

// IsMate reports whether s encodes a forced mate, for either side.
func (s Score) IsMate() bool {
	return s > MaxScore || s < MinScore
}

// MateDistance returns the number of full moves to mate, signed: positive if the side to move
// at the root delivers it, negative if it is delivered against them.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > MaxScore:
		plies := int(MATE - s)
		return plies/2 + 1, true
	case s < MinScore:
		plies := int(MATE + s)
		return -(plies/2 + 1), true
	default:
		return 0, false
	}
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Score {
	return Score(c.Unit())
}

// Crop crops a Score into [MinScore;MaxScore], i.e. excludes mate encodings.
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
