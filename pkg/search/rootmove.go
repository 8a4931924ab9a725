package search

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// RootMove tracks one root move's progress across iterative-deepening iterations.
type RootMove struct {
	Move         board.Move
	PrevScore    eval.Score // score from the previous completed iteration
	Score        eval.Score // running best score from the current iteration
	DepthReached int
}

func (r RootMove) String() string {
	return fmt.Sprintf("%v(prev=%v score=%v depth=%v)", r.Move, r.PrevScore, r.Score, r.DepthReached)
}

// RootMoveList is the ordered set of root moves a Searcher iterates over. It is never empty
// for a legal position with at least one legal move.
type RootMoveList struct {
	moves []RootMove
}

// NewRootMoveList builds a RootMoveList from the position's legal root moves.
func NewRootMoveList(moves []board.Move) *RootMoveList {
	ret := &RootMoveList{moves: make([]RootMove, len(moves))}
	for i, m := range moves {
		ret.moves[i] = RootMove{Move: m, PrevScore: eval.NegInf, Score: eval.NegInf}
	}
	return ret
}

// Rollback copies each move's current score into PrevScore and resets Score to -Inf ahead of
// a new iteration.
func (l *RootMoveList) Rollback() {
	for i := range l.moves {
		l.moves[i].PrevScore = l.moves[i].Score
		l.moves[i].Score = eval.NegInf
	}
}

// Sort orders the moves stably by Score, descending.
func (l *RootMoveList) Sort() {
	sort.SliceStable(l.moves, func(i, j int) bool {
		return l.moves[i].Score > l.moves[j].Score
	})
}

// SortByKey orders the moves stably by the given key function, descending.
func (l *RootMoveList) SortByKey(key func(RootMove) int) {
	sort.SliceStable(l.moves, func(i, j int) bool {
		return key(l.moves[i]) > key(l.moves[j])
	})
}

// Shuffle randomizes move order with r, used to diversify non-main worker search order.
func (l *RootMoveList) Shuffle(r *rand.Rand) {
	r.Shuffle(len(l.moves), func(i, j int) {
		l.moves[i], l.moves[j] = l.moves[j], l.moves[i]
	})
}

// Len returns the number of root moves.
func (l *RootMoveList) Len() int {
	return len(l.moves)
}

// First returns the highest-priority (index 0) root move.
func (l *RootMoveList) First() RootMove {
	return l.moves[0]
}

// At returns the root move at index i.
func (l *RootMoveList) At(i int) RootMove {
	return l.moves[i]
}

// Set updates the root move at index i.
func (l *RootMoveList) Set(i int, m RootMove) {
	l.moves[i] = m
}

// IndexOf returns the index of mov, if present.
func (l *RootMoveList) IndexOf(mov board.Move) (int, bool) {
	for i, rm := range l.moves {
		if rm.Move.Equals(mov) {
			return i, true
		}
	}
	return 0, false
}

// Moves returns the plain move list in current order, for move generation at the root.
func (l *RootMoveList) Moves() []board.Move {
	ret := make([]board.Move, len(l.moves))
	for i, rm := range l.moves {
		ret[i] = rm.Move
	}
	return ret
}
