// Package reference contains simple, deliberately unoptimized searchers kept alongside the
// production Searcher as a correctness oracle: MiniMaxSearcher and AlphaBetaSearcher must
// agree on every position, and ParallelMiniMaxSearcher/JamboreeSearcher must agree with the
// serial MiniMaxSearcher. None of these searchers consult a transposition table or the
// thread pool's time management; they run to a fixed depth and return.
package reference

import (
	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// legalMoves filters the pseudo-legal moves of the position to move down to the legal ones,
// grounded on the teacher's PushMove/PopMove probing idiom but without mutating b.
func legalMoves(b *board.Board) []board.Move {
	pos := b.Position()
	turn := b.Turn()

	var ret []board.Move
	for _, m := range pos.GeneratePseudoLegalMoves(turn) {
		if pos.LegalMove(turn, m) {
			ret = append(ret, m)
		}
	}
	return ret
}

// terminal returns the score of a position with no legal moves at the given depth below the
// root: mate if the side to move is in check, else a draw. Both MiniMaxSearcher and
// AlphaBetaSearcher call this exact function so a mismatch between them can never be blamed
// on a difference in terminal scoring.
func terminal(b *board.Board, depth int) eval.Score {
	if b.InCheck() {
		return eval.MATE - eval.Score(depth)
	}
	return eval.Draw
}
