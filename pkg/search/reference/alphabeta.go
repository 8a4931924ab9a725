package reference

import (
	"context"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// AlphaBetaSearcher implements fail-soft alpha-beta pruning, grounded on the teacher's
// search.AlphaBeta but stripped of transposition table, move ordering, and quiescence: it
// must return the exact same score and, on ties, the same move as MiniMaxSearcher for every
// position, since that agreement is what validates the pruning is sound.
type AlphaBetaSearcher struct {
	Eval eval.Evaluator
}

// BestMoveDepth returns the best move and its score from the side to move's perspective,
// searching depth plies.
func (s AlphaBetaSearcher) BestMoveDepth(ctx context.Context, b *board.Board, depth int) (board.Move, eval.Score) {
	moves := legalMoves(b)
	if len(moves) == 0 {
		return board.NoMove, terminal(b, depth)
	}

	alpha, beta := eval.NegInf, eval.Inf
	best := board.NoMove
	bestScore := eval.NegInf
	for _, m := range moves {
		b.ApplyMove(m)
		score := -s.alphaBeta(ctx, b, depth-1, -beta, -alpha)
		b.UndoMove()

		if best == board.NoMove || score > bestScore {
			best = m
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, bestScore
}

// alphaBeta returns the score of b from the side to move's perspective, bounded by
// [alpha, beta], searching depth plies.
func (s AlphaBetaSearcher) alphaBeta(ctx context.Context, b *board.Board, depth int, alpha, beta eval.Score) eval.Score {
	if depth <= 0 {
		return s.Eval.Evaluate(ctx, b)
	}

	moves := legalMoves(b)
	if len(moves) == 0 {
		return terminal(b, depth)
	}

	best := eval.NegInf
	for _, m := range moves {
		b.ApplyMove(m)
		score := -s.alphaBeta(ctx, b, depth-1, -beta, -alpha)
		b.UndoMove()

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break // beta cutoff
		}
	}
	return best
}
