package reference

import (
	"context"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// MiniMaxSearcher implements naive fixed-depth minimax, grounded on the teacher's
// search.Minimax. Kept deliberately simple and free of any pruning, ordering, or TT lookup
// so it can serve as the ground truth that AlphaBetaSearcher is checked against.
type MiniMaxSearcher struct {
	Eval eval.Evaluator
}

// BestMoveDepth returns the best move and its score from the side to move's perspective,
// searching depth plies.
func (s MiniMaxSearcher) BestMoveDepth(ctx context.Context, b *board.Board, depth int) (board.Move, eval.Score) {
	moves := legalMoves(b)
	if len(moves) == 0 {
		return board.NoMove, terminal(b, depth)
	}

	best := board.NoMove
	bestScore := eval.NegInf
	for _, m := range moves {
		b.ApplyMove(m)
		score := -s.minimax(ctx, b, depth-1)
		b.UndoMove()

		if best == board.NoMove || score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best, bestScore
}

// minimax returns the score of b from the side to move's perspective, searching depth plies.
func (s MiniMaxSearcher) minimax(ctx context.Context, b *board.Board, depth int) eval.Score {
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
		score := -s.minimax(ctx, b, depth-1)
		b.UndoMove()

		if score > best {
			best = score
		}
	}
	return best
}
