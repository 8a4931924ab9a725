package reference

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// ParallelMiniMaxSearcher splits the root moves across up to Workers goroutines, each
// exploring its own board.Fork independently and in full: no alpha-beta window is shared
// between branches, so the total work done is identical to MiniMaxSearcher, only
// parallelized. Grounded on the errgroup.Group fan-out pattern in
// other_examples/1f591a8b_bluebear94-odnocam__endgame-negamax-solver.go.go, bounded here by a
// semaphore channel rather than one goroutine per leaf.
type ParallelMiniMaxSearcher struct {
	Eval    eval.Evaluator
	Workers int
}

func (s ParallelMiniMaxSearcher) workers() int {
	if s.Workers <= 0 {
		return 1
	}
	return s.Workers
}

// BestMoveDepth returns the best move and its score from the side to move's perspective,
// searching depth plies. The result is identical to MiniMaxSearcher.BestMoveDepth up to
// tie-breaking among equally scored moves.
func (s ParallelMiniMaxSearcher) BestMoveDepth(ctx context.Context, b *board.Board, depth int) (board.Move, eval.Score) {
	moves := legalMoves(b)
	if len(moves) == 0 {
		return board.NoMove, terminal(b, depth)
	}

	scores := make([]eval.Score, len(moves))
	sem := make(chan struct{}, s.workers())

	g, ctx := errgroup.WithContext(ctx)
	mm := MiniMaxSearcher{Eval: s.Eval}
	for i, m := range moves {
		i, m := i, m
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()

			fork := b.Fork()
			fork.ApplyMove(m)
			scores[i] = -mm.minimax(ctx, fork, depth-1)
			return nil
		})
	}
	_ = g.Wait() // mm.minimax never returns an error

	best := board.NoMove
	bestScore := eval.NegInf
	for i, m := range moves {
		if best == board.NoMove || scores[i] > bestScore {
			best = m
			bestScore = scores[i]
		}
	}
	return best, bestScore
}

// JamboreeSearcher implements the Jamboree algorithm: the first (presumably best-ordered)
// move is searched serially to establish an alpha bound, then every remaining move is probed
// in parallel under a null window around that bound; any probe that fails high is re-searched
// serially with a full window once the parallel sweep completes, since a null-window result
// only proves a move is at least as good, not by how much. Grounded on the same errgroup
// fan-out pattern as ParallelMiniMaxSearcher, narrowed per SPEC_FULL.md's parallel-search
// section.
type JamboreeSearcher struct {
	Eval    eval.Evaluator
	Workers int
}

func (s JamboreeSearcher) workers() int {
	if s.Workers <= 0 {
		return 1
	}
	return s.Workers
}

func (s JamboreeSearcher) BestMoveDepth(ctx context.Context, b *board.Board, depth int) (board.Move, eval.Score) {
	moves := legalMoves(b)
	if len(moves) == 0 {
		return board.NoMove, terminal(b, depth)
	}

	ab := AlphaBetaSearcher{Eval: s.Eval}

	b.ApplyMove(moves[0])
	alpha := -ab.alphaBeta(ctx, b, depth-1, eval.NegInf, eval.Inf)
	b.UndoMove()

	best := moves[0]
	bestScore := alpha

	if len(moves) == 1 {
		return best, bestScore
	}

	type probe struct {
		move    board.Move
		score   eval.Score
		failed  bool
	}
	results := make([]probe, len(moves)-1)
	sem := make(chan struct{}, s.workers())

	g, ctx := errgroup.WithContext(ctx)
	for idx, m := range moves[1:] {
		idx, m, a := idx, m, alpha
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()

			fork := b.Fork()
			fork.ApplyMove(m)
			score := -ab.alphaBeta(ctx, fork, depth-1, -a-1, -a)
			fork.UndoMove()

			results[idx] = probe{move: m, score: score, failed: score > a}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.score > bestScore && !r.failed {
			best = r.move
			bestScore = r.score
		}
	}

	// Re-search every null-window fail-high serially with a full window: a fail-high only
	// proves the move is at least a+1, not its true value.
	for _, r := range results {
		if !r.failed {
			continue
		}
		b.ApplyMove(r.move)
		score := -ab.alphaBeta(ctx, b, depth-1, -eval.Inf, -bestScore)
		b.UndoMove()

		if score > bestScore {
			best = r.move
			bestScore = score
		}
	}

	return best, bestScore
}
