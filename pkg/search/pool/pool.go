// Package pool contains the parallel search thread pool.
package pool

import (
	"context"
	"time"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/riftchess/rift/pkg/search"
)

// worker wraps a Searcher with the per-call dispatch signaling the pool's main goroutine uses
// to coordinate it: startCh wakes the worker for one SearchRoot call, searching reports back
// when it is done without the main goroutine having to poll.
type worker struct {
	searcher  *search.Searcher
	searching *search.GuardedBool
	startCh   chan struct{}
	kill      atomic.Bool
	best      search.RootMove
}

// ThreadPool runs N searchers concurrently against independent forks of the same board,
// sharing a transposition table and a stop flag. Worker 0 is "main": it alone consults the
// TimeManager and decides when to halt the search. Grounded on the teacher's
// searchctl.Iterative/Launcher dispatch pattern, generalized from one search harness to a
// fixed pool of long-lived workers per SPEC_FULL.md's lifecycle.
type ThreadPool struct {
	tt      *search.TranspositionTable
	ev      eval.Evaluator
	workers []*worker
	stop    *atomic.Bool

	rootMoves *search.RootMoveList
	limits    search.Limits

	// OnDepth, if set, is wired into the main worker's Searcher.OnDepth for every Go call.
	OnDepth func(best search.RootMove, depth int, elapsed time.Duration)
}

// NewThreadPool allocates n long-lived workers bound to forks of b, sharing tt and ev. Workers
// are allocated once and released only on pool shutdown via Close.
func NewThreadPool(n int, b *board.Board, ev eval.Evaluator, tt *search.TranspositionTable, seed int64) *ThreadPool {
	stop := atomic.NewBool(false)

	p := &ThreadPool{tt: tt, ev: ev, stop: stop}
	for id := 0; id < n; id++ {
		w := &worker{
			searcher:  search.NewSearcher(id, b.Fork(), ev, tt, stop, seed+int64(id)),
			searching: search.NewGuardedBool(),
			startCh:   make(chan struct{}, 1),
		}
		p.workers = append(p.workers, w)
		if id > 0 {
			go p.idle(w)
		}
	}
	return p
}

// idle is each non-main worker's lifetime loop: wait to be started, run one search, clear
// searching, repeat, until killed.
func (p *ThreadPool) idle(w *worker) {
	for range w.startCh {
		if w.kill.Load() {
			return
		}
		w.searching.Set(true)
		w.best = w.searcher.SearchRoot(context.Background(), p.rootMoves, p.limits, nil)
		w.searching.Set(false)
	}
}

// Go runs one search to completion: dispatches every non-main worker, runs the main worker
// locally, halts everyone once the main worker stops, and reconciles the best result.
func (p *ThreadPool) Go(ctx context.Context, b *board.Board, limits search.Limits, tc search.TimeControl, hasTimeControl bool) search.RootMove {
	p.stop.Store(false)
	p.tt.NewSearch()

	p.rootMoves = search.NewRootMoveList(b.Position().GeneratePseudoLegalMoves(b.Turn()))
	p.limits = limits

	var tm *search.TimeManager
	if hasTimeControl {
		tm = search.NewTimeManager(time.Now(), tc, b.Turn())
	}

	// (1) Rebind and release non-main workers onto their own board fork.

	for i := 1; i < len(p.workers); i++ {
		w := p.workers[i]
		w.searcher = search.NewSearcher(i, b.Fork(), p.ev, p.tt, p.stop, int64(i)+1)
		w.searching.Set(true)
		w.startCh <- struct{}{}
	}

	// (2) Run the main worker locally.

	main := p.workers[0]
	main.searcher = search.NewSearcher(0, b, p.ev, p.tt, p.stop, 1)
	main.searcher.OnDepth = p.OnDepth
	main.best = main.searcher.SearchRoot(ctx, p.rootMoves, limits, tm)

	// (3) Stop everyone, wait for non-main workers to finish their current iteration.

	p.stop.Store(true)
	for i := 1; i < len(p.workers); i++ {
		p.workers[i].searching.WaitUntilClear()
	}

	// (4) Best-thread selection: only meaningful for a fixed-depth search; otherwise the main
	// worker's result stands, since depth varies across workers under a time control.

	best := main.best
	if limits.Depth > 0 {
		for i := 1; i < len(p.workers); i++ {
			cand := p.workers[i].best
			scoreDiff := cand.Score - best.Score
			depthDiff := p.workers[i].searcher.DepthCompleted() - main.searcher.DepthCompleted()
			if scoreDiff > 0 && depthDiff >= 0 {
				best = cand
			}
		}
	}

	logw.Debugf(ctx, "search complete: %v", best)
	return best
}

// Halt signals every worker to stop at the next time check.
func (p *ThreadPool) Halt() {
	p.stop.Store(true)
}

// Close kills every worker goroutine. The pool is unusable afterward.
func (p *ThreadPool) Close() {
	for i := 1; i < len(p.workers); i++ {
		w := p.workers[i]
		w.kill.Store(true)
		w.startCh <- struct{}{}
	}
}

// Len returns the number of workers.
func (p *ThreadPool) Len() int {
	return len(p.workers)
}

// TotalNodes sums the node count searched by every worker in the most recent (or current) Go
// call.
func (p *ThreadPool) TotalNodes() uint64 {
	var total uint64
	for _, w := range p.workers {
		total += w.searcher.Nodes()
	}
	return total
}
