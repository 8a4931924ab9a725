// Package engine encapsulates game state, search dispatch, and the lifecycle operations
// (reset, move, takeback, analyze, halt) that the UCI driver and other front ends drive.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/board/fen"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/riftchess/rift/pkg/journal"
	"github.com/riftchess/rift/pkg/livepv"
	"github.com/riftchess/rift/pkg/search"
	"github.com/riftchess/rift/pkg/search/pool"
)

var version = build.NewVersion(0, 1, 0)

// Options are runtime-adjustable search parameters.
type Options struct {
	Depth   int // 0 == unlimited
	Hash    int // TT size in MB; <= 0 uses the smallest (1MB) table
	Threads int // worker count; <= 0 treated as 1
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB, threads=%v}", o.Depth, o.Hash, o.Threads)
}

func (o Options) threads() int {
	if o.Threads <= 0 {
		return 1
	}
	return o.Threads
}

// PV is one reported line: the principal variation and stats of a completed iteration.
type PV struct {
	Depth int
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Moves []board.Move
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// Engine encapsulates game-playing logic: board state, transposition table, and the worker
// pool, grounded on the teacher's pkg/engine/engine.go but generalized from one launcher/root
// search to a pool.ThreadPool. Opening-book selection (the teacher's book.go) is dropped.
type Engine struct {
	name, author string

	zt   *board.ZobristTable
	seed int64
	opts Options

	journal   *journal.Store     // nil if disabled
	broadcast *livepv.Broadcaster // nil if disabled

	mu sync.Mutex
	b  *board.Board
	tt *search.TranspositionTable
	ev eval.Evaluator
	p  *pool.ThreadPool

	// active, done and last coordinate the search goroutine spawned by Analyze with Halt and
	// haltLocked, without those readers sharing the same out channel a caller (the UCI
	// driver) is independently draining. done is closed, and last set, exactly once per
	// search, right before the search goroutine's final send on out.
	active atomic.Bool
	done   chan struct{}
	lastMu sync.Mutex
	last   PV
}

// Option is an engine construction option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist configures the engine to use the given random seed instead of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithJournal enables analysis persistence to the given store.
func WithJournal(j *journal.Store) Option {
	return func(e *Engine) { e.journal = j }
}

// WithBroadcaster enables live PV streaming to spectators.
func WithBroadcaster(b *livepv.Broadcaster) Option {
	return func(e *Engine) { e.broadcast = b }
}

// New constructs an engine at the initial position.
func New(ctx context.Context, name, author string, ev eval.Evaluator, opts ...Option) *Engine {
	e := &Engine{name: name, author: author, ev: ev, opts: Options{Threads: 1}}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// SetDepth changes the default search depth limit. Takes effect on the next Analyze.
func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
}

// SetHash changes the TT size in MB. Takes effect on the next Reset.
func (e *Engine) SetHash(mb int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Hash = mb
}

// SetThreads changes the worker count. Takes effect on the next Reset.
func (e *Engine) SetThreads(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Threads = n
}

// Board returns a forked copy of the current board, safe for the caller to inspect or probe.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b.Fork()
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to the given FEN position and rebuilds the TT and worker pool.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, hash=%vMB, threads=%v", position, e.opts.Depth, e.opts.Hash, e.opts.threads())

	e.haltLocked(ctx)
	if e.p != nil {
		e.p.Close()
		e.p = nil
	}

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, noprogress, fullmoves)

	size := e.opts.Hash
	if size <= 0 {
		size = 1 // smallest usable table; the teacher's NoTranspositionTable equivalent is
		// dropped since every entry path in Searcher assumes a non-nil *TranspositionTable.
	}
	if e.journal != nil {
		e.tt = search.NewTranspositionTableLogged(ctx, size)
	} else {
		e.tt = search.NewTranspositionTable(size)
	}

	e.p = pool.NewThreadPool(e.opts.threads(), e.b, e.ev, e.tt, e.seed)

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move applies an opponent (or own) move, specified in long algebraic notation.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltLocked(ctx)

	for _, m := range e.b.Position().GeneratePseudoLegalMoves(e.b.Turn()) {
		if m.From() != candidate.From() || m.To() != candidate.To() {
			continue
		}
		if p1, ok1 := m.Promotion(); ok1 {
			if p2, ok2 := candidate.Promotion(); !ok2 || p1 != p2 {
				continue
			}
		}

		if !e.b.ApplyMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}
		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked(ctx)

	m, ok := e.b.UndoMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}
	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze starts a search of the current position and returns a channel of PV updates, one
// per completed iteration, closed when the search ends.
func (e *Engine) Analyze(ctx context.Context, depth int, tc search.TimeControl, hasTimeControl bool) (<-chan PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active.Load() {
		return nil, fmt.Errorf("search already active")
	}
	if depth <= 0 {
		depth = e.opts.Depth
	}

	logw.Infof(ctx, "Analyze %v, depth=%v", e.b, depth)

	out := make(chan PV, 400)
	done := make(chan struct{})
	e.done = done
	e.active.Store(true)

	b := e.b.Fork()
	limits := search.Limits{Depth: depth}

	e.p.OnDepth = func(best search.RootMove, d int, elapsed time.Duration) {
		pv := PV{Depth: d, Score: best.Score, Nodes: e.p.TotalNodes(), Time: elapsed, Moves: []board.Move{best.Move}}
		select {
		case out <- pv:
		default:
			// a slow consumer never blocks the search
		}
		if e.broadcast != nil {
			e.broadcast.Publish(pv.Depth, int(pv.Score), pv.Nodes, pv.Time, formatMoves(pv.Moves))
		}
	}

	go func() {
		best := e.p.Go(ctx, b, limits, tc, hasTimeControl)

		final := PV{Depth: best.DepthReached, Score: best.Score, Nodes: e.p.TotalNodes(), Moves: nonEmpty(best.Move)}
		if e.journal != nil {
			_ = e.journal.Store(ctx, b.Zobrist(), final.Depth, final.Score, final.Moves)
		}

		e.lastMu.Lock()
		e.last = final
		e.lastMu.Unlock()
		e.active.Store(false)
		close(done)

		out <- final
		close(out)
	}()

	return out, nil
}

// Halt halts the active search, if any, and returns the last reported PV.
func (e *Engine) Halt(ctx context.Context) (PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active.Load() {
		return PV{}, fmt.Errorf("no active search")
	}

	e.p.Halt()
	<-e.done

	e.lastMu.Lock()
	defer e.lastMu.Unlock()
	return e.last, nil
}

// haltLocked halts an active search and waits for its search goroutine to finish. Safe to
// call while e.mu is held: the search goroutine never touches e.mu, only e.active/e.done/
// e.last, so there is no lock-ordering cycle with whoever is independently draining the out
// channel Analyze returned (the UCI driver's forwarding goroutine).
func (e *Engine) haltLocked(ctx context.Context) {
	if e.active.Load() && e.p != nil {
		e.p.Halt()
		<-e.done
		logw.Infof(ctx, "Search halted")
	}
}

func nonEmpty(m board.Move) []board.Move {
	if m == board.NoMove {
		return nil
	}
	return []board.Move{m}
}

func formatMoves(moves []board.Move) string {
	var sb []byte
	for i, m := range moves {
		if i > 0 {
			sb = append(sb, ' ')
		}
		sb = append(sb, []byte(m.String())...)
	}
	return string(sb)
}
