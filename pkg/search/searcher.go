package search

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// MaxPly bounds recursion depth. Go goroutine stacks grow dynamically from 8KB, so unlike a
// fixed-stack-size implementation no explicit stack tuning is needed to support it.
const MaxPly = 126

// skipSize/startPly disperse the 20 worker slots across different starting depths and
// increments, so that workers searching the same position in parallel explore the tree in a
// staggered fashion rather than all completing the same depths in lockstep.
var skipSize = [20]int{1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4}
var startPly = [20]int{0, 1, 0, 1, 2, 3, 0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 6, 7}

// Limits bounds a single search.
type Limits struct {
	Depth       int // 0 == unlimited (bounded only by MaxPly)
	TimeControl lang.Optional[TimeControl]
}

// Searcher runs iterative-deepening negamax search against its own exclusive (forked) board,
// sharing the TranspositionTable and stop flag with its siblings in the pool.
type Searcher struct {
	id int

	board *board.Board
	eval  eval.Evaluator
	tt    *TranspositionTable
	tm    *TimeManager // set by the pool before SearchRoot; read-only once set

	rootMoves *RootMoveList
	noise     *rand.Rand
	stop      *atomic.Bool

	depthCompleted int
	stability      int
	timeReduction  float64
	lastBest       board.Move
	nodes          uint64

	// OnDepth, if set, is called by the main worker (id 0) after each completed iteration,
	// before the stability/time-management check that may halt the search. Used by the UCI
	// driver to emit "info depth ..." lines without the Searcher knowing about UCI.
	OnDepth func(best RootMove, depth int, elapsed time.Duration)

	start time.Time
}

// NewSearcher constructs a worker bound to b (an exclusive Fork), sharing ev/tt/stop with its
// siblings.
func NewSearcher(id int, b *board.Board, ev eval.Evaluator, tt *TranspositionTable, stop *atomic.Bool, seed int64) *Searcher {
	return &Searcher{
		id:            id,
		board:         b,
		eval:          ev,
		tt:            tt,
		stop:          stop,
		noise:         rand.New(rand.NewSource(seed)),
		timeReduction: 1.0,
		lastBest:      board.NoMove,
	}
}

func (s *Searcher) IsMain() bool {
	return s.id == 0
}

func (s *Searcher) DepthCompleted() int {
	return s.depthCompleted
}

func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

func (s *Searcher) dispersion() (skip, start int) {
	idx := s.id % 20
	return skipSize[idx], startPly[idx]
}

// SearchRoot runs iterative deepening from the current (ply-0) position until stopped, the
// depth limit is reached, or MaxPly. tm may be nil (no time control); only the main worker
// consults it. Precondition: rootMoves is populated with the position's legal moves.
func (s *Searcher) SearchRoot(ctx context.Context, rootMoves *RootMoveList, limits Limits, tm *TimeManager) RootMove {
	s.rootMoves = rootMoves
	s.tm = tm
	s.start = time.Now()

	skip, start := s.dispersion()
	depth := start
	if depth <= 0 {
		depth = 1
	}

	s.orderRootMoves()

	var prevBest eval.Score
	delta := eval.Score(18)

	for {
		if depth > MaxPly || (limits.Depth > 0 && depth > limits.Depth) {
			break
		}
		if s.stop.Load() {
			break
		}

		s.rootMoves.Rollback()

		alpha, beta := eval.NegInf, eval.Inf
		if depth >= 5 {
			alpha = eval.Max(prevBest-delta, eval.NegInf)
			beta = eval.Min(prevBest+delta, eval.Inf)
		}

		var value eval.Score
		for {
			value = s.search(ctx, 0, alpha, beta, depth, true)
			s.rootMoves.Sort()

			if s.stop.Load() {
				break
			}
			if value <= alpha {
				alpha = eval.Max(alpha-delta, eval.NegInf)
				delta += delta/4 + 5
				continue
			}
			if value >= beta {
				beta = eval.Min(beta+delta, eval.Inf)
				delta += delta/4 + 5
				continue
			}
			break
		}

		if s.stop.Load() {
			break
		}

		s.depthCompleted = depth
		prevBest = value

		if s.IsMain() {
			top := s.rootMoves.First().Move
			if !top.Equals(s.lastBest) {
				s.stability = 0
				s.timeReduction = 1.0
			} else {
				s.timeReduction *= 0.91
				s.stability++
			}
			s.lastBest = top

			if s.OnDepth != nil {
				s.OnDepth(s.rootMoves.First(), depth, time.Since(s.start))
			}

			if s.tm != nil {
				stabilityFactor := math.Pow(0.92, float64(s.stability))
				newIdeal := time.Duration(float64(s.tm.IdealTime()) * stabilityFactor * s.timeReduction)
				if s.rootMoves.Len() == 1 || s.tm.Elapsed() >= newIdeal {
					s.stop.Store(true)
					break
				}
			}
		}

		depth += skip
	}

	return s.rootMoves.First()
}

// orderRootMoves applies the sole source of worker diversity beyond depth dispersion: the
// main worker (id 0) and any worker beyond the 20-slot dispersion table use a deterministic
// MVV/LVA ordering, every other worker shuffles uniformly from its own noise source.
func (s *Searcher) orderRootMoves() {
	if s.id == 0 || s.id >= 20 {
		pos, turn := s.board.Position(), s.board.Turn()
		s.rootMoves.SortByKey(func(rm RootMove) int {
			return int(mvvLvaScore(pos, turn, rm.Move))
		})
		return
	}
	s.rootMoves.Shuffle(s.noise)
}

// checkTime is called only by the main worker, on every node, and sets the shared stop flag
// once the hard time ceiling is crossed.
func (s *Searcher) checkTime() {
	if s.tm == nil {
		return
	}
	if s.tm.Elapsed() >= s.tm.MaximumTime() {
		s.stop.Store(true)
	}
}

// search is the recursive negamax core with alpha-beta pruning, PVS re-search, a transposition
// table, futility pruning and late-move reductions.
func (s *Searcher) search(ctx context.Context, ply int, alpha, beta eval.Score, maxDepth int, isPV bool) eval.Score {
	if s.IsMain() {
		s.checkTime()
	}
	if s.stop.Load() {
		return 0
	}
	if ply >= maxDepth || ply >= MaxPly {
		return s.evaluate(ctx)
	}

	s.nodes++

	b := s.board
	pos := b.Position()
	turn := b.Turn()
	zob := b.Zobrist()
	inCheck := b.InCheck()
	plysToZero := maxDepth - ply

	// Step B: TT probe and cutoff.

	ttHit, entry := s.tt.Probe(zob)
	var ttValue eval.Score
	if ttHit {
		ttValue = decodeScore(entry.Score, ply)
		if ply > 0 && !isPV && int(entry.Depth) >= plysToZero {
			compatible := false
			if ttValue >= beta {
				compatible = entry.Bound == LowerBound || entry.Bound == Exact
			} else {
				compatible = entry.Bound == UpperBound || entry.Bound == Exact
			}
			if compatible {
				return ttValue
			}
		}
	}

	// Step C: static eval.

	var posEval eval.Score
	switch {
	case inCheck:
		posEval = 0
	case ttHit && entry.Eval != evalAbsent:
		posEval = eval.Score(entry.Eval)
	default:
		posEval = s.evaluate(ctx)
		if !inCheck {
			s.tt.Store(zob, Entry{Move: board.NoMove, Eval: int16(posEval), Bound: NoBound})
		}
	}
	if !inCheck && ttHit {
		if (ttValue > posEval && (entry.Bound == LowerBound || entry.Bound == Exact)) ||
			(ttValue < posEval && (entry.Bound == UpperBound || entry.Bound == Exact)) {
			posEval = ttValue
		}
	}

	// Step D: futility pruning.

	if !inCheck && ply > 3 && ply < 7 && posEval < 10000 && posEval-eval.Score(150*ply) >= beta {
		return posEval
	}

	// Step E: move generation.

	var moves []board.Move
	if ply == 0 {
		moves = s.rootMoves.Moves()
	} else {
		moves = pos.GeneratePseudoLegalMoves(turn)
	}
	if len(moves) == 0 {
		if inCheck {
			return eval.MATE - eval.Score(ply)
		}
		return eval.Draw
	}
	if ply > 0 {
		moves = orderMoves(pos, turn, moves)
	}

	// Step F: move loop.

	movesPlayed := 0
	bestValue := eval.NegInf
	bestMove := board.NoMove

	for _, mov := range moves {
		if ply > 0 && !pos.LegalMove(turn, mov) {
			continue
		}

		b.ApplyMove(mov)
		givesCheck := b.InCheck()
		s.tt.Prefetch(b.Zobrist())
		movesPlayed++

		var value eval.Score
		switch {
		case maxDepth >= 3 && movesPlayed > 1 && ply >= 2:
			d := maxDepth - 2
			if inCheck || givesCheck {
				d = maxDepth - 1
			}
			value = -s.search(ctx, ply+1, -(alpha + 1), -alpha, d, false)
			if value > alpha && !s.stop.Load() {
				value = -s.search(ctx, ply+1, -(alpha + 1), -alpha, maxDepth, false)
			}
		case !isPV || movesPlayed > 1:
			value = -s.search(ctx, ply+1, -(alpha + 1), -alpha, maxDepth, false)
		default:
			value = -s.search(ctx, ply+1, -beta, -alpha, maxDepth, true)
		}

		if isPV && !s.stop.Load() && (movesPlayed == 1 || (value > alpha && value < beta)) {
			value = -s.search(ctx, ply+1, -beta, -alpha, maxDepth, true)
		}

		b.UndoMove()

		if s.stop.Load() {
			return 0
		}

		if ply == 0 {
			if idx, ok := s.rootMoves.IndexOf(mov); ok {
				rm := s.rootMoves.At(idx)
				if movesPlayed == 1 || value > alpha {
					rm.DepthReached = maxDepth
					rm.Score = value
				} else {
					rm.Score = eval.NegInf
				}
				s.rootMoves.Set(idx, rm)
			}
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				bestMove = mov
				if isPV && value < beta {
					alpha = value
				} else {
					break // beta cutoff
				}
			}
		}
	}

	// Step G: post-loop.

	if movesPlayed == 0 {
		if inCheck {
			return eval.MATE - eval.Score(ply)
		}
		return eval.Draw
	}

	bound := UpperBound
	switch {
	case bestValue >= beta:
		bound = LowerBound
	case isPV && bestMove != board.NoMove:
		bound = Exact
	}

	s.tt.Store(zob, Entry{
		Move:  bestMove,
		Score: int16(encodeScore(bestValue, ply)),
		Eval:  int16(posEval),
		Depth: uint8(plysToZero),
		Bound: bound,
	})

	return bestValue
}

func (s *Searcher) evaluate(ctx context.Context) eval.Score {
	return s.eval.Evaluate(ctx, s.board)
}

// encodeScore/decodeScore translate a mate score between "distance from the root" (how search
// returns it) and "distance from this node" (how the TT stores it), the standard TT mate-score
// convention: a mate N plies below a node at ply p is p+N plies from the root, so encoding
// adds ply to a winning mate score and decoding subtracts it again.
func encodeScore(s eval.Score, ply int) eval.Score {
	switch {
	case s > eval.MaxScore:
		return s + eval.Score(ply)
	case s < eval.MinScore:
		return s - eval.Score(ply)
	default:
		return s
	}
}

func decodeScore(s int16, ply int) eval.Score {
	sc := eval.Score(s)
	switch {
	case sc > eval.MaxScore:
		return sc - eval.Score(ply)
	case sc < eval.MinScore:
		return sc + eval.Score(ply)
	default:
		return sc
	}
}

// orderMoves applies MVV/LVA: captures first (lowest attacker-value-minus-victim-value first),
// then castles, then double pawn pushes, then everything else.
func orderMoves(pos *board.Position, turn board.Color, moves []board.Move) []board.Move {
	fn := func(m board.Move) board.MovePriority {
		return board.MovePriority(mvvLvaScore(pos, turn, m))
	}
	ml := board.NewMoveList(moves, fn)

	ordered := make([]board.Move, 0, len(moves))
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}
		ordered = append(ordered, m)
	}
	return ordered
}

func mvvLvaScore(pos *board.Position, turn board.Color, m board.Move) int16 {
	switch {
	case m.IsCapture():
		victim, _ := pos.CapturedPiece(turn, m)
		_, attacker, _ := pos.Square(m.From())
		return int16(eval.NominalValue(victim)) - int16(eval.NominalValue(attacker)) + 20000
	case m.IsCastle():
		return 500
	case m.IsDoublePawnPush():
		return 100
	default:
		return 0
	}
}
