// Package board contains chess board representation and utilities.
package board

import "fmt"

const (
	repetition3Limit   = 3
	repetition5Limit   = 5
	noprogressPlyLimit = 100
)

type node struct {
	pos        *Position
	hash       ZobristHash
	noprogress int

	next Move // valid iff not current
	prev *node
}

// Board represents a chess board, metadata, and history of positions needed to correctly
// determine game results, notably various draw conditions. Not thread-safe; concurrent
// search workers each own a Fork of the board under analysis.
type Board struct {
	zt          *ZobristTable
	repetitions map[ZobristHash]int

	fullmoves int
	turn      Color
	result    Result
	current   *node
}

func NewBoard(zt *ZobristTable, pos *Position, turn Color, noprogress, fullmoves int) *Board {
	current := &node{
		pos:        pos,
		noprogress: noprogress,
		hash:       zt.Hash(pos, turn),
	}

	return &Board{
		zt:          zt,
		repetitions: map[ZobristHash]int{current.hash: 1},
		fullmoves:   fullmoves,
		turn:        turn,
		current:     current,
	}
}

// Fork branches off a new board, sharing the node history for past positions by pointer. If
// forked, the shared history must not be mutated (via UndoMove past the fork point) since the
// forward-move link in a shared node would then become stale. This is the "shallow clone"
// each search worker takes of the board under analysis: the precomputed ZobristTable is
// shared, and only the mutable position stack and repetition counts are copied.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:          b.zt,
		repetitions: make(map[ZobristHash]int, len(b.repetitions)),
		fullmoves:   b.fullmoves,
		turn:        b.turn,
		result:      b.result,
		current: &node{
			pos:        b.current.pos,
			hash:       b.current.hash,
			noprogress: b.current.noprogress,
			prev:       b.current.prev,
		},
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}
	return fork
}

func (b *Board) Position() *Position {
	return b.current.pos
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) NoProgress() int {
	return b.current.noprogress
}

func (b *Board) FullMoves() int {
	return b.fullmoves
}

func (b *Board) Result() Result {
	return b.result
}

// Zobrist returns the hash of the current position, including turn/castling/en-passant.
func (b *Board) Zobrist() ZobristHash {
	return b.current.hash
}

// Ply returns the number of half-moves played since this Board (or its root ancestor before
// any Fork) was constructed.
func (b *Board) Ply() int {
	n := 0
	for cur := b.current; cur.prev != nil; cur = cur.prev {
		n++
	}
	return n
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.current.pos.IsChecked(b.turn)
}

// ApplyMove attempts to make a pseudo-legal move. Returns true iff legal.
func (b *Board) ApplyMove(m Move) bool {
	if b.result.Reason == Checkmate || b.result.Reason == Stalemate {
		return false // there are no legal moves
	} // else: ignore draws that are not always adjudicated eagerly.

	next, ok := b.current.pos.Move(b.turn, m)
	if !ok {
		return false
	}

	// (1) Move is legal. Create new node.

	n := &node{
		pos:        next,
		hash:       b.zt.Move(b.current.hash, b.current.pos, b.turn, m),
		noprogress: updateNoProgress(b.current.pos, b.turn, b.current.noprogress, m),
		prev:       b.current,
	}

	b.current.next = m
	b.current = n

	// (2) Update board-level metadata.

	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]++
	if b.turn == White {
		b.fullmoves++
	}

	// (3) Determine if a draw condition applies.

	if b.repetitions[b.current.hash] >= repetition3Limit {
		actual := b.identicalPositionCount(b.current, b.turn, b.current.noprogress)
		switch {
		case actual >= repetition5Limit:
			b.result.Outcome = Draw
			b.result.Reason = Repetition5
		case actual >= repetition3Limit:
			b.result.Outcome = Draw
			b.result.Reason = Repetition3
		default:
			// zobrist collision: not an actual repetition
		}
	}

	if b.current.noprogress >= noprogressPlyLimit {
		b.result.Outcome = Draw
		b.result.Reason = NoProgress
	}

	if m.IsCapture() || (m.IsPromotion() && promotionIsMinor(m)) {
		if b.current.pos.HasInsufficientMaterial() {
			b.result.Outcome = Draw
			b.result.Reason = InsufficientMaterial
		}
	}

	return true
}

func (b *Board) UndoMove() (Move, bool) {
	if b.current.prev == nil {
		return 0, false
	}

	// (1) Update board-level metadata.

	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]--
	b.result = Result{Outcome: Undecided} // a legal move was made, so not terminal
	if b.turn == Black {
		b.fullmoves--
	}

	// (2) Pop current node.

	b.current = b.current.prev
	m := b.current.next
	b.current.next = 0
	return m, true
}

// AdjudicateNoLegalMoves adjudicates the position assuming no legal moves exist. The result
// is then either Checkmate or Stalemate.
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.InCheck() {
		result = Result{Outcome: Loss(b.turn), Reason: Checkmate}
	}
	b.Adjudicate(result)
	return result
}

// Adjudicate sets the result as given.
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

func (b *Board) identicalPositionCount(n *node, turn Color, limit int) int {
	ret := 1
	tmp := n.prev
	t := b.turn.Opponent()

	for i := 1; i < limit && tmp != nil; i++ {
		if tmp.hash == n.hash && turn == t && *tmp.pos == *n.pos {
			ret++
		}
		tmp = tmp.prev
		t = t.Opponent()
	}
	return ret
}

// LastMove returns the last move, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return 0, false
}

// HasCastled returns true iff the color has castled.
func (b *Board) HasCastled(c Color) bool {
	t := b.turn.Opponent()
	cur := b.current.prev

	for cur != nil {
		if t == c && cur.next.IsCastle() {
			return true
		}
		t = t.Opponent()
		cur = cur.prev
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, hash=%x (%v) noprogress=%v, fullmoves=%v, result=%v}",
		b.current.pos, b.turn, b.current.hash, b.repetitions[b.current.hash], b.current.noprogress, b.fullmoves, b.result)
}

func updateNoProgress(pos *Position, turn Color, old int, m Move) int {
	if m.IsCapture() {
		return 0
	}
	if _, piece, ok := pos.Square(m.From()); ok && piece == Pawn {
		return 0
	}
	return old + 1
}

func promotionIsMinor(m Move) bool {
	p, ok := m.Promotion()
	return ok && (p == Bishop || p == Knight)
}
