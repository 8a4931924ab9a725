// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/riftchess/rift/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, from the perspective of the side to
	// move in b.
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material returns the nominal material advantage for the side to move, biased by a minimal
// piece-square table nudging pieces toward central, developed squares.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()
	opp := turn.Opponent()

	var score Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		own := pos.Piece(turn, p)
		their := pos.Piece(opp, p)

		score += Score(own.PopCount()-their.PopCount()) * NominalValue(p)

		for _, sq := range own.ToSquares() {
			score += pieceSquareBonus(turn, p, sq)
		}
		for _, sq := range their.ToSquares() {
			score -= pieceSquareBonus(opp, p, sq)
		}
	}
	return score
}

// pieceSquareBonus nudges pieces toward the center, a minimal stand-in for a full PST.
func pieceSquareBonus(c board.Color, p board.Piece, sq board.Square) Score {
	if p == board.King || p == board.Pawn {
		return 0
	}

	f, r := int(sq.File()), int(sq.Rank())
	if c == board.Black {
		r = 7 - r
	}

	df, dr := centerDistance(f), centerDistance(r)
	return Score(6 - df - dr)
}

// centerDistance returns a file/rank's distance (0..3) from the board's central files/ranks.
func centerDistance(v int) int {
	d1, d2 := abs(v-3), abs(v-4)
	if d1 < d2 {
		return d1
	}
	return d2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// NominalValue is the absolute nominal value in centipawns of a piece. The King has an
// arbitrary value large enough to dominate any realistic material imbalance.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Bishop, board.Knight:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing m against pos, before m is applied.
func NominalValueGain(pos *board.Position, turn board.Color, m board.Move) Score {
	var gain Score
	if cap, ok := pos.CapturedPiece(turn, m); ok {
		gain += NominalValue(cap)
	}
	if promo, ok := m.Promotion(); ok {
		gain += NominalValue(promo) - NominalValue(board.Pawn)
	}
	return gain
}
