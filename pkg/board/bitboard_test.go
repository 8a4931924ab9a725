package board_test

import (
	"testing"

	"github.com/riftchess/rift/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitMaskIsSet(t *testing.T) {
	bb := board.BitMask(board.E4)
	assert.True(t, bb.IsSet(board.E4))
	assert.False(t, bb.IsSet(board.E5))
	assert.Equal(t, 1, bb.PopCount())
}

func TestBitboardToSquares(t *testing.T) {
	bb := board.BitMask(board.A1) | board.BitMask(board.H8)
	assert.ElementsMatch(t, []board.Square{board.A1, board.H8}, bb.ToSquares())
}

func TestBitRankBitFile(t *testing.T) {
	rank1 := board.BitRank(board.Rank1)
	assert.True(t, rank1.IsSet(board.A1))
	assert.True(t, rank1.IsSet(board.H1))
	assert.False(t, rank1.IsSet(board.A2))

	fileA := board.BitFile(board.FileA)
	assert.True(t, fileA.IsSet(board.A1))
	assert.True(t, fileA.IsSet(board.A8))
	assert.False(t, fileA.IsSet(board.B1))
}

func TestKingAttackboardCorner(t *testing.T) {
	att := board.KingAttackboard(board.A1)
	assert.Equal(t, 3, att.PopCount())
	assert.True(t, att.IsSet(board.A2))
	assert.True(t, att.IsSet(board.B1))
	assert.True(t, att.IsSet(board.B2))
}

func TestKnightAttackboardCenter(t *testing.T) {
	att := board.KnightAttackboard(board.D4)
	assert.Equal(t, 8, att.PopCount())
}

func TestKnightAttackboardCorner(t *testing.T) {
	att := board.KnightAttackboard(board.A1)
	assert.Equal(t, 2, att.PopCount())
	assert.True(t, att.IsSet(board.B3))
	assert.True(t, att.IsSet(board.C2))
}

func TestRookAttackboardOpenBoard(t *testing.T) {
	rb := board.NewRotatedBitboard(board.BitMask(board.D4))
	att := board.RookAttackboard(rb, board.D4)

	// 7 squares on the d-file plus 7 on rank 4, minus the occupied origin square itself.
	assert.Equal(t, 14, att.PopCount())
	assert.True(t, att.IsSet(board.D1))
	assert.True(t, att.IsSet(board.D8))
	assert.True(t, att.IsSet(board.A4))
	assert.True(t, att.IsSet(board.H4))
}

func TestRookAttackboardBlocked(t *testing.T) {
	occ := board.BitMask(board.D4) | board.BitMask(board.D6)
	rb := board.NewRotatedBitboard(occ)
	att := board.RookAttackboard(rb, board.D4)

	assert.True(t, att.IsSet(board.D5))
	assert.True(t, att.IsSet(board.D6))
	assert.False(t, att.IsSet(board.D7))
}

func TestBishopAttackboardOpenBoard(t *testing.T) {
	rb := board.NewRotatedBitboard(board.BitMask(board.D4))
	att := board.BishopAttackboard(rb, board.D4)

	assert.True(t, att.IsSet(board.A1))
	assert.True(t, att.IsSet(board.G7))
	assert.True(t, att.IsSet(board.A7))
	assert.True(t, att.IsSet(board.G1))
}

func TestQueenAttackboardCombinesRookAndBishop(t *testing.T) {
	rb := board.NewRotatedBitboard(board.BitMask(board.D4))

	rook := board.RookAttackboard(rb, board.D4)
	bishop := board.BishopAttackboard(rb, board.D4)
	queen := board.QueenAttackboard(rb, board.D4)

	assert.Equal(t, rook|bishop, queen)
}

func TestPawnCaptureboardWhite(t *testing.T) {
	pawns := board.BitMask(board.D4)
	att := board.PawnCaptureboard(board.White, pawns)

	assert.True(t, att.IsSet(board.C5))
	assert.True(t, att.IsSet(board.E5))
	assert.Equal(t, 2, att.PopCount())
}

func TestPawnCaptureboardBlack(t *testing.T) {
	pawns := board.BitMask(board.D4)
	att := board.PawnCaptureboard(board.Black, pawns)

	assert.True(t, att.IsSet(board.C3))
	assert.True(t, att.IsSet(board.E3))
}

func TestPawnMoveboardBlockedBySelf(t *testing.T) {
	pawns := board.BitMask(board.D4)
	all := pawns | board.BitMask(board.D5)

	att := board.PawnMoveboard(all, board.White, pawns)
	assert.False(t, att.IsSet(board.D5))
}

func TestPawnPromotionAndJumpRanks(t *testing.T) {
	assert.True(t, board.PawnPromotionRank(board.White).IsSet(board.A8))
	assert.True(t, board.PawnPromotionRank(board.Black).IsSet(board.A1))
	assert.True(t, board.PawnJumpRank(board.White).IsSet(board.A4))
	assert.True(t, board.PawnJumpRank(board.Black).IsSet(board.A5))
}
