package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

func TestEncodeDecodeScoreRoundTripNonMate(t *testing.T) {
	got := decodeScore(int16(encodeScore(eval.Score(123), 4)), 4)
	assert.Equal(t, eval.Score(123), got)
}

func TestEncodeDecodeScoreMateDistanceShiftsByPly(t *testing.T) {
	mateFromRoot := eval.MATE - 5 // mate 5 plies from the root, i.e. 2 plies below this ply-3 node
	encoded := encodeScore(mateFromRoot, 3)

	// Stored score is node-relative: closer to mate (fewer plies) than the root-relative score.
	assert.Less(t, int(eval.MATE-encoded), int(eval.MATE-mateFromRoot))

	decoded := decodeScore(int16(encoded), 3)
	assert.Equal(t, mateFromRoot, decoded)
}

func TestMvvLvaScoreRanksCaptureAboveQuiet(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
		{Square: board.D4, Color: board.White, Piece: board.Bishop},
		{Square: board.F6, Color: board.Black, Piece: board.Knight},
	}, 0, board.NoSquare)
	assert.NoError(t, err)

	var capture, quiet board.Move
	for _, m := range pos.GeneratePseudoLegalMoves(board.White) {
		if m.From() != board.D4 {
			continue
		}
		if m.To() == board.F6 {
			capture = m
		}
		if m.To() == board.C3 {
			quiet = m
		}
	}
	require.NotEqual(t, board.NoMove, capture)
	require.NotEqual(t, board.NoMove, quiet)

	assert.Greater(t, mvvLvaScore(pos, board.White, capture), mvvLvaScore(pos, board.White, quiet))
}
