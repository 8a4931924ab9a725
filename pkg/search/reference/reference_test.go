package reference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/board/fen"
	"github.com/riftchess/rift/pkg/eval"
)

func newInitialBoard(t *testing.T) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

// randomPositions plays n random games a few plies deep from the start position and returns
// the resulting boards, as a varied set of non-terminal test positions.
func randomPositions(t *testing.T, n, plies int, seed int64) []*board.Board {
	t.Helper()

	bot := NewRandomBot(seed)
	var out []*board.Board
	for i := 0; i < n; i++ {
		b := newInitialBoard(t)
		for p := 0; p < plies; p++ {
			if b.Result().IsTerminal() {
				break
			}
			m, _ := bot.BestMoveDepth(context.Background(), b, 0)
			if m == board.NoMove {
				break
			}
			if !b.ApplyMove(m) {
				break
			}
		}
		out = append(out, b)
	}
	return out
}

// TestAlphaBetaAgreesWithMiniMax is the core Testable Property: fail-soft alpha-beta pruning
// must never change the returned score relative to the unpruned minimax oracle, since both
// call the exact same terminal() function (common.go) and only differ in whether they prune.
func TestAlphaBetaAgreesWithMiniMax(t *testing.T) {
	mm := MiniMaxSearcher{Eval: eval.Material{}}
	ab := AlphaBetaSearcher{Eval: eval.Material{}}

	for i, b := range randomPositions(t, 6, 6, 42) {
		for depth := 1; depth <= 3; depth++ {
			_, mmScore := mm.BestMoveDepth(context.Background(), b.Fork(), depth)
			_, abScore := ab.BestMoveDepth(context.Background(), b.Fork(), depth)
			assert.Equal(t, mmScore, abScore, "position %v depth %v", i, depth)
		}
	}
}

// TestParallelMiniMaxAgreesWithMiniMax verifies root-parallel search changes nothing but
// wall-clock: the score returned must match the serial oracle exactly.
func TestParallelMiniMaxAgreesWithMiniMax(t *testing.T) {
	mm := MiniMaxSearcher{Eval: eval.Material{}}
	pm := ParallelMiniMaxSearcher{Eval: eval.Material{}, Workers: 4}

	for i, b := range randomPositions(t, 6, 6, 7) {
		for depth := 1; depth <= 3; depth++ {
			_, mmScore := mm.BestMoveDepth(context.Background(), b.Fork(), depth)
			_, pmScore := pm.BestMoveDepth(context.Background(), b.Fork(), depth)
			assert.Equal(t, mmScore, pmScore, "position %v depth %v", i, depth)
		}
	}
}

// TestJamboreeAgreesWithMiniMax verifies the Jamboree fan-out (serial seed move, parallel
// null-window probes, serial re-search of fail-highs) returns the same score as the serial
// oracle.
func TestJamboreeAgreesWithMiniMax(t *testing.T) {
	mm := MiniMaxSearcher{Eval: eval.Material{}}
	jm := JamboreeSearcher{Eval: eval.Material{}, Workers: 4}

	for i, b := range randomPositions(t, 6, 6, 99) {
		for depth := 1; depth <= 3; depth++ {
			_, mmScore := mm.BestMoveDepth(context.Background(), b.Fork(), depth)
			_, jmScore := jm.BestMoveDepth(context.Background(), b.Fork(), depth)
			assert.Equal(t, mmScore, jmScore, "position %v depth %v", i, depth)
		}
	}
}

func TestMiniMaxTerminalCheckmate(t *testing.T) {
	// Fool's mate final position: white to move, already checkmated.
	pos, turn, noprogress, fullmoves, err := fen.Decode("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	b := board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
	require.True(t, b.InCheck())

	mm := MiniMaxSearcher{Eval: eval.Material{}}
	_, score := mm.BestMoveDepth(context.Background(), b, 2)
	assert.Equal(t, eval.MATE-eval.Score(2), score)
}

func TestRandomBotReturnsLegalMove(t *testing.T) {
	b := newInitialBoard(t)
	bot := NewRandomBot(1)

	m, _ := bot.BestMoveDepth(context.Background(), b, 0)
	assert.True(t, b.Position().LegalMove(b.Turn(), m))
}
