package reference

import (
	"context"
	"math/rand"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// RandomBot picks a uniformly random legal move. Useful as a lower bound opponent and as a
// generator of varied test positions.
type RandomBot struct {
	Rand *rand.Rand
}

// NewRandomBot returns a RandomBot seeded deterministically.
func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{Rand: rand.New(rand.NewSource(seed))}
}

// BestMoveDepth ignores depth: a random bot has no notion of search depth.
func (n *RandomBot) BestMoveDepth(ctx context.Context, b *board.Board, depth int) (board.Move, eval.Score) {
	moves := legalMoves(b)
	if len(moves) == 0 {
		return board.NoMove, terminal(b, 0)
	}
	return moves[n.Rand.Intn(len(moves))], eval.Draw
}
