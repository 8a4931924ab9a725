package eval

import (
	"context"
	"math/rand"

	"github.com/riftchess/rift/pkg/board"
)

// Random is a randomized noise generator, used to add a small amount of randomness to
// evaluations so that otherwise-equal positions do not always resolve identically. limit
// specifies how many centipawns to add/remove in the range [-limit/2; limit/2]. The zero value
// always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board) Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
