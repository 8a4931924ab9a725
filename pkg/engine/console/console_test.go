package console_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riftchess/rift/pkg/engine"
	"github.com/riftchess/rift/pkg/engine/console"
	"github.com/riftchess/rift/pkg/eval"
)

func newDriver(t *testing.T) (in chan string, out <-chan string) {
	t.Helper()

	e := engine.New(context.Background(), "test", "tester", eval.Material{}, engine.WithOptions(engine.Options{Threads: 1, Hash: 1}))
	in = make(chan string, 100)
	_, out = console.NewDriver(context.Background(), e, in)
	return in, out
}

func readUntil(t *testing.T, out <-chan string, pred func(string) bool, timeout time.Duration) string {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatal("output stream closed before match")
			}
			if pred(line) {
				return line
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching output line")
			return ""
		}
	}
}

func contains(substr string) func(string) bool {
	return func(line string) bool { return strings.Contains(line, substr) }
}

func TestConsoleDriverGreetsAndPrintsBoard(t *testing.T) {
	_, out := newDriver(t)

	readUntil(t, out, contains("engine test"), time.Second)
	readUntil(t, out, contains("fen:"), time.Second)
}

func TestConsoleDriverPrintCommand(t *testing.T) {
	in, out := newDriver(t)
	readUntil(t, out, contains("fen:"), time.Second) // initial board dump

	in <- "print"
	readUntil(t, out, contains("fen:"), time.Second)
}

func TestConsoleDriverMoveCommand(t *testing.T) {
	in, out := newDriver(t)
	readUntil(t, out, contains("fen:"), time.Second)

	in <- "e2e4"
	line := readUntil(t, out, contains("fen:"), time.Second)
	assert.Contains(t, line, "b KQkq e3")
}

func TestConsoleDriverInvalidMove(t *testing.T) {
	in, out := newDriver(t)
	readUntil(t, out, contains("fen:"), time.Second)

	in <- "e2e5"
	readUntil(t, out, contains("invalid move"), time.Second)
}

func TestConsoleDriverAnalyzeProducesBestMove(t *testing.T) {
	in, out := newDriver(t)
	readUntil(t, out, contains("fen:"), time.Second)

	in <- "analyze 2"
	readUntil(t, out, contains("bestmove"), 10*time.Second)
}

func TestConsoleDriverUndoCommand(t *testing.T) {
	in, out := newDriver(t)
	readUntil(t, out, contains("fen:"), time.Second)

	in <- "e2e4"
	readUntil(t, out, contains("fen:"), time.Second)

	in <- "undo"
	line := readUntil(t, out, contains("fen:"), time.Second)
	assert.Contains(t, line, "rnbqkbnr/pppppppp")
}

func TestConsoleDriverResetCommand(t *testing.T) {
	in, out := newDriver(t)
	readUntil(t, out, contains("fen:"), time.Second)

	in <- "e2e4"
	afterMove := readUntil(t, out, contains("fen:"), time.Second)

	// "reset" with no position argument re-decodes the engine's own current FEN rather than
	// returning to the starting position.
	in <- "reset"
	afterReset := readUntil(t, out, contains("fen:"), time.Second)
	assert.Equal(t, afterMove, afterReset)
}
