package search

import (
	"sync"

	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

// LockLatch is a one-shot rendezvous gate: goroutines calling Wait block until Release is
// called (once), after which Wait always returns immediately. Grounded on the teacher's use
// of iox.AsyncCloser as a start/quit signal in pkg/search/searchctl/iterative.go. The thread
// pool does not use it for per-search dispatch: a released latch cannot be re-armed, so the
// pool signals each worker through its own start channel instead.
type LockLatch struct {
	closer iox.AsyncCloser
	once   sync.Once
}

// NewLockLatch returns an unreleased latch.
func NewLockLatch() *LockLatch {
	return &LockLatch{closer: iox.NewAsyncCloser()}
}

// Release opens the latch. Idempotent.
func (l *LockLatch) Release() {
	l.once.Do(func() {
		l.closer.Close()
	})
}

// Wait blocks until Release is called.
func (l *LockLatch) Wait() {
	<-l.closer.Closed()
}

// IsReleased reports whether Release has been called.
func (l *LockLatch) IsReleased() bool {
	return l.closer.IsClosed()
}

// GuardedBool is a boolean flag with a latch that opens the moment the flag becomes false,
// used by the thread pool's main goroutine to wait for a worker to finish a "searching" burst
// without polling.
type GuardedBool struct {
	mu      sync.Mutex
	value   bool
	cleared chan struct{}
}

// NewGuardedBool returns a GuardedBool initialized to false.
func NewGuardedBool() *GuardedBool {
	return &GuardedBool{cleared: make(chan struct{})}
}

// Set updates the flag. Setting false wakes any goroutine blocked in WaitUntilClear.
func (g *GuardedBool) Set(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.value == v {
		return
	}
	g.value = v
	if !v {
		close(g.cleared)
		g.cleared = make(chan struct{})
	}
}

// Get returns the current value.
func (g *GuardedBool) Get() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// WaitUntilClear blocks until the flag is false.
func (g *GuardedBool) WaitUntilClear() {
	for {
		g.mu.Lock()
		if !g.value {
			g.mu.Unlock()
			return
		}
		ch := g.cleared
		g.mu.Unlock()
		<-ch
	}
}

// stopFlag is the cooperative cancellation signal shared by every worker in a search. Reads
// happen on every node visited, so it must be cheap; go.uber.org/atomic.Bool is used
// throughout the pool and searcher for exactly this reason, matching the teacher's
// atomic-flag idiom used for "searching"/kill state.
type stopFlag = atomic.Bool
