package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riftchess/rift/pkg/search"
)

func TestLockLatchReleaseUnblocksWait(t *testing.T) {
	l := search.NewLockLatch()
	assert.False(t, l.IsReleased())

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Release")
	case <-time.After(20 * time.Millisecond):
	}

	l.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after Release")
	}
	assert.True(t, l.IsReleased())
}

func TestLockLatchReleaseIdempotent(t *testing.T) {
	l := search.NewLockLatch()
	l.Release()
	l.Release() // must not panic

	assert.True(t, l.IsReleased())
}

func TestGuardedBoolSetGet(t *testing.T) {
	g := search.NewGuardedBool()
	assert.False(t, g.Get())

	g.Set(true)
	assert.True(t, g.Get())

	g.Set(false)
	assert.False(t, g.Get())
}

func TestGuardedBoolWaitUntilClear(t *testing.T) {
	g := search.NewGuardedBool()
	g.Set(true)

	done := make(chan struct{})
	go func() {
		g.WaitUntilClear()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WaitUntilClear returned while still set")
	case <-time.After(20 * time.Millisecond):
	}

	g.Set(false)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitUntilClear did not unblock after Set(false)")
	}
}

func TestGuardedBoolWaitUntilClearAlreadyClear(t *testing.T) {
	g := search.NewGuardedBool()

	done := make(chan struct{})
	go func() {
		g.WaitUntilClear()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitUntilClear should return immediately when already clear")
	}
}
