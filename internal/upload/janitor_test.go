package upload

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakePruner struct {
	mu     sync.Mutex
	calls  int
	maxAge time.Duration
	err    error
}

func (f *fakePruner) Prune(maxAge time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.maxAge = maxAge
	return 3, f.err
}

func (f *fakePruner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestJanitor_Disabled(t *testing.T) {
	store := &fakePruner{}
	j := NewJanitor(store, 0, time.Millisecond, quietLogger())

	assert.False(t, j.Enabled())
	assert.Zero(t, j.RunOnce())

	// Returns immediately without pruning.
	j.Run(context.Background())
	assert.Zero(t, store.callCount())
}

func TestJanitor_RunOnce(t *testing.T) {
	store := &fakePruner{}
	j := NewJanitor(store, 24*time.Hour, time.Hour, quietLogger())

	assert.Equal(t, 3, j.RunOnce())
	assert.Equal(t, 24*time.Hour, store.maxAge)

	store.err = errors.New("permission denied")
	assert.Equal(t, 3, j.RunOnce())
}

func TestJanitor_RunStopsOnCancel(t *testing.T) {
	store := &fakePruner{}
	j := NewJanitor(store, time.Hour, 5*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.callCount() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestNewJanitor_DefaultInterval(t *testing.T) {
	j := NewJanitor(&fakePruner{}, time.Hour, 0, quietLogger())
	assert.Equal(t, time.Hour, j.interval)
}
