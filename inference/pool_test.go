package inference

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_FileNotFound(t *testing.T) {
	_, err := NewPool("../testdata/nonexistent.onnx", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "want os.ErrNotExist, got %v", err)
}

func TestPool_SizeClamped(t *testing.T) {
	// Construct directly; NewPool would need a model file.
	pool := &Pool{sessions: make(chan *Session, 1), size: 1}
	assert.Equal(t, 1, pool.Size())
}

func TestPool_AcquireRelease(t *testing.T) {
	s := &Session{}
	pool := &Pool{sessions: make(chan *Session, 1), size: 1}
	pool.sessions <- s

	got, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, got)

	pool.Release(got)

	got, err = pool.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, got)
	pool.Release(got)
}

func TestPool_AcquireContextTimeout(t *testing.T) {
	// All sessions busy: Acquire must honor the deadline.
	pool := &Pool{sessions: make(chan *Session, 1), size: 1}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_AcquireAfterClose(t *testing.T) {
	pool := &Pool{sessions: make(chan *Session, 1), size: 1}
	pool.sessions <- &Session{}
	require.NoError(t, pool.Close())

	_, err := pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_ReleaseAfterClose(t *testing.T) {
	pool := &Pool{sessions: make(chan *Session, 1), size: 1}
	require.NoError(t, pool.Close())

	s := &Session{}
	pool.Release(s)
	assert.True(t, s.closed, "released session should be closed, not pooled")
}

func TestPool_ReleaseNil(t *testing.T) {
	pool := &Pool{sessions: make(chan *Session, 1), size: 1}
	assert.NotPanics(t, func() { pool.Release(nil) })
}

func TestPool_CloseTwice(t *testing.T) {
	pool := &Pool{sessions: make(chan *Session, 2), size: 2}
	pool.sessions <- &Session{}
	pool.sessions <- &Session{}

	require.NoError(t, pool.Close())
	assert.NoError(t, pool.Close())
}

func TestPool_Concurrent(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 2)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewPool failed: %v", err)
	}
	defer func() { _ = pool.Close() }()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			s, err := pool.Acquire(context.Background())
			if err != nil {
				done <- err
				return
			}
			defer pool.Release(s)
			done <- nil
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}
