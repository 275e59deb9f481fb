package inference

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModelPath = "../testdata/landmark.onnx"

// skipIfNoModel skips tests that need a real model file and ONNX runtime.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: model not available at %s", testModelPath)
	}
}

// isORTUnavailableError reports whether err is caused by a missing ONNX
// runtime shared library rather than by the code under test.
func isORTUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "onnxruntime") &&
		(strings.Contains(msg, "library") || strings.Contains(msg, "initializ"))
}

func TestNewSession_FileNotFound(t *testing.T) {
	_, err := NewSession("../testdata/nonexistent.onnx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "want os.ErrNotExist, got %v", err)
}

func TestSession_InferCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Session{}
	_, err := s.Infer(ctx, make([]float32, 3*4*4), 4, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSession(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	assert.NotNil(t, session)
}

func TestSession_InferAfterClose(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}
	require.NoError(t, session.Close())

	_, err = session.Infer(context.Background(), make([]float32, 3*4*4), 4, 4)
	assert.ErrorContains(t, err, "closed")
}

func TestSession_InferBadBuffer(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	_, err = session.Infer(context.Background(), make([]float32, 10), 4, 4)
	assert.ErrorContains(t, err, "pixel buffer")
}

func TestSession_CloseTwice(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewSession failed: %v", err)
	}

	require.NoError(t, session.Close())
	assert.NoError(t, session.Close())
}
