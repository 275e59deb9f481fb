// Package inference provides ONNX Runtime integration for landmark-detection
// models. A model is expected to take a normalized image tensor named
// pixel_values with shape [1, 3, H, W] and produce three aligned outputs:
// coords (float32 [N, 2], x/y in input-image space), labels (int64 [N], class
// indices) and scores (float32 [N], confidences).
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes the ONNX Runtime environment once per process.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Detection is one raw model output row, in model input coordinates.
type Detection struct {
	X     float32
	Y     float32
	Label int64
	Score float32
}

// Session wraps an ONNX Runtime session for a single landmark model.
// A Session runs one inference at a time; use Pool for concurrency.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a session from a model file.
func NewSession(modelPath string) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	inputNames := []string{"pixel_values"}
	outputNames := []string{"coords", "labels", "scores"}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on a CHW pixel buffer of the given spatial size and
// returns the raw detections. len(pixels) must be 3*height*width.
func (s *Session) Infer(ctx context.Context, pixels []float32, height, width int) ([]Detection, error) {
	// Check context before the expensive call; ORT runs are not cancellable.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	if want := 3 * height * width; len(pixels) != want {
		return nil, fmt.Errorf("pixel buffer has %d values, want %d", len(pixels), want)
	}

	input, err := ort.NewTensor(
		ort.NewShape(1, 3, int64(height), int64(width)),
		pixels,
	)
	if err != nil {
		return nil, fmt.Errorf("creating pixel_values tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	// Output entries left nil are allocated by Run.
	outputs := []ort.Value{nil, nil, nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	defer func() {
		for _, out := range outputs {
			if out != nil {
				_ = out.Destroy()
			}
		}
	}()

	coords, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected coords tensor type")
	}
	labels, ok := outputs[1].(*ort.Tensor[int64])
	if !ok {
		return nil, fmt.Errorf("unexpected labels tensor type")
	}
	scores, ok := outputs[2].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected scores tensor type")
	}

	coordData := coords.GetData()
	labelData := labels.GetData()
	scoreData := scores.GetData()

	n := len(labelData)
	if len(coordData) != 2*n || len(scoreData) != n {
		return nil, fmt.Errorf("misaligned outputs: %d coords, %d labels, %d scores",
			len(coordData), n, len(scoreData))
	}

	detections := make([]Detection, n)
	for i := 0; i < n; i++ {
		detections[i] = Detection{
			X:     coordData[2*i],
			Y:     coordData[2*i+1],
			Label: labelData[i],
			Score: scoreData[i],
		}
	}

	return detections, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
