// Package detect turns images into labeled point predictions using ONNX
// landmark-detection models. It is the model-backed prediction source whose
// output feeds the msa metric engine.
package detect

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	msa "github.com/jamesainslie/go-msa"
	"github.com/jamesainslie/go-msa/inference"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("detect: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("detect: invalid model format")

	// ErrUnknownClass indicates the model emitted a class index outside the
	// configured class list.
	ErrUnknownClass = errors.New("detect: class index out of range")
)

// Keypoint is one scored detection in original-image coordinates.
type Keypoint struct {
	Label string
	Point msa.Point
	Score float32
}

// Detector predicts named landmarks on images. It is safe for concurrent use;
// inferences run on an internal session pool.
type Detector struct {
	pool      *inference.Pool
	classes   []string
	threshold float32
	inputSize int
	mean      [3]float32
	std       [3]float32
	logger    *slog.Logger
}

// New creates a Detector for the given model. classes maps the model's class
// indices to substructure names and must not be empty.
func New(modelPath string, classes []string, opts ...Option) (*Detector, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("detect: no class names given")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	return &Detector{
		pool:      pool,
		classes:   classes,
		threshold: cfg.threshold,
		inputSize: cfg.inputSize,
		mean:      cfg.mean,
		std:       cfg.std,
		logger:    cfg.logger,
	}, nil
}

// Detect predicts the substructures of img, keeping keypoints at or above the
// configured score threshold.
func (d *Detector) Detect(ctx context.Context, img image.Image) (msa.LabeledPointSet, error) {
	kps, err := d.DetectScored(ctx, img)
	if err != nil {
		return nil, err
	}
	return Filter(kps, d.threshold), nil
}

// DetectScored predicts all candidate keypoints with their confidences, before
// any threshold is applied. Useful for threshold sweeps, which can re-filter
// one detection pass instead of re-running the model.
func (d *Detector) DetectScored(ctx context.Context, img image.Image) ([]Keypoint, error) {
	pixels, sx, sy := d.preprocess(img)

	session, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer d.pool.Release(session)

	detections, err := session.Infer(ctx, pixels, d.inputSize, d.inputSize)
	if err != nil {
		return nil, err
	}

	kps := make([]Keypoint, 0, len(detections))
	for _, det := range detections {
		if det.Label < 0 || int(det.Label) >= len(d.classes) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownClass, det.Label)
		}
		kps = append(kps, Keypoint{
			Label: d.classes[det.Label],
			Point: msa.Point{X: float64(det.X) * sx, Y: float64(det.Y) * sy},
			Score: det.Score,
		})
	}

	d.logger.Debug("detected keypoints", "count", len(kps))
	return kps, nil
}

// Filter keeps keypoints scoring at or above threshold and groups them by
// label, preserving detection order within each label.
func Filter(kps []Keypoint, threshold float32) msa.LabeledPointSet {
	set := make(msa.LabeledPointSet)
	for _, kp := range kps {
		if kp.Score < threshold {
			continue
		}
		set[kp.Label] = append(set[kp.Label], kp.Point)
	}
	return set
}

// preprocess scales img to the model input size and converts it to a
// normalized CHW float buffer. The returned factors map model-space
// coordinates back to original-image space.
func (d *Detector) preprocess(img image.Image) (pixels []float32, sx, sy float64) {
	bounds := img.Bounds()
	sx = float64(bounds.Dx()) / float64(d.inputSize)
	sy = float64(bounds.Dy()) / float64(d.inputSize)

	scaled := image.NewRGBA(image.Rect(0, 0, d.inputSize, d.inputSize))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	plane := d.inputSize * d.inputSize
	pixels = make([]float32, 3*plane)
	for y := 0; y < d.inputSize; y++ {
		for x := 0; x < d.inputSize; x++ {
			offset := scaled.PixOffset(x, y)
			idx := y*d.inputSize + x
			for c := 0; c < 3; c++ {
				v := float32(scaled.Pix[offset+c]) / 255
				pixels[c*plane+idx] = (v - d.mean[c]) / d.std[c]
			}
		}
	}
	return pixels, sx, sy
}

// Close releases all inference sessions.
func (d *Detector) Close() error {
	if d.pool != nil {
		return d.pool.Close()
	}
	return nil
}
