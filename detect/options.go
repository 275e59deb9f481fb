package detect

import (
	"log/slog"
	"runtime"
)

// Option configures a Detector.
type Option func(*config)

type config struct {
	threshold float32
	inputSize int
	poolSize  int
	mean      [3]float32
	std       [3]float32
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		threshold: 0.25,
		inputSize: 512,
		poolSize:  runtime.NumCPU(),
		// ImageNet statistics, the convention most detection backbones train with.
		mean:   [3]float32{0.485, 0.456, 0.406},
		std:    [3]float32{0.229, 0.224, 0.225},
		logger: slog.Default(),
	}
}

// WithScoreThreshold sets the minimum keypoint confidence (default: 0.25).
func WithScoreThreshold(t float32) Option {
	return func(c *config) {
		c.threshold = t
	}
}

// WithInputSize sets the square model input resolution (default: 512).
func WithInputSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.inputSize = n
		}
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithNormalization sets per-channel mean and standard deviation applied after
// scaling pixels to [0, 1] (default: ImageNet statistics).
func WithNormalization(mean, std [3]float32) Option {
	return func(c *config) {
		c.mean = mean
		c.std = std
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
