package msa

import "log/slog"

// Option configures an Evaluate call.
type Option func(*config)

type config struct {
	workers int
	logger  *slog.Logger
}

func defaultConfig() config {
	return config{
		workers: 1,
		logger:  slog.Default(),
	}
}

// WithWorkers sets how many samples are aligned concurrently (default: 1).
// Alignment is pure, so any worker count produces identical results.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
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
