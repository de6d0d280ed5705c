package problem

import (
	"io"
	"log/slog"
	"math"
	"runtime"
)

const (
	panicWorkersInvalid = "problem: WithWorkers: n must be >= 1"
	panicDropTolInvalid = "problem: WithDropTolerance: eps must be finite, non-negative"
)

// Option configures Assemble.
type Option func(*options)

type options struct {
	workers   int          // concurrent standardization tasks
	logger    *slog.Logger // debug output; discard by default
	dropZeros bool         // CombineH removes merged entries with |v| ≤ dropTol
	dropTol   float64
}

func defaultOptions() options {
	return options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers bounds the number of components standardized concurrently.
// Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithDropTolerance makes CombineH remove merged entries whose magnitude is
// at most eps, such as curvature cancelled by the multipliers. By default every
// structural entry is kept so the sparsity pattern does not depend on nu.
// Panics when eps is negative, NaN or infinite.
func WithDropTolerance(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicDropTolInvalid)
	}

	return func(o *options) {
		o.dropZeros = true
		o.dropTol = eps
	}
}

// WithLogger sets the logger used for assembly diagnostics.
// Passing nil has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
