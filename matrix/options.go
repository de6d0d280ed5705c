// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy of Dense
// and Coo. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective state.
//
// Notes:
//   - Options are captured at construction time; a matrix keeps its policy
//     for its whole lifetime, and derived matrices (Clone, ToDense, SymmetricDense) inherit it.
//   - Evaluation results may legitimately contain ±Inf or NaN (IEEE
//     semantics of the expressions); callers that store such values build
//     their containers with WithNoValidateNaNInf.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the non-negative tolerance used by zero dropping in
	// Compact.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set and Append.
	DefaultValidateNaNInf = true

	// DefaultDropZeros controls whether Compact removes merged entries whose
	// magnitude is ≤ eps. Off by default so sparsity patterns stay stable
	// across evaluation points.
	DefaultDropZeros = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	dropZeros      bool    // DefaultDropZeros
}

// WithEpsilon sets the numeric tolerance eps.
// Panics with a stable message when eps is negative, NaN or ±Inf.
// Complexity: O(1).
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf lets NaN and ±Inf pass through Set and Append.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithDropZeros makes Compact remove merged entries with |v| ≤ eps.
func WithDropZeros() Option {
	return func(o *Options) { o.dropZeros = true }
}

// NewMatrixOptions resolves opts on top of the documented defaults.
// Complexity: O(k) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidatesNaNInf reports whether finite-value validation is on.
func (o Options) ValidatesNaNInf() bool { return o.validateNaNInf }

// DropsZeros reports whether Compact removes near-zero entries.
func (o Options) DropsZeros() bool { return o.dropZeros }

// gatherOptions applies user setters on top of defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		dropZeros:      DefaultDropZeros,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
