// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the multiplication kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves a slice of options.
//
// Notes:
//   - The sparse path of Mul fans rows out over at most Workers goroutines.
//   - SparseRatio is the fill ratio (stored exceptions / cells) under which an
//     operand counts as sparse enough for the sparse path.
//   - WithDenseOnly forces every product through the BLAS kernel; tests use it
//     to cross-check both paths.
package matrix

import (
	"math"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

// DefaultSparseRatio is the exception ratio at or under which Mul takes the sparse path.
const DefaultSparseRatio = 0.1

// DefaultWorkers returns the default worker count for the sparse kernel (GOMAXPROCS).
func DefaultWorkers() int { return runtime.GOMAXPROCS(0) }

// parallelRowThreshold is the minimum row count before the sparse kernel fans out.
const parallelRowThreshold = 64

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid     = "matrix: WithWorkers: n must be >= 1"
	panicSparseRatioInvalid = "matrix: WithSparseRatio: ratio must be finite and within [0, 1]"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	workers     int     // >= 1; DefaultWorkers()
	sparseRatio float64 // [0,1]; DefaultSparseRatio
	denseOnly   bool    // skip the sparse path entirely
}

// WithWorkers sets the upper bound of goroutines used by the sparse kernel.
// Panics if n < 1.
//
// Complexity: O(1).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}

// WithSparseRatio sets the exception ratio under which an operand is treated as sparse.
// Panics unless 0 <= ratio <= 1.
//
// Complexity: O(1).
func WithSparseRatio(ratio float64) Option {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		panic(panicSparseRatioInvalid)
	}
	return func(o *Options) { o.sparseRatio = ratio }
}

// WithDenseOnly disables the sparse multiplication path.
func WithDenseOnly() Option {
	return func(o *Options) { o.denseOnly = true }
}

// defaultOptions returns the zero-configuration policy.
func defaultOptions() Options {
	return Options{
		workers:     DefaultWorkers(),
		sparseRatio: DefaultSparseRatio,
	}
}

// gatherOptions applies opts in order over the defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}
