// SPDX-License-Identifier: MIT

// Package circuit: functional configuration.
//
// Defaults:
//   - outputs = inputs;
//   - a disabled (Nop) logger;
//   - no qubit limit;
//   - matrix package defaults for the multiplication kernels.
package circuit

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/qsim/matrix"
)

const (
	panicOutputsInvalid = "circuit: WithOutputs: n must be >= 1"
	panicLimitInvalid   = "circuit: WithQubitLimit: n must be >= 1"
)

// Option configures a Circuit at construction time.
type Option func(*options)

type options struct {
	outputs int // 0 means "same as inputs"
	logger  zerolog.Logger
	mopts   []matrix.Option
	limit   int // 0 means unlimited
}

// WithOutputs overrides the output count reported by the circuit.
// Panics if n < 1.
func WithOutputs(n int) Option {
	if n < 1 {
		panic(panicOutputsInvalid)
	}
	return func(o *options) { o.outputs = n }
}

// WithLogger sets the logger used for debug events; the circuit tags every
// event with component=circuit and its name.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMatrixOptions forwards options to every matrix product the circuit runs.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(o *options) { o.mopts = append(o.mopts, opts...) }
}

// WithQubitLimit makes New fail with ErrTooManyQubits above n qubits.
// Panics if n < 1.
func WithQubitLimit(n int) Option {
	if n < 1 {
		panic(panicLimitInvalid)
	}
	return func(o *options) { o.limit = n }
}

func gatherOptions(opts ...Option) options {
	o := options{logger: zerolog.Nop()}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
