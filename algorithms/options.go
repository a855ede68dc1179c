// SPDX-License-Identifier: MIT

package algorithms

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
)

// Option configures the circuits and helpers of this package.
type Option func(*options)

type options struct {
	src    qubit.Source
	logger zerolog.Logger
	mopts  []matrix.Option
}

// WithSource sets the randomness used when a measured answer has several
// equally likely values. Nil selects the process-global generator.
func WithSource(src qubit.Source) Option {
	return func(o *options) { o.src = src }
}

// WithLogger forwards l to every circuit built by a constructor.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMatrixOptions forwards matrix options to every circuit built by a constructor.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(o *options) { o.mopts = append(o.mopts, opts...) }
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

// circuitOptions returns the circuit options shared by every built circuit.
func (o options) circuitOptions() []circuit.Option {
	return []circuit.Option{circuit.WithLogger(o.logger), circuit.WithMatrixOptions(o.mopts...)}
}

// newCircuit creates an empty circuit with the shared options.
func (o options) newCircuit(name string, inputs int) (*circuit.Circuit, error) {
	return circuit.New(name, inputs, o.circuitOptions()...)
}
