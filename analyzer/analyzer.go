// SPDX-License-Identifier: MIT

package analyzer

import (
	"fmt"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
)

// MaxTruthTableInputs bounds the width accepted by TruthTable.
const MaxTruthTableInputs = 12

// Option configures TruthTable.
type Option func(*options)

type options struct {
	workers int
	mopts   []matrix.Option
}

// WithWorkers bounds the number of rows computed at once. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("analyzer: WithWorkers: n must be >= 1")
	}
	return func(o *options) { o.workers = n }
}

// WithMatrixOptions forwards options to every matrix product.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(o *options) { o.mopts = append(o.mopts, opts...) }
}

// TruthTable maps every n-bit input string of t (qubit 0 first) to the
// probabilistic map of t applied to that basis state.
//
// Errors:
//   - gate.ErrNilTransformer for a nil t.
//   - ErrTooWide when t has more than MaxTruthTableInputs inputs.
//   - matrix.ErrNilMatrix when t has no operator (a circuit that failed to evaluate).
//   - Errors from the matrix product, wrapped with the input string.
func TruthTable(t gate.Transformer, opts ...Option) (map[string]map[string]float64, error) {
	if t == nil {
		return nil, gate.ErrNilTransformer
	}
	n := t.Inputs()
	if n > MaxTruthTableInputs {
		return nil, fmt.Errorf("TruthTable(%s): %d inputs: %w", t.Name(), n, ErrTooWide)
	}
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	u := t.Matrix()
	if u == nil {
		return nil, fmt.Errorf("TruthTable(%s): %w", t.Name(), matrix.ErrNilMatrix)
	}
	states := 1 << uint(n)
	rows := make([]map[string]float64, states)
	var g errgroup.Group
	g.SetLimit(o.workers)
	for k := 0; k < states; k++ {
		g.Go(func() error {
			qs := make([]qubit.Qubit, n)
			for i := range qs {
				qs[i] = qubit.FromBit(k>>(n-1-i)&1 == 1)
			}
			v, err := qubit.Vector(qs...)
			if err != nil {
				return err
			}
			out, err := matrix.Mul(u, v, o.mopts...)
			if err != nil {
				return fmt.Errorf("TruthTable(%s): input %s: %w", t.Name(), measure.Key(uint64(k), n), err)
			}
			m, err := measure.New(out)
			if err != nil {
				return err
			}
			rows[k] = m.ProbabilisticMap(false)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := make(map[string]map[string]float64, states)
	for k, row := range rows {
		table[measure.Key(uint64(k), n)] = row
	}
	return table, nil
}

// Bloch returns the Bloch-sphere coordinates of q:
// x = 2·Re(ᾱβ), y = 2·Im(ᾱβ), z = |α|² - |β|². A global phase does not move
// the point; basis states land on the poles.
func Bloch(q qubit.Qubit) (x, y, z float64) {
	a, b := q.GroundAmplitude(), q.ExcitedAmplitude()
	c := cmplx.Conj(a) * b
	return 2 * real(c), 2 * imag(c), real(cmplx.Conj(a)*a) - real(cmplx.Conj(b)*b)
}
