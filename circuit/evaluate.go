// SPDX-License-Identifier: MIT

// Package circuit - evaluation.
//
// Two evaluation paths share the same lifted steps:
//   - TotalMatrix left-multiplies every lifted entry onto a sparse identity in
//     ascending time order and caches the product until the next mutation of
//     the circuit or of a circuit nested in it.
//   - TransformRange left-multiplies the lifted entries of a step range onto a
//     state vector, which costs one matrix-vector product per entry.

package circuit

import (
	"fmt"
	"time"

	"github.com/katalvlaran/qsim/matrix"
)

// TotalMatrix returns a copy of the circuit operator, the product of every
// lifted entry in time order. An empty circuit yields the identity. A
// transformer whose matrix no longer fits its entry is logged and yields nil;
// use Operator to receive that error.
//
// Complexity: O(entries · 2^n · 2^k) for the first call after a mutation of c
// or of any nested circuit, O(stored) afterwards.
func (c *Circuit) TotalMatrix() *matrix.Matrix {
	m, err := c.Operator()
	if err != nil {
		c.log.Error().Err(err).Msg("total matrix unavailable")
		return nil
	}
	return m
}

// Operator is TotalMatrix with the evaluation error returned.
//
// Errors:
//   - ErrDimensionMismatch wrapped with the failing entry.
func (c *Circuit) Operator() (*matrix.Matrix, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rev := c.revision()
	if c.total == nil || c.stamp != rev {
		start := time.Now()
		total, err := matrix.Identity(1 << c.inputs)
		if err != nil {
			return nil, fmt.Errorf("TotalMatrix(%s): %w", c.name, err)
		}
		gates := 0
		for _, t := range c.times() {
			for _, e := range c.timeline[t] {
				if total, err = c.apply(e, total); err != nil {
					return nil, fmt.Errorf("TotalMatrix(%s) t=%d: %w", c.name, t, err)
				}
				gates++
			}
		}
		c.total, c.stamp = total, rev
		c.log.Debug().
			Int("steps", len(c.timeline)).
			Int("gates", gates).
			Dur("elapsed", time.Since(start)).
			Msg("total matrix computed")
	}

	return c.total.Clone(), nil
}

// apply left-multiplies the lifted entry onto x.
func (c *Circuit) apply(e Entry, x *matrix.Matrix) (*matrix.Matrix, error) {
	lifted, err := Expand(c.inputs, e.Transformer.Matrix(), e.Indices)
	if err != nil {
		return nil, fmt.Errorf("%s%v: %w", e.Transformer.Name(), e.Indices, err)
	}
	return matrix.Mul(lifted, x, c.mopts...)
}

// Transform applies every step of the circuit to input.
//
// Errors:
//   - ErrDimensionMismatch as in TransformRange.
func (c *Circuit) Transform(input *matrix.Matrix) (*matrix.Matrix, error) {
	x, err := c.column(input)
	if err != nil {
		return nil, err
	}
	ts, steps := c.snapshot()
	return c.run(ts, steps, 0, len(ts)-1, x)
}

// TransformRange applies steps from..upTo (inclusive positions in Times()
// order) to input. An upTo past the last step stops at the last step.
//
// Input handling:
//   - A 1×2^n row is transposed into a column first.
//   - The column must have exactly 2^Inputs() rows.
//
// Errors:
//   - ErrStepOutOfRange if from < 0 or upTo < from.
//   - ErrDimensionMismatch for a nil input or one of the wrong size.
func (c *Circuit) TransformRange(from, upTo int, input *matrix.Matrix) (*matrix.Matrix, error) {
	if from < 0 || upTo < from {
		return nil, fmt.Errorf("TransformRange(%d, %d): %w", from, upTo, ErrStepOutOfRange)
	}
	x, err := c.column(input)
	if err != nil {
		return nil, err
	}
	ts, steps := c.snapshot()
	return c.run(ts, steps, from, upTo, x)
}

// column validates input and returns it as a sparse column vector.
func (c *Circuit) column(input *matrix.Matrix) (*matrix.Matrix, error) {
	if input == nil {
		return nil, fmt.Errorf("Transform(%s): nil input: %w", c.name, ErrDimensionMismatch)
	}
	x := input
	if x.Rows() < x.Cols() {
		t, err := matrix.Transpose(x)
		if err != nil {
			return nil, err
		}
		x = t
	}
	if x.Cols() != 1 || x.Rows() != 1<<c.inputs {
		return nil, fmt.Errorf("Transform(%s): %dx%d input for %d qubits: %w",
			c.name, input.Rows(), input.Cols(), c.inputs, ErrDimensionMismatch)
	}

	return x.Compressed(), nil
}

// run applies steps[from..upTo] to x.
func (c *Circuit) run(ts []int, steps [][]Entry, from, upTo int, x *matrix.Matrix) (*matrix.Matrix, error) {
	if upTo >= len(steps) {
		upTo = len(steps) - 1
	}
	var err error
	for s := from; s <= upTo; s++ {
		for _, e := range steps[s] {
			if x, err = c.apply(e, x); err != nil {
				return nil, fmt.Errorf("Transform(%s) t=%d: %w", c.name, ts[s], err)
			}
		}
	}
	c.log.Debug().Int("from", from).Int("to", upTo).Int("steps", len(steps)).Msg("partial transform")

	return x, nil
}
