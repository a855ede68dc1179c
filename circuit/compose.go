// SPDX-License-Identifier: MIT

package circuit

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
)

// AllTransformers returns the distinct leaf transformers of c, expanding
// nested circuits recursively. Leaves are listed in time order, then in
// insertion order; the first transformer seen under a name wins.
func (c *Circuit) AllTransformers() []gate.Transformer {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []gate.Transformer
	c.collect(seen, &out)
	return out
}

func (c *Circuit) collect(seen mapset.Set[string], out *[]gate.Transformer) {
	_, steps := c.snapshot()
	for _, step := range steps {
		for _, e := range step {
			if sub, ok := e.Transformer.(*Circuit); ok {
				sub.collect(seen, out)
				continue
			}
			if seen.Add(e.Transformer.Name()) {
				*out = append(*out, e.Transformer)
			}
		}
	}
}

// Equal reports whether a and b share name, arity and, approximately, their
// total operator. A circuit whose operator cannot be evaluated equals nothing.
func Equal(a, b *Circuit) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || a.inputs != b.inputs || a.outputs != b.outputs {
		return false
	}
	ma, err := a.Operator()
	if err != nil {
		return false
	}
	mb, err := b.Operator()
	if err != nil {
		return false
	}
	return matrix.Equal(ma, mb)
}

// Inverse returns "|Inv<name>|", the circuit undoing c: time steps are
// mirrored (t -> max-t), entries within a step are reversed, nested circuits
// are inverted recursively and every leaf is replaced by gate.Adjoint.
// The result inherits the options given in opts only.
//
// Errors:
//   - Errors from New or Append; none occur for a valid c.
func Inverse(c *Circuit, opts ...Option) (*Circuit, error) {
	own := append([]Option{WithOutputs(c.outputs)}, opts...)
	inv, err := New("|Inv"+gate.TrimName(c.name)+"|", c.inputs, own...)
	if err != nil {
		return nil, err
	}
	ts, steps := c.snapshot()
	if len(ts) == 0 {
		return inv, nil
	}
	last := ts[len(ts)-1]
	for i, t := range ts {
		for _, e := range slices.Backward(steps[i]) {
			var undo gate.Transformer
			if sub, ok := e.Transformer.(*Circuit); ok {
				if undo, err = Inverse(sub, opts...); err != nil {
					return nil, fmt.Errorf("Inverse(%s): %w", c.name, err)
				}
			} else {
				undo = gate.Adjoint(e.Transformer)
			}
			if err = inv.Append(undo, last-t, e.Indices...); err != nil {
				return nil, fmt.Errorf("Inverse(%s): %w", c.name, err)
			}
		}
	}

	return inv, nil
}
