// SPDX-License-Identifier: MIT

package codec

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
)

// Encode builds the document of c. The timeline is listed by time step, then
// in insertion order; nested circuits are written inline and every distinct
// leaf (by name) lands in the top-level dictionary.
//
// Errors:
//   - gate.ErrNilTransformer for a nil c.
//   - ErrMalformed when a leaf matrix holds a NaN or an infinity.
func Encode(c *circuit.Circuit) (*Document, error) {
	if c == nil {
		return nil, fmt.Errorf("Encode: %w", gate.ErrNilTransformer)
	}
	doc := encodeTimeline(c)
	leaves := c.AllTransformers()
	doc.Transformers = make([]TransformerDoc, 0, len(leaves))
	for _, t := range leaves {
		td, err := encodeTransformer(t)
		if err != nil {
			return nil, fmt.Errorf("Encode(%s): %w", c.Name(), err)
		}
		doc.Transformers = append(doc.Transformers, td)
	}

	return doc, nil
}

// encodeTimeline writes the header and timeline of c, without a dictionary.
func encodeTimeline(c *circuit.Circuit) *Document {
	doc := &Document{
		Name:     c.Name(),
		Inputs:   intp(c.Inputs()),
		Outputs:  intp(c.Outputs()),
		Timeline: make([]Step, 0, c.GateCount()),
	}
	for _, t := range c.Times() {
		for _, e := range c.Entries(t) {
			s := Step{Name: e.Transformer.Name(), Indices: slices.Clone(e.Indices), Time: intp(t)}
			if sub, ok := e.Transformer.(*circuit.Circuit); ok {
				s.Inputs, s.Outputs = intp(sub.Inputs()), intp(sub.Outputs())
				s.Implementation = encodeTimeline(sub)
			}
			doc.Timeline = append(doc.Timeline, s)
		}
	}

	return doc
}

func encodeTransformer(t gate.Transformer) (TransformerDoc, error) {
	m := t.Matrix()
	data := m.Data()
	contents := make([]Amplitude, len(data))
	for k, v := range data {
		a := AmplitudeOf(v)
		if !a.finite() {
			return TransformerDoc{}, fmt.Errorf("%s[%d]: %w", t.Name(), k, ErrMalformed)
		}
		contents[k] = a
	}

	return TransformerDoc{
		Name:    t.Name(),
		Inputs:  intp(t.Inputs()),
		Outputs: intp(t.Outputs()),
		Matrix:  &MatrixDoc{Rows: intp(m.Rows()), Columns: intp(m.Cols()), Contents: contents},
	}, nil
}
