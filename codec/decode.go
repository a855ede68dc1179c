// SPDX-License-Identifier: MIT

package codec

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
)

// decoder resolves leaf names against the dictionary of one document.
type decoder struct {
	gates map[string]gate.Transformer
	opts  []circuit.Option
}

// Decode rebuilds the circuit described by doc. Leaves become gate.Universal
// gates named as in the dictionary; nested circuits are rebuilt recursively.
// opts apply to the top-level circuit and to every nested one, so a
// circuit.WithQubitLimit bounds the whole tree.
//
// A missing "transformers" dictionary is read as empty. Any leaf entry then
// fails with ErrUnknownTransformer.
//
// Errors (all but the nil case as *FieldError):
//   - ErrMalformed for a nil doc, a count below 1 or a non-finite amplitude.
//   - ErrMissingField for an absent required field.
//   - ErrUnknownTransformer for a leaf name missing from the dictionary.
//   - ErrMatrixShape for a matrix whose size disagrees with its header.
//   - circuit errors (arity, range, overlap, qubit limit) for a rejected entry.
func Decode(doc *Document, opts ...circuit.Option) (*circuit.Circuit, error) {
	if doc == nil {
		return nil, fmt.Errorf("Decode: nil document: %w", ErrMalformed)
	}
	d := &decoder{gates: make(map[string]gate.Transformer, len(doc.Transformers)), opts: opts}
	for i, td := range doc.Transformers {
		g, err := decodeTransformer(fmt.Sprintf("transformers[%d]", i), td)
		if err != nil {
			return nil, err
		}
		d.gates[g.Name()] = g
	}

	return d.circuit("", doc.Name, doc.Inputs, doc.Outputs, doc.Timeline, "timeline")
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// counts validates an inputs/outputs pair found at path.
func counts(path string, inputs, outputs *int) error {
	switch {
	case inputs == nil:
		return missing(join(path, "inputs"))
	case outputs == nil:
		return missing(join(path, "outputs"))
	case *inputs < 1:
		return &FieldError{Path: join(path, "inputs"), Err: fmt.Errorf("%d: %w", *inputs, ErrMalformed)}
	case *outputs < 1:
		return &FieldError{Path: join(path, "outputs"), Err: fmt.Errorf("%d: %w", *outputs, ErrMalformed)}
	}
	return nil
}

// circuit builds one circuit level. path locates its header and stepsPath
// its timeline.
func (d *decoder) circuit(path, name string, inputs, outputs *int, steps []Step, stepsPath string) (*circuit.Circuit, error) {
	if name == "" {
		return nil, missing(join(path, "name"))
	}
	if err := counts(path, inputs, outputs); err != nil {
		return nil, err
	}
	if steps == nil {
		return nil, missing(stepsPath)
	}
	opts := append(slices.Clone(d.opts), circuit.WithOutputs(*outputs))
	c, err := circuit.New(name, *inputs, opts...)
	if err != nil {
		return nil, &FieldError{Path: join(path, "inputs"), Err: err}
	}

	for i, s := range steps {
		at := fmt.Sprintf("%s[%d]", stepsPath, i)
		t, err := d.step(at, s)
		if err != nil {
			return nil, err
		}
		if err = c.Append(t, *s.Time, s.Indices...); err != nil {
			return nil, &FieldError{Path: at, Err: err}
		}
	}

	return c, nil
}

// step resolves the transformer of one timeline entry found at path.
func (d *decoder) step(path string, s Step) (gate.Transformer, error) {
	switch {
	case s.Name == "":
		return nil, missing(join(path, "name"))
	case s.Indices == nil:
		return nil, missing(join(path, "indices"))
	case s.Time == nil:
		return nil, missing(join(path, "time"))
	}

	if impl := s.Implementation; impl != nil {
		inputs, outputs := s.Inputs, s.Outputs
		if inputs == nil {
			inputs = impl.Inputs
		}
		if outputs == nil {
			outputs = impl.Outputs
		}
		return d.circuit(path, s.Name, inputs, outputs, impl.Timeline, join(path, "implementation.timeline"))
	}

	t, ok := d.gates[s.Name]
	if !ok {
		return nil, &FieldError{Path: join(path, "name"), Err: fmt.Errorf("%s: %w", s.Name, ErrUnknownTransformer)}
	}
	return t, nil
}

func decodeTransformer(path string, td TransformerDoc) (*gate.Gate, error) {
	switch {
	case td.Name == "":
		return nil, missing(join(path, "name"))
	case td.Matrix == nil:
		return nil, missing(join(path, "matrix"))
	}
	if err := counts(path, td.Inputs, td.Outputs); err != nil {
		return nil, err
	}
	m, err := decodeMatrix(join(path, "matrix"), td.Matrix)
	if err != nil {
		return nil, err
	}
	g, err := gate.Universal(td.Name, m, *td.Inputs, *td.Outputs)
	if err != nil {
		return nil, &FieldError{Path: join(path, "matrix"), Err: fmt.Errorf("%w: %w", ErrMatrixShape, err)}
	}

	return g, nil
}

func decodeMatrix(path string, md *MatrixDoc) (*matrix.Matrix, error) {
	switch {
	case md.Rows == nil:
		return nil, missing(join(path, "rows"))
	case md.Columns == nil:
		return nil, missing(join(path, "columns"))
	case md.Contents == nil:
		return nil, missing(join(path, "contents"))
	}
	rows, cols := *md.Rows, *md.Columns
	if rows < 1 || cols < 1 || len(md.Contents) != rows*cols {
		return nil, &FieldError{
			Path: join(path, "contents"),
			Err:  fmt.Errorf("%d cells for %dx%d: %w", len(md.Contents), rows, cols, ErrMatrixShape),
		}
	}
	data := make([]complex128, len(md.Contents))
	for k, a := range md.Contents {
		if !a.finite() {
			return nil, &FieldError{Path: fmt.Sprintf("%s.contents[%d]", path, k), Err: ErrMalformed}
		}
		data[k] = a.Complex()
	}
	m, err := matrix.FromSlice(rows, cols, data)
	if err != nil {
		return nil, &FieldError{Path: path, Err: fmt.Errorf("%w: %w", ErrMatrixShape, err)}
	}

	return m, nil
}
