// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a circuit. Integer header fields are
// pointers so that an absent field can be told apart from a zero.
type Document struct {
	Name         string           `json:"name" yaml:"name" msgpack:"name"`
	Inputs       *int             `json:"inputs" yaml:"inputs" msgpack:"inputs"`
	Outputs      *int             `json:"outputs" yaml:"outputs" msgpack:"outputs"`
	Timeline     []Step           `json:"timeline" yaml:"timeline" msgpack:"timeline"`
	Transformers []TransformerDoc `json:"transformers,omitempty" yaml:"transformers,omitempty" msgpack:"transformers,omitempty"`
}

// Step is one timeline entry. Inputs, Outputs and Implementation are only
// set when the entry is a nested circuit.
type Step struct {
	Name           string    `json:"name" yaml:"name" msgpack:"name"`
	Inputs         *int      `json:"inputs,omitempty" yaml:"inputs,omitempty" msgpack:"inputs,omitempty"`
	Outputs        *int      `json:"outputs,omitempty" yaml:"outputs,omitempty" msgpack:"outputs,omitempty"`
	Implementation *Document `json:"implementation,omitempty" yaml:"implementation,omitempty" msgpack:"implementation,omitempty"`
	Indices        []int     `json:"indices" yaml:"indices,flow" msgpack:"indices"`
	Time           *int      `json:"time" yaml:"time" msgpack:"time"`
}

// TransformerDoc is a leaf transformer in the document dictionary.
type TransformerDoc struct {
	Name    string     `json:"name" yaml:"name" msgpack:"name"`
	Inputs  *int       `json:"inputs" yaml:"inputs" msgpack:"inputs"`
	Outputs *int       `json:"outputs" yaml:"outputs" msgpack:"outputs"`
	Matrix  *MatrixDoc `json:"matrix" yaml:"matrix" msgpack:"matrix"`
}

// MatrixDoc stores a matrix in row-major order.
type MatrixDoc struct {
	Rows     *int        `json:"rows" yaml:"rows" msgpack:"rows"`
	Columns  *int        `json:"columns" yaml:"columns" msgpack:"columns"`
	Contents []Amplitude `json:"contents" yaml:"contents" msgpack:"contents"`
}

// Amplitude is one complex matrix cell.
type Amplitude struct {
	Re float64 `json:"re" yaml:"re" msgpack:"re"`
	Im float64 `json:"im" yaml:"im" msgpack:"im"`
}

// rawAmplitude is the decoding shape of Amplitude; nil marks an absent part.
type rawAmplitude struct {
	Re *float64 `json:"re" yaml:"re" msgpack:"re"`
	Im *float64 `json:"im" yaml:"im" msgpack:"im"`
}

var (
	_ msgpack.CustomDecoder = (*Amplitude)(nil)
	_ yaml.Unmarshaler      = (*Amplitude)(nil)
	_ yaml.Marshaler        = Amplitude{}
)

// AmplitudeOf converts a complex value.
func AmplitudeOf(v complex128) Amplitude { return Amplitude{Re: real(v), Im: imag(v)} }

// Complex returns the amplitude as a complex value.
func (a Amplitude) Complex() complex128 { return complex(a.Re, a.Im) }

func (a Amplitude) finite() bool {
	return !math.IsNaN(a.Re) && !math.IsInf(a.Re, 0) && !math.IsNaN(a.Im) && !math.IsInf(a.Im, 0)
}

func (r rawAmplitude) amplitude() (Amplitude, error) {
	if r.Re == nil {
		return Amplitude{}, fmt.Errorf("amplitude re: %w", ErrMissingField)
	}
	if r.Im == nil {
		return Amplitude{}, fmt.Errorf("amplitude im: %w", ErrMissingField)
	}
	return Amplitude{Re: *r.Re, Im: *r.Im}, nil
}

// MarshalJSON writes both parts with 19 significant digits.
func (a Amplitude) MarshalJSON() ([]byte, error) {
	if !a.finite() {
		return nil, fmt.Errorf("amplitude %v: %w", a.Complex(), ErrMalformed)
	}
	b := make([]byte, 0, 56)
	b = append(b, `{"re":`...)
	b = strconv.AppendFloat(b, a.Re, 'g', 19, 64)
	b = append(b, `,"im":`...)
	b = strconv.AppendFloat(b, a.Im, 'g', 19, 64)

	return append(b, '}'), nil
}

// UnmarshalJSON requires both "re" and "im".
func (a *Amplitude) UnmarshalJSON(data []byte) error {
	var raw rawAmplitude
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := raw.amplitude()
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// MarshalYAML writes the amplitude as a flow mapping, {re: 1, im: 0}.
func (a Amplitude) MarshalYAML() (interface{}, error) {
	var n yaml.Node
	if err := n.Encode(rawAmplitude{Re: &a.Re, Im: &a.Im}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle

	return &n, nil
}

// UnmarshalYAML requires both "re" and "im".
func (a *Amplitude) UnmarshalYAML(n *yaml.Node) error {
	var raw rawAmplitude
	if err := n.Decode(&raw); err != nil {
		return err
	}
	v, err := raw.amplitude()
	if err != nil {
		return err
	}
	*a = v

	return nil
}

// DecodeMsgpack requires both "re" and "im".
func (a *Amplitude) DecodeMsgpack(dec *msgpack.Decoder) error {
	var raw rawAmplitude
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	v, err := raw.amplitude()
	if err != nil {
		return err
	}
	*a = v

	return nil
}

func intp(v int) *int { return &v }
