// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qsim/circuit"
)

// Format selects an encoding of Document.
type Format int

const (
	// JSON is the reference text encoding.
	JSON Format = iota
	// YAML is the human-editable encoding.
	YAML
	// MessagePack is the compact binary encoding.
	MessagePack
)

var formatNames = [...]string{"json", "yaml", "msgpack"}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat accepts "json", "yaml" (or "yml") and "msgpack" (or "mp",
// "mpk"), in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "msgpack", "mp", "mpk":
		return MessagePack, nil
	}
	return 0, fmt.Errorf("ParseFormat(%q): %w", s, ErrUnknownFormat)
}

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("FormatFor(%q): no extension: %w", path, ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// Marshal encodes c in format f.
func Marshal(f Format, c *circuit.Circuit) ([]byte, error) {
	switch f {
	case JSON:
		return MarshalJSON(c)
	case YAML:
		return MarshalYAML(c)
	case MessagePack:
		return MarshalMsgpack(c)
	}
	return nil, fmt.Errorf("Marshal(%s): %w", f, ErrUnknownFormat)
}

// Unmarshal decodes data written in format f; opts are passed to Decode.
func Unmarshal(f Format, data []byte, opts ...circuit.Option) (*circuit.Circuit, error) {
	switch f {
	case JSON:
		return UnmarshalJSON(data, opts...)
	case YAML:
		return UnmarshalYAML(data, opts...)
	case MessagePack:
		return UnmarshalMsgpack(data, opts...)
	}
	return nil, fmt.Errorf("Unmarshal(%s): %w", f, ErrUnknownFormat)
}

// MarshalJSON encodes c as indented JSON.
func MarshalJSON(c *circuit.Circuit) ([]byte, error) {
	doc, err := Encode(c)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON decodes a JSON document.
func UnmarshalJSON(data []byte, opts ...circuit.Option) (*circuit.Circuit, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("UnmarshalJSON: %w: %w", ErrMalformed, err)
	}
	return Decode(&doc, opts...)
}

// MarshalYAML encodes c as YAML with two-space indentation.
func MarshalYAML(c *circuit.Circuit) ([]byte, error) {
	doc, err := Encode(c)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err = enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("MarshalYAML(%s): %w", c.Name(), err)
	}
	if err = enc.Close(); err != nil {
		return nil, fmt.Errorf("MarshalYAML(%s): %w", c.Name(), err)
	}

	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML document.
func UnmarshalYAML(data []byte, opts ...circuit.Option) (*circuit.Circuit, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("UnmarshalYAML: %w: %w", ErrMalformed, err)
	}
	return Decode(&doc, opts...)
}

// MarshalMsgpack encodes c as MessagePack.
func MarshalMsgpack(c *circuit.Circuit) ([]byte, error) {
	doc, err := Encode(c)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(doc)
}

// UnmarshalMsgpack decodes a MessagePack document.
func UnmarshalMsgpack(data []byte, opts ...circuit.Option) (*circuit.Circuit, error) {
	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("UnmarshalMsgpack: %w: %w", ErrMalformed, err)
	}
	return Decode(&doc, opts...)
}
