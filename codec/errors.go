// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when the input cannot be parsed as a document
	// or carries an impossible value (negative counts, non-finite amplitudes).
	ErrMalformed = errors.New("codec: malformed document")

	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("codec: missing field")

	// ErrUnknownTransformer is returned when a timeline entry names a leaf
	// transformer that is not in the dictionary.
	ErrUnknownTransformer = errors.New("codec: unknown transformer")

	// ErrMatrixShape is returned when a stored matrix does not match its
	// declared rows, columns or qubit count.
	ErrMatrixShape = errors.New("codec: bad matrix shape")

	// ErrUnknownFormat is returned by ParseFormat and FormatFor.
	ErrUnknownFormat = errors.New("codec: unknown format")
)

// FieldError locates a decoding failure inside a document.
type FieldError struct {
	Path string // dotted path, e.g. "timeline[2].implementation.timeline[0].time"
	Err  error
}

// Error implements error.
func (e *FieldError) Error() string { return fmt.Sprintf("codec: %s: %v", e.Path, e.Err) }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *FieldError) Unwrap() error { return e.Err }

func missing(path string) error { return &FieldError{Path: path, Err: ErrMissingField} }
