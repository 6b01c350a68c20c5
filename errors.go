// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package structcfg

import (
	"errors"
	"fmt"
	"strings"

	"rivaas.dev/structcfg/codec"
)

// Sentinels matched with [errors.Is].
var (
	// ErrMissingField matches every [*MissingFieldError].
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch matches every [*TypeMismatchError].
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidFileFormat matches every [*InvalidFileFormatError].
	ErrInvalidFileFormat = codec.ErrInvalidFormat

	// ErrMissingFileExtension is returned when a file's format must be
	// inferred from a path that has no extension.
	ErrMissingFileExtension = codec.ErrMissingExtension
)

// InvalidFileFormatError reports a format tag or extension with no
// registered format. Its message is "'{ext}' is not a valid file format".
type InvalidFileFormatError = codec.InvalidFormatError

// Error represents a configuration error with detailed context.
// It provides information about where the error occurred (source, field),
// what operation was being performed, and the underlying error.
type Error struct {
	Source    string // The source where the error occurred (e.g., "source[0]", "file-source", "dumper[1]")
	Field     string // The specific field where the error occurred (optional)
	Operation string // The operation being performed (e.g., "load", "detect-format", "dump")
	Err       error  // The underlying error
}

// Error returns a formatted error message with context information.
// If Field is provided, it includes the field in the error message.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s.%s during %s: %v",
			e.Source, e.Field, e.Operation, e.Err)
	}
	return fmt.Sprintf("config error in %s during %s: %v",
		e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error, allowing for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the provided context.
func NewError(source, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

// NewFieldError creates a new Error with field information.
func NewFieldError(source, field, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Field:     field,
		Operation: operation,
		Err:       err,
	}
}

// MissingFieldError reports a required field that no source, override or
// default supplied.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Key
}

// Is reports whether target is [ErrMissingField].
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// TypeMismatchError reports a value that could not be converted to the
// field's type. Found holds the rendered value when HasFound is set.
type TypeMismatchError struct {
	Field    string
	Expected string
	Found    string
	HasFound bool
}

func (e *TypeMismatchError) Error() string {
	if e.HasFound {
		return fmt.Sprintf("Type mismatch in field '%s': expected %s, found '%s'", e.Field, e.Expected, e.Found)
	}
	return fmt.Sprintf("Type mismatch in field '%s', expected %s", e.Field, e.Expected)
}

// Is reports whether target is [ErrTypeMismatch].
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// NestedError wraps a failure inside a nested structure or sequence with
// the name of the enclosing field, or "[i]" for a sequence element.
type NestedError struct {
	Section string
	Err     error
}

func (e *NestedError) Error() string {
	return fmt.Sprintf("Nested configuration error in %s: %v", e.Section, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *NestedError) Unwrap() error {
	return e.Err
}

// Path returns the location of the failing field, such as
// "servers[2].port" or "database.pool.size".
func (e *NestedError) Path() string {
	var segments []string
	var err error = e
walk:
	for {
		switch v := err.(type) {
		case *NestedError:
			segments = append(segments, v.Section)
			err = v.Err
		case *MissingFieldError:
			segments = append(segments, v.Key)
			break walk
		case *TypeMismatchError:
			if v.Field != "" && segments[len(segments)-1] != v.Field {
				segments = append(segments, v.Field)
			}
			break walk
		default:
			break walk
		}
	}

	var b strings.Builder
	for i, seg := range segments {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}

	return b.String()
}

// isAbsence reports whether err means the value was not there at all.
// Only a MissingFieldError at the top of the chain qualifies; a missing
// field deeper inside a value that was present is a real error.
func isAbsence(err error) bool {
	_, ok := err.(*MissingFieldError)
	return ok
}

func mismatch(expected, found string) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Found: found, HasFound: true}
}

func kindMismatch(expected string) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected}
}
