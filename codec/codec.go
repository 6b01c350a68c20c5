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

package codec

import (
	"errors"
	"fmt"
	"strings"

	"rivaas.dev/structcfg/value"
)

// Type represents a codec type identifier.
type Type string

// Decoder parses encoded bytes into a configuration tree.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Decode parses data into a tree. An empty document decodes to an
	// empty section or to Null, never to an error.
	Decode(data []byte) (value.Value, error)
}

// Encoder serializes a configuration tree.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(v value.Value) ([]byte, error)
}

// Format is a named serialization format that can be selected by its type
// or by a file extension.
type Format interface {
	Decoder
	Encoder

	// Type returns the identifier the format is registered under.
	Type() Type

	// Extensions returns the file extensions handled by the format,
	// lower case and including the leading dot.
	Extensions() []string
}

// ParseError reports that a document could not be parsed in its format.
type ParseError struct {
	Format Type
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parsing error: %v", strings.ToUpper(string(e.Format)), e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrMissingExtension is returned when a format is selected from a path
// that has no file extension.
var ErrMissingExtension = errors.New("missing file extension")

// ErrInvalidFormat is matched by every [*InvalidFormatError].
var ErrInvalidFormat = errors.New("invalid file format")

// InvalidFormatError reports a format tag or file extension that no
// registered format handles. Name never carries a leading dot.
type InvalidFormatError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("'%s' is not a valid file format", e.Name)
}

// Is reports whether target is [ErrInvalidFormat].
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func parseError(t Type, err error) error {
	return &ParseError{Format: t, Err: err}
}
