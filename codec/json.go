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
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"rivaas.dev/structcfg/value"
)

// TypeJSON is a constant representing the "json" encoding type.
const TypeJSON Type = "json"

func init() {
	Register(JSONCodec{})
}

// JSONCodec reads and writes JSON documents. Numbers are decoded with
// [json.Decoder.UseNumber] so that large integers keep every digit.
type JSONCodec struct{}

// Type implements [Format].
func (JSONCodec) Type() Type { return TypeJSON }

// Extensions implements [Format].
func (JSONCodec) Extensions() []string { return []string{".json"} }

// Decode parses a single JSON value. Trailing data after it is an error.
func (JSONCodec) Decode(data []byte) (value.Value, error) {
	return decodeJSON(TypeJSON, data)
}

// Encode writes v as indented JSON.
func (JSONCodec) Encode(v value.Value) ([]byte, error) {
	return json.MarshalIndent(value.ToAny(v), "", "  ")
}

func decodeJSON(t Type, data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return value.Value{}, parseError(t, err)
	}
	if dec.More() {
		return value.Value{}, parseError(t, errors.New("unexpected data after top-level value"))
	}

	v, err := value.FromAny(doc)
	if err != nil {
		return value.Value{}, parseError(t, err)
	}

	return v, nil
}
