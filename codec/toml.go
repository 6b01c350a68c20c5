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
	"github.com/BurntSushi/toml"

	"rivaas.dev/structcfg/value"
)

// TypeTOML is a constant representing the "toml" encoding type.
const TypeTOML Type = "toml"

func init() {
	Register(TOMLCodec{})
}

// TOMLCodec reads and writes TOML documents. Datetimes become RFC 3339
// scalars and arrays of tables become sequences of sections.
type TOMLCodec struct{}

// Type implements [Format].
func (TOMLCodec) Type() Type { return TypeTOML }

// Extensions implements [Format].
func (TOMLCodec) Extensions() []string { return []string{".toml"} }

// Decode parses a TOML document. The root is always a section.
func (TOMLCodec) Decode(data []byte) (value.Value, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return value.Value{}, parseError(TypeTOML, err)
	}

	v, err := value.FromAny(doc)
	if err != nil {
		return value.Value{}, parseError(TypeTOML, err)
	}

	return v, nil
}

// Encode writes v as TOML. Null leaves are omitted since TOML has no null.
func (TOMLCodec) Encode(v value.Value) ([]byte, error) {
	return toml.Marshal(value.ToAny(v))
}
