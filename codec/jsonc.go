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
	"encoding/json"

	"github.com/tidwall/jsonc"

	"rivaas.dev/structcfg/value"
)

// TypeJSONC identifies JSON with comments and trailing commas.
const TypeJSONC Type = "jsonc"

func init() {
	Register(JSONCCodec{})
}

// JSONCCodec reads JSON documents that may contain // and /* */ comments
// and trailing commas. Output is plain JSON.
type JSONCCodec struct{}

// Type implements [Format].
func (JSONCCodec) Type() Type { return TypeJSONC }

// Extensions implements [Format].
func (JSONCCodec) Extensions() []string { return []string{".jsonc"} }

// Decode strips comments and trailing commas, then parses the result as JSON.
func (JSONCCodec) Decode(data []byte) (value.Value, error) {
	return decodeJSON(TypeJSONC, jsonc.ToJSON(data))
}

// Encode writes v as indented JSON.
func (JSONCCodec) Encode(v value.Value) ([]byte, error) {
	return json.MarshalIndent(value.ToAny(v), "", "  ")
}
