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
	"github.com/goccy/go-yaml"

	"rivaas.dev/structcfg/value"
)

// TypeYAML is a constant representing the "yaml" encoding type.
const TypeYAML Type = "yaml"

func init() {
	Register(YAMLCodec{})
}

// YAMLCodec reads and writes YAML documents. An empty document and an
// explicit null both decode to Null.
type YAMLCodec struct{}

// Type implements [Format].
func (YAMLCodec) Type() Type { return TypeYAML }

// Extensions implements [Format].
func (YAMLCodec) Extensions() []string { return []string{".yaml", ".yml"} }

// Decode parses a YAML document.
func (YAMLCodec) Decode(data []byte) (value.Value, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return value.Value{}, parseError(TypeYAML, err)
	}

	v, err := value.FromAny(doc)
	if err != nil {
		return value.Value{}, parseError(TypeYAML, err)
	}

	return v, nil
}

// Encode writes v as YAML.
func (YAMLCodec) Encode(v value.Value) ([]byte, error) {
	return yaml.Marshal(value.ToAny(v))
}
