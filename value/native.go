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

package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// FromAny converts the output of a format decoder into a tree.
//
// Every native scalar is stringified with the same rules regardless of the
// format it came from: integers in base 10, floats in their shortest
// decimal form, booleans as "true"/"false" and times as RFC 3339. This is
// what makes `port = 8080` in TOML and `"port": 8080` in JSON both yield
// Scalar("8080").
//
// Errors:
//   - Returns error if a map key or leaf has an unsupported type
func FromAny(native any) (Value, error) {
	switch v := native.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case map[string]any:
		section := make(map[string]Value, len(v))
		for k, child := range v {
			converted, err := FromAny(child)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			section[k] = converted
		}
		return Value{kind: KindSection, section: section}, nil
	case map[any]any:
		section := make(map[string]Value, len(v))
		for rawKey, child := range v {
			k, err := cast.ToStringE(rawKey)
			if err != nil {
				return Value{}, fmt.Errorf("unsupported key type %T: %w", rawKey, err)
			}
			converted, err := FromAny(child)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			section[k] = converted
		}
		return Value{kind: KindSection, section: section}, nil
	case []any:
		items := make([]Value, len(v))
		for i, child := range v {
			converted, err := FromAny(child)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return Value{kind: KindSequence, items: items}, nil
	case []map[string]any:
		// TOML arrays of tables decode to this shape.
		items := make([]Value, len(v))
		for i, child := range v {
			converted, err := FromAny(child)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return Value{kind: KindSequence, items: items}, nil
	case string:
		return Scalar(v), nil
	case bool:
		return Scalar(strconv.FormatBool(v)), nil
	case time.Time:
		return Scalar(v.Format(time.RFC3339Nano)), nil
	case json.Number:
		return Scalar(numberString(v)), nil
	}

	s, err := cast.ToStringE(native)
	if err != nil {
		return Value{}, fmt.Errorf("unsupported value type %T: %w", native, err)
	}
	return Scalar(s), nil
}

// ToAny converts a tree into plain Go values: sections become
// map[string]any, sequences []any, scalars string and null nil.
func ToAny(v Value) any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSection:
		m := make(map[string]any, len(v.section))
		for k, child := range v.section {
			m[k] = ToAny(child)
		}
		return m
	case KindSequence:
		s := make([]any, len(v.items))
		for i, child := range v.items {
			s[i] = ToAny(child)
		}
		return s
	default:
		return nil
	}
}

// numberString renders a JSON number the way native integers and floats
// are rendered, so "1e3" and 1000.0 both become "1000".
func numberString(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}
