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

// Package value provides the tree that every configuration source is
// normalized into.
//
// A [Value] is one of four kinds:
//
//   - Null: an explicit null leaf or an empty document
//   - Scalar: a leaf kept as its canonical string form
//   - Section: a mapping of unique string keys to values
//   - Sequence: an ordered list of values
//
// Scalars are never interpreted at parse time. A port read from TOML, JSON
// or YAML is Scalar("8080") in every case, and conversion to uint16 happens
// only when a field is resolved.
//
// # Merging
//
// [Merge] combines two trees, favoring the incoming one on conflicts:
//
//	base := value.Section(map[string]value.Value{
//	    "server": value.Section(map[string]value.Value{"host": value.Scalar("localhost")}),
//	})
//	override := value.Section(map[string]value.Value{
//	    "server": value.Section(map[string]value.Value{"port": value.Scalar("9000")}),
//	})
//	merged := value.Merge(base, override) // {server: {host: localhost, port: 9000}}
//
// Sequences are replaced, never concatenated.
package value
