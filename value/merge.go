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

// Merge deep-merges incoming over base and returns a new tree.
//
// Two sections merge key by key: keys present on one side pass through, and
// keys present on both sides merge recursively. Every other pairing,
// including a section meeting a scalar or sequence, resolves to incoming.
// Sequences are replaced wholesale, never concatenated or zipped.
//
// Neither input is modified.
func Merge(base, incoming Value) Value {
	if base.kind != KindSection || incoming.kind != KindSection {
		return incoming
	}

	merged := make(map[string]Value, len(base.section)+len(incoming.section))
	for k, v := range base.section {
		merged[k] = v
	}
	for k, in := range incoming.section {
		if existing, ok := merged[k]; ok {
			merged[k] = Merge(existing, in)
			continue
		}
		merged[k] = in
	}

	return Value{kind: KindSection, section: merged}
}
