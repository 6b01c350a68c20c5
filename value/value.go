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
	"sort"
	"strings"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	// KindNull is an explicit null leaf or an empty document.
	KindNull Kind = iota
	// KindScalar is a leaf stored in its canonical string form.
	KindScalar
	// KindSection is a mapping of unique string keys to values.
	KindSection
	// KindSequence is an ordered list of values.
	KindSequence
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSection:
		return "section"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is one node of a configuration tree.
//
// The zero Value is Null. Values are immutable: constructors copy their
// inputs and accessors return copies, so a tree can be shared freely
// between goroutines.
type Value struct {
	kind    Kind
	scalar  string
	section map[string]Value
	items   []Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Scalar returns a leaf holding s.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Section returns a section holding a copy of entries.
// A nil map yields an empty section.
func Section(entries map[string]Value) Value {
	m := make(map[string]Value, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Value{kind: KindSection, section: m}
}

// EmptySection returns a section with no keys.
func EmptySection() Value {
	return Value{kind: KindSection, section: map[string]Value{}}
}

// Sequence returns a sequence holding a copy of items.
func Sequence(items ...Value) Value {
	s := make([]Value, len(items))
	copy(s, items)
	return Value{kind: KindSequence, items: s}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsSection reports whether v is a section.
func (v Value) IsSection() bool {
	return v.kind == KindSection
}

// Scalar returns the string form of a scalar. ok is false for other kinds.
func (v Value) Scalar() (s string, ok bool) {
	if v.kind != KindScalar {
		return "", false
	}
	return v.scalar, true
}

// Len returns the number of keys of a section or items of a sequence.
func (v Value) Len() int {
	switch v.kind {
	case KindSection:
		return len(v.section)
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Get returns the value stored under key in a section, matching exactly.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindSection {
		return Value{}, false
	}
	child, ok := v.section[key]
	return child, ok
}

// Lookup returns the value stored under key in a section.
//
// When insensitive is true and there is no exact match, keys are compared
// with [strings.EqualFold]. If several keys differ only by case, the
// lexicographically smallest one wins, so the result never depends on map
// iteration order.
func (v Value) Lookup(key string, insensitive bool) (Value, bool) {
	if child, ok := v.Get(key); ok || !insensitive {
		return child, ok
	}

	match, found := "", false
	for k := range v.section {
		if !strings.EqualFold(k, key) {
			continue
		}
		if !found || k < match {
			match, found = k, true
		}
	}
	if !found {
		return Value{}, false
	}
	return v.section[match], true
}

// Keys returns the keys of a section in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindSection {
		return nil
	}
	keys := make([]string, 0, len(v.section))
	for k := range v.section {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the entries of a section.
func (v Value) Entries() map[string]Value {
	if v.kind != KindSection {
		return nil
	}
	m := make(map[string]Value, len(v.section))
	for k, child := range v.section {
		m[k] = child
	}
	return m
}

// Index returns the i-th item of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Items returns a copy of the items of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	s := make([]Value, len(v.items))
	copy(s, v.items)
	return s
}

// Path walks a dot-separated path of section keys, matching each segment
// with [Value.Lookup].
func (v Value) Path(path string, insensitive bool) (Value, bool) {
	if path == "" {
		return v, true
	}
	current := v
	for _, segment := range strings.Split(path, ".") {
		next, ok := current.Lookup(segment, insensitive)
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}

// Equal reports whether a and b are deeply equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindScalar:
		return a.scalar == b.scalar
	case KindSection:
		if len(a.section) != len(b.section) {
			return false
		}
		for k, av := range a.section {
			bv, ok := b.section[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders v for error messages: scalars verbatim, sequences as
// [a, b], sections as {k: v} with sorted keys and null as "null".
func (v Value) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v Value) render(b *strings.Builder) {
	switch v.kind {
	case KindScalar:
		b.WriteString(v.scalar)
	case KindSequence:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.render(b)
		}
		b.WriteByte(']')
	case KindSection:
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			v.section[k].render(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
}
