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

	"rivaas.dev/structcfg/value"
)

// Descriptor is the static metadata that controls how one field is
// resolved.
type Descriptor struct {
	Key             string // key looked up in the section
	CaseInsensitive bool   // match Key ignoring case
	Flag            string // command-line flag consulted first, if set
	Env             string // environment variable consulted second, if set
	HasDefault      bool
	Optional        bool // absence resolves to the zero value
	Nested          bool // the field is a structure with its own schema
}

// SchemaField is one entry of a [Schema] for structure S. It is
// implemented by [*FieldSpec].
type SchemaField[S any] interface {
	Descriptor() Descriptor
	bound() bool
	resolve(dst *S, section value.Value, r *Resolver) error
}

// FieldSpec declares how field T of structure S is resolved. It is built
// with [Field], [Nested] or [NestedPtr] and refined with its chainable
// methods. A FieldSpec must not be changed after it is passed to
// [NewSchema].
type FieldSpec[S, T any] struct {
	desc Descriptor
	bind func(*S) *T
	conv Converter[T]
	def  func() T

	// section resolves a nested structure, found under the key or flat.
	section func(v value.Value, r *Resolver) (T, error)
}

// Field declares a field resolved from key and converted with conv. bind
// returns a pointer to the field inside the structure being built.
//
//	structcfg.Field("port", func(c *Server) *uint16 { return &c.Port }, structcfg.Uint16())
func Field[S, T any](key string, bind func(*S) *T, conv Converter[T]) *FieldSpec[S, T] {
	f := &FieldSpec[S, T]{
		desc: Descriptor{Key: key},
		bind: bind,
		conv: conv,
	}
	if _, ok := any(conv).(optionalConverter); ok {
		f.desc.Optional = true
	}
	return f
}

// Nested declares a structure-typed field resolved with schema. When key
// is absent, the nested fields are also looked for among the enclosing
// section's own keys before any default applies.
func Nested[S, N any](key string, bind func(*S) *N, schema *Schema[N]) *FieldSpec[S, N] {
	f := Field(key, bind, Converter[N](schema))
	f.desc.Nested = true
	f.section = schema.resolveSection
	return f
}

// NestedPtr is [Nested] for an optional structure: the field stays nil
// when neither the key nor the flat layout supplies the structure.
func NestedPtr[S, N any](key string, bind func(*S) **N, schema *Schema[N]) *FieldSpec[S, *N] {
	f := Field(key, bind, OptionalOf[N](schema))
	f.desc.Nested = true
	f.section = func(v value.Value, r *Resolver) (*N, error) {
		if v.IsNull() {
			return nil, nil
		}
		n, err := schema.resolveSection(v, r)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
	return f
}

// Default sets the value used when no source supplies the field. The
// value is used as is, without conversion.
func (f *FieldSpec[S, T]) Default(v T) *FieldSpec[S, T] {
	return f.DefaultFunc(func() T { return v })
}

// DefaultFunc sets a function producing the default value. It is called
// each time the default is needed.
func (f *FieldSpec[S, T]) DefaultFunc(fn func() T) *FieldSpec[S, T] {
	f.def = fn
	f.desc.HasDefault = fn != nil
	return f
}

// Env sets the environment variable that overrides the tree value.
func (f *FieldSpec[S, T]) Env(name string) *FieldSpec[S, T] {
	f.desc.Env = name
	return f
}

// Flag sets the command-line flag that overrides every other source.
func (f *FieldSpec[S, T]) Flag(name string) *FieldSpec[S, T] {
	f.desc.Flag = name
	return f
}

// CaseInsensitive matches the key regardless of case.
func (f *FieldSpec[S, T]) CaseInsensitive() *FieldSpec[S, T] {
	f.desc.CaseInsensitive = true
	return f
}

// Optional lets the field resolve to its zero value when absent.
func (f *FieldSpec[S, T]) Optional() *FieldSpec[S, T] {
	f.desc.Optional = true
	return f
}

// Descriptor returns the field's metadata.
func (f *FieldSpec[S, T]) Descriptor() Descriptor {
	return f.desc
}

func (f *FieldSpec[S, T]) bound() bool {
	return f.bind != nil && f.conv != nil
}

// Schema is the resolution table of structure T: its fields in
// declaration order. A Schema is immutable and safe for concurrent use. It
// is itself a [Converter], so schemas nest at any depth and can describe
// sequence elements.
type Schema[T any] struct {
	fields []SchemaField[T]
}

// NewSchema builds the schema of T from its fields.
//
// Errors:
//   - Returns error for an empty key, a missing bind function or converter
//   - Returns error for a key declared twice
func NewSchema[T any](fields ...SchemaField[T]) (*Schema[T], error) {
	var errs error
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f == nil {
			errs = errors.Join(errs, fmt.Errorf("field %d: nil field", i))
			continue
		}
		key := f.Descriptor().Key
		if key == "" {
			errs = errors.Join(errs, fmt.Errorf("field %d: empty key", i))
			continue
		}
		if !f.bound() {
			errs = errors.Join(errs, fmt.Errorf("field %q: bind function and converter are required", key))
		}
		if _, dup := seen[key]; dup {
			errs = errors.Join(errs, fmt.Errorf("field %q: declared more than once", key))
		}
		seen[key] = struct{}{}
	}
	if errs != nil {
		return nil, errs
	}

	return &Schema[T]{fields: append([]SchemaField[T](nil), fields...)}, nil
}

// MustSchema is like [NewSchema] but panics on error. Use it for
// package-level schema variables.
func MustSchema[T any](fields ...SchemaField[T]) *Schema[T] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(fmt.Sprintf("structcfg: invalid schema: %v", err))
	}
	return s
}

// Descriptors returns the metadata of every field in declaration order.
func (s *Schema[T]) Descriptors() []Descriptor {
	out := make([]Descriptor, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Descriptor()
	}
	return out
}

// Resolve builds a T from root through r. A nil r applies no flag or
// environment overrides. Fields are resolved in declaration order and the
// first failure is returned; no partial T is ever returned.
//
// Errors:
//   - Returns [*TypeMismatchError] for field "root" if root is neither a
//     section nor null
//   - Returns the first field error otherwise
func (s *Schema[T]) Resolve(root value.Value, r *Resolver) (T, error) {
	out, err := s.resolveSection(root, r)
	if err != nil {
		return out, tagField(err, "root")
	}
	return out, nil
}

// Convert implements [Converter] without flag or environment overrides.
func (s *Schema[T]) Convert(v value.Value) (T, error) {
	return s.resolveSection(v, nil)
}

func (s *Schema[T]) resolveSection(v value.Value, r *Resolver) (T, error) {
	var out T
	switch {
	case v.IsNull():
		v = value.EmptySection()
	case !v.IsSection():
		return out, kindMismatch("section")
	}

	for _, f := range s.fields {
		if err := f.resolve(&out, v, r); err != nil {
			var zero T
			return zero, err
		}
	}
	return out, nil
}
