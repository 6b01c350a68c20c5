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
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"

	"rivaas.dev/structcfg/value"
)

// Converter turns a tree node into a typed value.
//
// A failed conversion of a scalar returns a [*TypeMismatchError] whose
// Field is empty; the resolver fills in the key of the field being
// resolved. Converters must be safe for concurrent use.
type Converter[T any] interface {
	Convert(v value.Value) (T, error)
}

// ConverterFunc adapts a function to [Converter].
type ConverterFunc[T any] func(v value.Value) (T, error)

// Convert calls f(v).
func (f ConverterFunc[T]) Convert(v value.Value) (T, error) {
	return f(v)
}

// scalar builds a converter that parses the scalar text with parse and
// reports expected as the type name on failure.
func scalar[T any](expected string, parse func(string) (T, error)) Converter[T] {
	return ConverterFunc[T](func(v value.Value) (T, error) {
		var zero T
		s, ok := v.Scalar()
		if !ok {
			return zero, kindMismatch(expected)
		}
		out, err := parse(s)
		if err != nil {
			return zero, mismatch(expected, s)
		}
		return out, nil
	})
}

func parseSigned[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		return T(n), err
	}
}

func parseUnsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		return T(n), err
	}
}

// String accepts any scalar as is.
func String() Converter[string] {
	return scalar("string", func(s string) (string, error) { return s, nil })
}

// Bool accepts the forms understood by [strconv.ParseBool].
func Bool() Converter[bool] {
	return scalar("bool", strconv.ParseBool)
}

// Int parses a base-10 integer that fits in an int.
func Int() Converter[int] { return scalar("int", parseSigned[int](strconv.IntSize)) }

// Int8 parses a base-10 integer that fits in an int8.
func Int8() Converter[int8] { return scalar("int8", parseSigned[int8](8)) }

// Int16 parses a base-10 integer that fits in an int16.
func Int16() Converter[int16] { return scalar("int16", parseSigned[int16](16)) }

// Int32 parses a base-10 integer that fits in an int32.
func Int32() Converter[int32] { return scalar("int32", parseSigned[int32](32)) }

// Int64 parses a base-10 integer that fits in an int64.
func Int64() Converter[int64] { return scalar("int64", parseSigned[int64](64)) }

// Uint parses a base-10 unsigned integer that fits in a uint.
func Uint() Converter[uint] { return scalar("uint", parseUnsigned[uint](strconv.IntSize)) }

// Uint8 parses a base-10 unsigned integer that fits in a uint8.
func Uint8() Converter[uint8] { return scalar("uint8", parseUnsigned[uint8](8)) }

// Uint16 parses a base-10 unsigned integer that fits in a uint16.
func Uint16() Converter[uint16] { return scalar("uint16", parseUnsigned[uint16](16)) }

// Uint32 parses a base-10 unsigned integer that fits in a uint32.
func Uint32() Converter[uint32] { return scalar("uint32", parseUnsigned[uint32](32)) }

// Uint64 parses a base-10 unsigned integer that fits in a uint64.
func Uint64() Converter[uint64] { return scalar("uint64", parseUnsigned[uint64](64)) }

// Float32 parses a decimal or exponent float within float32 range.
func Float32() Converter[float32] {
	return scalar("float32", func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
}

// Float64 parses a decimal or exponent float.
func Float64() Converter[float64] {
	return scalar("float64", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// Rune accepts a scalar holding exactly one character.
func Rune() Converter[rune] {
	return scalar("rune", func(s string) (rune, error) {
		if utf8.RuneCountInString(s) != 1 {
			return 0, strconv.ErrSyntax
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	})
}

// Duration parses "1h30m" style durations. A bare integer is taken as
// nanoseconds.
func Duration() Converter[time.Duration] {
	return scalar("time.Duration", func(s string) (time.Duration, error) {
		return cast.ToDurationE(s)
	})
}

// Time parses RFC 3339 and the other layouts [cast.ToTimeE] understands.
func Time() Converter[time.Time] {
	return scalar("time.Time", func(s string) (time.Time, error) {
		return cast.ToTimeE(s)
	})
}

// SliceOf converts a sequence element by element. A scalar is split on
// commas first, so "a, b" from an environment variable or flag becomes
// two elements and "" becomes an empty slice. Null converts to nil.
//
// An element failure is returned as a [*NestedError] whose Section is the
// element index, e.g. "[2]".
func SliceOf[T any](elem Converter[T]) Converter[[]T] {
	return ConverterFunc[[]T](func(v value.Value) ([]T, error) {
		var items []value.Value
		switch v.Kind() {
		case value.KindNull:
			return nil, nil
		case value.KindSequence:
			items = v.Items()
		case value.KindScalar:
			s, _ := v.Scalar()
			if s != "" {
				for _, part := range strings.Split(s, ",") {
					items = append(items, value.Scalar(strings.TrimSpace(part)))
				}
			}
		default:
			return nil, kindMismatch("sequence")
		}

		out := make([]T, 0, len(items))
		for i, item := range items {
			got, err := elem.Convert(item)
			if err != nil {
				idx := fmt.Sprintf("[%d]", i)
				return nil, &NestedError{Section: idx, Err: tagField(err, idx)}
			}
			out = append(out, got)
		}
		return out, nil
	})
}

// MapOf converts every entry of a section. An entry failure is returned
// as a [*NestedError] whose Section is the entry key.
func MapOf[T any](elem Converter[T]) Converter[map[string]T] {
	return ConverterFunc[map[string]T](func(v value.Value) (map[string]T, error) {
		if v.IsNull() {
			return nil, nil
		}
		if !v.IsSection() {
			return nil, kindMismatch("section")
		}

		keys := v.Keys()
		out := make(map[string]T, len(keys))
		for _, k := range keys {
			child, _ := v.Get(k)
			got, err := elem.Convert(child)
			if err != nil {
				return nil, &NestedError{Section: k, Err: tagField(err, k)}
			}
			out[k] = got
		}
		return out, nil
	})
}

// optionalConverter is implemented by converters that make a field
// tolerant of absence.
type optionalConverter interface {
	optional()
}

type optionalOf[T any] struct {
	inner Converter[T]
}

// OptionalOf wraps c so that absence converts to nil instead of failing.
// Null converts to nil, and so does a [*MissingFieldError] returned by c
// itself, which happens when a nested structure lacks a required field.
// Every other error, including a type mismatch on a present value,
// propagates unchanged.
//
// A field declared with an OptionalOf converter is optional.
func OptionalOf[T any](c Converter[T]) Converter[*T] {
	return optionalOf[T]{inner: c}
}

func (o optionalOf[T]) Convert(v value.Value) (*T, error) {
	if v.IsNull() {
		return nil, nil
	}
	got, err := o.inner.Convert(v)
	if err != nil {
		if isAbsence(err) {
			return nil, nil
		}
		return nil, err
	}
	return &got, nil
}

func (optionalOf[T]) optional() {}

// tagField names the field on a bare type mismatch. Any other error is
// returned as is.
func tagField(err error, key string) error {
	tm, ok := err.(*TypeMismatchError)
	if !ok || tm.Field != "" {
		return err
	}
	tagged := *tm
	tagged.Field = key
	return &tagged
}
