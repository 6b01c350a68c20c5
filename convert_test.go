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

//go:build !integration

package structcfg

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/structcfg/value"
)

func TestScalarConverters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		convert func(value.Value) (any, error)
		input   string
		want    any
		wantErr string
	}{
		{name: "string", convert: anyOf(String()), input: "hello", want: "hello"},
		{name: "empty string", convert: anyOf(String()), input: "", want: ""},
		{name: "bool true", convert: anyOf(Bool()), input: "true", want: true},
		{name: "bool short form", convert: anyOf(Bool()), input: "0", want: false},
		{name: "bool invalid", convert: anyOf(Bool()), input: "yes", wantErr: "expected bool, found 'yes'"},
		{name: "int", convert: anyOf(Int()), input: "-42", want: -42},
		{name: "int rejects float", convert: anyOf(Int()), input: "4.2", wantErr: "expected int, found '4.2'"},
		{name: "int8 max", convert: anyOf(Int8()), input: "127", want: int8(127)},
		{name: "int8 overflow", convert: anyOf(Int8()), input: "128", wantErr: "expected int8, found '128'"},
		{name: "int16", convert: anyOf(Int16()), input: "-32768", want: int16(math.MinInt16)},
		{name: "int32", convert: anyOf(Int32()), input: "2147483647", want: int32(math.MaxInt32)},
		{name: "int64", convert: anyOf(Int64()), input: "-9223372036854775808", want: int64(math.MinInt64)},
		{name: "uint", convert: anyOf(Uint()), input: "7", want: uint(7)},
		{name: "uint rejects negative", convert: anyOf(Uint()), input: "-1", wantErr: "expected uint, found '-1'"},
		{name: "uint8 overflow", convert: anyOf(Uint8()), input: "256", wantErr: "expected uint8, found '256'"},
		{name: "uint16 port", convert: anyOf(Uint16()), input: "8080", want: uint16(8080)},
		{name: "uint16 overflow", convert: anyOf(Uint16()), input: "65536", wantErr: "expected uint16, found '65536'"},
		{name: "uint32", convert: anyOf(Uint32()), input: "4294967295", want: uint32(math.MaxUint32)},
		{name: "uint64", convert: anyOf(Uint64()), input: "18446744073709551615", want: uint64(math.MaxUint64)},
		{name: "float32", convert: anyOf(Float32()), input: "1.5", want: float32(1.5)},
		{name: "float32 out of range", convert: anyOf(Float32()), input: "1e40", wantErr: "expected float32, found '1e40'"},
		{name: "float64 exponent", convert: anyOf(Float64()), input: "1e3", want: 1000.0},
		{name: "float64 invalid", convert: anyOf(Float64()), input: "abc", wantErr: "expected float64, found 'abc'"},
		{name: "rune ascii", convert: anyOf(Rune()), input: "x", want: 'x'},
		{name: "rune multibyte", convert: anyOf(Rune()), input: "é", want: 'é'},
		{name: "rune too long", convert: anyOf(Rune()), input: "ab", wantErr: "expected rune, found 'ab'"},
		{name: "rune empty", convert: anyOf(Rune()), input: "", wantErr: "expected rune, found ''"},
		{name: "duration", convert: anyOf(Duration()), input: "1m30s", want: 90 * time.Second},
		{name: "duration invalid", convert: anyOf(Duration()), input: "soon", wantErr: "expected time.Duration, found 'soon'"},
		{name: "time", convert: anyOf(Time()), input: "2023-10-01T12:00:00Z", want: time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.convert(value.Scalar(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTypeMismatch)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)), "got %v", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func anyOf[T any](c Converter[T]) func(value.Value) (any, error) {
	return func(v value.Value) (any, error) {
		return c.Convert(v)
	}
}

func TestScalarConverterRejectsNonScalars(t *testing.T) {
	t.Parallel()

	for _, v := range []value.Value{value.Null(), value.Sequence(value.Scalar("1")), value.EmptySection()} {
		_, err := Int().Convert(v)
		var tm *TypeMismatchError
		require.ErrorAs(t, err, &tm, "input %s", v)
		assert.Equal(t, "int", tm.Expected)
		assert.False(t, tm.HasFound)
	}
}

func TestSliceOf(t *testing.T) {
	t.Parallel()

	conv := SliceOf(Int())

	tests := []struct {
		name     string
		input    value.Value
		want     []int
		wantPath string
	}{
		{name: "sequence", input: value.Sequence(value.Scalar("1"), value.Scalar("2")), want: []int{1, 2}},
		{name: "empty sequence", input: value.Sequence(), want: []int{}},
		{name: "comma separated scalar", input: value.Scalar("1, 2,3"), want: []int{1, 2, 3}},
		{name: "empty scalar", input: value.Scalar(""), want: []int{}},
		{name: "null", input: value.Null(), want: nil},
		{name: "bad element", input: value.Sequence(value.Scalar("1"), value.Scalar("x")), wantPath: "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.Convert(tt.input)
			if tt.wantPath != "" {
				var nested *NestedError
				require.ErrorAs(t, err, &nested)
				assert.Equal(t, tt.wantPath, nested.Path())
				assert.ErrorIs(t, err, ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := conv.Convert(value.EmptySection())
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMapOf(t *testing.T) {
	t.Parallel()

	conv := MapOf(Uint16())

	got, err := conv.Convert(value.Section(map[string]value.Value{
		"http":  value.Scalar("80"),
		"https": value.Scalar("443"),
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]uint16{"http": 80, "https": 443}, got)

	_, err = conv.Convert(value.Section(map[string]value.Value{"http": value.Scalar("-1")}))
	var nested *NestedError
	require.ErrorAs(t, err, &nested)
	assert.Equal(t, "http", nested.Section)
	assert.Equal(t, "Nested configuration error in http: Type mismatch in field 'http': expected uint16, found '-1'", err.Error())

	_, err = conv.Convert(value.Scalar("x"))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	none, err := conv.Convert(value.Null())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestOptionalOf(t *testing.T) {
	t.Parallel()

	conv := OptionalOf(String())

	none, err := conv.Convert(value.Null())
	require.NoError(t, err)
	assert.Nil(t, none)

	some, err := conv.Convert(value.Scalar("hello"))
	require.NoError(t, err)
	require.NotNil(t, some)
	assert.Equal(t, "hello", *some)

	_, err = conv.Convert(value.Sequence(value.Scalar("a")))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestOptionalOfSwallowsOnlyAbsence(t *testing.T) {
	t.Parallel()

	missing := ConverterFunc[int](func(value.Value) (int, error) {
		return 0, &MissingFieldError{Key: "inner"}
	})
	got, err := OptionalOf[int](missing).Convert(value.EmptySection())
	require.NoError(t, err)
	assert.Nil(t, got)

	deep := ConverterFunc[int](func(value.Value) (int, error) {
		return 0, &NestedError{Section: "a", Err: &MissingFieldError{Key: "inner"}}
	})
	_, err = OptionalOf[int](deep).Convert(value.EmptySection())
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestTagField(t *testing.T) {
	t.Parallel()

	bare := kindMismatch("int")
	tagged := tagField(bare, "port")
	assert.Equal(t, "Type mismatch in field 'port', expected int", tagged.Error())
	assert.Empty(t, bare.Field, "the original error is not modified")

	already := &TypeMismatchError{Field: "inner", Expected: "int"}
	assert.Same(t, already, tagField(already, "outer"))

	other := &MissingFieldError{Key: "x"}
	assert.Same(t, other, tagField(other, "outer"))
}
