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
	"errors"
	"testing"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

// fuzzContent loads input as a content source of type t and checks that
// failures come back wrapped, never as a panic.
func fuzzContent(t *testing.T, input []byte, codecType codec.Type) {
	cfg, err := New(WithContent(input, codecType), WithEnvProvider(MapEnv{}), WithArgProvider(ArgMap{}))
	if err != nil {
		t.Fatal(err)
	}

	err = cfg.Load(t.Context())
	if err != nil {
		var cfgErr *Error
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected *Error, got %T: %v", err, err)
		}
		return
	}
	if !cfg.Tree().IsSection() {
		t.Errorf("merged root is %s, want section", cfg.Tree().Kind())
	}
}

func FuzzContentJSON(f *testing.F) {
	f.Add([]byte(`{"foo": "bar"}`))
	f.Add([]byte(`{"nested": {"key": "value"}}`))
	f.Add([]byte(`{"array": [1, 2, 3]}`))
	f.Add([]byte(`{"bool": true, "number": 1e400}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(``))

	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzContent(t, input, codec.TypeJSON)
	})
}

func FuzzContentYAML(f *testing.F) {
	f.Add([]byte("foo: bar"))
	f.Add([]byte("nested:\n  key: value"))
	f.Add([]byte("array:\n  - 1\n  - 2\n  - 3"))
	f.Add([]byte("anchors: &a {x: 1}\ncopy: *a"))
	f.Add([]byte("- not a section"))

	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzContent(t, input, codec.TypeYAML)
	})
}

func FuzzContentTOML(f *testing.F) {
	f.Add([]byte(`foo = "bar"`))
	f.Add([]byte("[nested]\nkey = \"value\""))
	f.Add([]byte("[[servers]]\nport = 1\n[[servers]]\nport = 2"))
	f.Add([]byte("when = 1979-05-27T07:32:00Z"))

	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzContent(t, input, codec.TypeTOML)
	})
}

func FuzzContentEnv(f *testing.F) {
	f.Add([]byte("FOO=bar\nexport DB__HOST=\"local\\nhost\""))
	f.Add([]byte("# comment\nA='quoted'"))
	f.Add([]byte("A__B=1\nA=2"))

	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzContent(t, input, codec.TypeEnvVar)
	})
}

// FuzzResolveScalar feeds arbitrary scalars to every converter kind; a
// failure must always be a type mismatch naming the field.
func FuzzResolveScalar(f *testing.F) {
	f.Add("8080")
	f.Add("-1")
	f.Add("1e3")
	f.Add("true")
	f.Add("a,b")
	f.Add("")

	type target struct {
		Port  uint16
		Ratio float64
		On    bool
		Tags  []int
	}
	s := MustSchema(
		Field("port", func(c *target) *uint16 { return &c.Port }, Uint16()).Optional(),
		Field("ratio", func(c *target) *float64 { return &c.Ratio }, Float64()).Optional(),
		Field("on", func(c *target) *bool { return &c.On }, Bool()).Optional(),
		Field("tags", func(c *target) *[]int { return &c.Tags }, SliceOf(Int())).Optional(),
	)

	f.Fuzz(func(t *testing.T, input string) {
		for _, key := range []string{"port", "ratio", "on", "tags"} {
			tree := value.Section(map[string]value.Value{key: value.Scalar(input)})
			_, err := s.Convert(tree)
			if err != nil && !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("field %s: unexpected error %v", key, err)
			}
		}
	})
}
