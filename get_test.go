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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccessorConfig(t *testing.T) *Config {
	t.Helper()
	return TestConfigLoaded(t, map[string]any{
		"server": map[string]any{
			"Host": "localhost",
			"port": 8080,
		},
		"debug":      true,
		"rate":       0.5,
		"timeout":    "30s",
		"started_at": "2023-10-01T12:00:00Z",
		"tags":       []any{"a", "b"},
		"ports":      []any{80, 443},
		"labels":     map[string]any{"team": "core"},
		"dotted.key": "literal",
		"empty":      nil,
	})
}

func TestLookupPath(t *testing.T) {
	t.Parallel()

	cfg := testAccessorConfig(t)

	tests := []struct {
		name  string
		path  string
		want  string
		found bool
	}{
		{name: "nested path", path: "server.port", want: "8080", found: true},
		{name: "case-insensitive segment", path: "SERVER.host", want: "localhost", found: true},
		{name: "literal dotted key", path: "dotted.key", want: "literal", found: true},
		{name: "missing", path: "server.missing", found: false},
		{name: "through a scalar", path: "debug.x", found: false},
		{name: "empty path", path: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := cfg.Lookup(tt.path)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	cfg := testAccessorConfig(t)

	assert.Equal(t, "localhost", cfg.String("server.host"))
	assert.Equal(t, 8080, cfg.Int("server.port"))
	assert.Equal(t, int64(8080), cfg.Int64("server.port"))
	assert.InDelta(t, 0.5, cfg.Float64("rate"), 1e-9)
	assert.True(t, cfg.Bool("debug"))
	assert.Equal(t, 30*time.Second, cfg.Duration("timeout"))
	assert.True(t, time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC).Equal(cfg.Time("started_at")))
	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("tags"))
	assert.Equal(t, []int{80, 443}, cfg.IntSlice("ports"))
	assert.Equal(t, map[string]any{"team": "core"}, cfg.StringMap("labels"))
	assert.Equal(t, map[string]any{"Host": "localhost", "port": "8080"}, cfg.Get("server"))

	assert.Empty(t, cfg.String("missing"))
	assert.Zero(t, cfg.Int("missing"))
	assert.Equal(t, []string{}, cfg.StringSlice("missing"))
	assert.Equal(t, []int{}, cfg.IntSlice("missing"))
	assert.Nil(t, cfg.Get("empty"))
}

func TestOrAccessors(t *testing.T) {
	t.Parallel()

	cfg := testAccessorConfig(t)

	assert.Equal(t, "localhost", cfg.StringOr("server.host", "fallback"))
	assert.Equal(t, "fallback", cfg.StringOr("server.name", "fallback"))
	assert.Equal(t, 8080, cfg.IntOr("server.port", 1))
	assert.Equal(t, 1, cfg.IntOr("server.host", 1), "an unconvertible value yields the default")
	assert.True(t, cfg.BoolOr("missing", true))
	assert.Equal(t, time.Minute, cfg.DurationOr("missing", time.Minute))
}

func TestGenericGet(t *testing.T) {
	t.Parallel()

	cfg := testAccessorConfig(t)

	assert.Equal(t, uint16(8080), Get[uint16](cfg, "server.port"))
	assert.Equal(t, 30*time.Second, Get[time.Duration](cfg, "timeout"))
	assert.Zero(t, Get[int](cfg, "missing"))
	assert.Equal(t, "x", GetOr(cfg, "missing", "x"))

	port, err := GetE[int](cfg, "server.port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	_, err = GetE[int](cfg, "missing")
	assert.EqualError(t, err, `key "missing" not found`)

	_, err = GetE[int](cfg, "server.host")
	assert.ErrorContains(t, err, `cannot convert value at key "server.host" to type int`)

	type custom struct{}
	_, err = GetE[custom](cfg, "server.host")
	assert.ErrorContains(t, err, "unsupported type")

	labels, err := GetE[map[string]any](cfg, "labels")
	require.NoError(t, err)
	assert.Equal(t, "core", labels["team"])
}

func TestNilConfigAccessors(t *testing.T) {
	t.Parallel()

	var cfg *Config
	assert.Nil(t, cfg.Get("x"))
	assert.Empty(t, cfg.String("x"))
	assert.Equal(t, 3, GetOr(cfg, "x", 3))

	_, err := GetE[int](cfg, "x")
	assert.EqualError(t, err, "config instance is nil")
}
