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
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/structcfg/value"
)

// mockSource is a test implementation of the Source interface.
type mockSource struct {
	mu    sync.Mutex
	tree  value.Value
	err   error
	loads int
}

// Load implements the Source interface for testing.
func (m *mockSource) Load(_ context.Context) (value.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.tree, m.err
}

// MockDumper is a test implementation of the Dumper interface.
type MockDumper struct {
	mu     sync.Mutex
	called bool
	tree   value.Value
	err    error
}

// Dump implements the Dumper interface for testing.
func (m *MockDumper) Dump(_ context.Context, tree value.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.called = true
	m.tree = tree
	return m.err
}

// Called reports whether Dump was called.
func (m *MockDumper) Called() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

// Tree returns the tree passed to the last Dump.
func (m *MockDumper) Tree() value.Value {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree
}

// TestSource creates a mock source from plain Go data, as a decoder would
// produce it. It panics if conf holds a type [value.FromAny] rejects.
func TestSource(conf map[string]any) Source {
	tree, err := value.FromAny(conf)
	if err != nil {
		panic(err)
	}
	return &mockSource{tree: tree}
}

// TestSourceValue creates a mock source that returns tree.
func TestSourceValue(tree value.Value) Source {
	return &mockSource{tree: tree}
}

// TestSourceWithError creates a mock source that returns an error on Load.
func TestSourceWithError(err error) Source {
	return &mockSource{err: err}
}

// TestDumper creates a mock dumper for testing.
func TestDumper() *MockDumper {
	return &MockDumper{}
}

// TestDumperWithError creates a mock dumper that returns an error on Dump.
func TestDumperWithError(err error) *MockDumper {
	return &MockDumper{err: err}
}

// TestConfig creates a new Config instance with the given options for testing.
// The process environment and arguments are replaced with empty providers
// so tests do not depend on how they are run. It fails the test if
// creation fails.
func TestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{WithEnvProvider(MapEnv{}), WithArgProvider(ArgMap{})}
	cfg, err := New(append(base, opts...)...)
	require.NoError(t, err, "failed to create test config")
	return cfg
}

// TestConfigLoaded creates and loads a Config instance with the given configuration.
func TestConfigLoaded(t *testing.T, conf map[string]any) *Config {
	t.Helper()
	cfg := TestConfig(t, WithSource(TestSource(conf)))
	require.NoError(t, cfg.Load(t.Context()), "failed to load test config")
	return cfg
}

// TestFile writes content to a file called name in a temporary directory
// and returns its path. The file is removed when the test completes.
func TestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(filePath, content, 0o600)
	require.NoError(t, err, "failed to create test file %s", name)
	return filePath
}

// TestYAMLFile creates a temporary YAML file with the given content.
func TestYAMLFile(t *testing.T, content []byte) string {
	t.Helper()
	return TestFile(t, "config.yaml", content)
}

// TestJSONFile creates a temporary JSON file with the given content.
func TestJSONFile(t *testing.T, content []byte) string {
	t.Helper()
	return TestFile(t, "config.json", content)
}

// TestTOMLFile creates a temporary TOML file with the given content.
func TestTOMLFile(t *testing.T, content []byte) string {
	t.Helper()
	return TestFile(t, "config.toml", content)
}

// TestConfigFromFile creates a Config instance loaded from a temporary
// file; the format follows the extension of name.
func TestConfigFromFile(t *testing.T, name string, content []byte) *Config {
	t.Helper()
	cfg := TestConfig(t, WithFile(TestFile(t, name, content)))
	require.NoError(t, cfg.Load(t.Context()), "failed to load config from %s", name)
	return cfg
}

// AssertConfigValue asserts that a configuration value matches the expected value.
// Scalars compare as strings, since that is how the tree stores them.
func AssertConfigValue(t *testing.T, cfg *Config, key string, expected any) {
	t.Helper()
	actual := cfg.Get(key)
	require.Equal(t, expected, actual, "config value mismatch for key %q", key)
}

// AssertConfigString asserts that a string configuration value matches the expected value.
func AssertConfigString(t *testing.T, cfg *Config, key, expected string) {
	t.Helper()
	actual := cfg.String(key)
	require.Equal(t, expected, actual, "config string mismatch for key %q", key)
}

// AssertConfigInt asserts that an integer configuration value matches the expected value.
func AssertConfigInt(t *testing.T, cfg *Config, key string, expected int) {
	t.Helper()
	actual := cfg.Int(key)
	require.Equal(t, expected, actual, "config int mismatch for key %q", key)
}

// AssertConfigBool asserts that a boolean configuration value matches the expected value.
func AssertConfigBool(t *testing.T, cfg *Config, key string, expected bool) {
	t.Helper()
	actual := cfg.Bool(key)
	require.Equal(t, expected, actual, "config bool mismatch for key %q", key)
}

// AssertTree asserts that the merged tree equals expected.
func AssertTree(t *testing.T, cfg *Config, expected value.Value) {
	t.Helper()
	actual := cfg.Tree()
	require.True(t, value.Equal(expected, actual), "tree mismatch: want %s, got %s", expected, actual)
}
