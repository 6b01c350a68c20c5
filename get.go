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
	"time"

	"github.com/spf13/cast"

	"rivaas.dev/structcfg/value"
)

// Lookup returns the subtree at a dot-separated path of the current tree.
// A key containing a literal dot is matched before the path is split, and
// every segment is matched case-insensitively.
func (c *Config) Lookup(path string) (value.Value, bool) {
	if c == nil || path == "" {
		return value.Value{}, false
	}

	tree := c.Tree()
	if v, ok := tree.Lookup(path, true); ok {
		return v, true
	}
	return tree.Path(path, true)
}

// Get returns the value at key as plain Go data: a string for a scalar,
// a []any for a sequence, a map[string]any for a section. It returns nil
// if the key is missing or null.
func (c *Config) Get(key string) any {
	v, ok := c.Lookup(key)
	if !ok {
		return nil
	}
	return value.ToAny(v)
}

// String returns the value associated with the given key as a string.
// If the value is not found or cannot be converted to a string, an empty string is returned.
//
// Example:
//
//	host := cfg.String("server.host")
func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

// Int returns the value associated with the given key as an int.
// If the value is not found or cannot be converted to an int, 0 is returned.
func (c *Config) Int(key string) int {
	return cast.ToInt(c.Get(key))
}

// Int64 returns the value associated with the given key as an int64.
func (c *Config) Int64(key string) int64 {
	return cast.ToInt64(c.Get(key))
}

// Float64 returns the value associated with the given key as a float64.
func (c *Config) Float64(key string) float64 {
	return cast.ToFloat64(c.Get(key))
}

// Bool returns the value associated with the given key as a boolean.
// If the value is not found or cannot be converted to a boolean, false is returned.
func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// Duration returns the value associated with the given key as a time.Duration.
//
// Example:
//
//	timeout := cfg.Duration("timeout")
func (c *Config) Duration(key string) time.Duration {
	return cast.ToDuration(c.Get(key))
}

// Time returns the value associated with the given key as a time.Time.
func (c *Config) Time(key string) time.Time {
	return cast.ToTime(c.Get(key))
}

// StringSlice returns the value associated with the given key as a slice of strings.
// If the value is not found or cannot be converted, an empty slice is returned.
func (c *Config) StringSlice(key string) []string {
	s := cast.ToStringSlice(c.Get(key))
	if s == nil {
		return []string{}
	}
	return s
}

// IntSlice returns the value associated with the given key as a slice of integers.
func (c *Config) IntSlice(key string) []int {
	s := cast.ToIntSlice(c.Get(key))
	if s == nil {
		return []int{}
	}
	return s
}

// StringMap returns the value associated with the given key as a map[string]any.
// If the value is not found or is not a section, an empty map is returned.
func (c *Config) StringMap(key string) map[string]any {
	return cast.ToStringMap(c.Get(key))
}

// StringOr returns the value associated with the given key as a string, or the default value if not found.
//
// Example:
//
//	host := cfg.StringOr("server.host", "localhost")
func (c *Config) StringOr(key, defaultVal string) string {
	return GetOr(c, key, defaultVal)
}

// IntOr returns the value associated with the given key as an int, or the default value if not found.
func (c *Config) IntOr(key string, defaultVal int) int {
	return GetOr(c, key, defaultVal)
}

// BoolOr returns the value associated with the given key as a bool, or the default value if not found.
func (c *Config) BoolOr(key string, defaultVal bool) bool {
	return GetOr(c, key, defaultVal)
}

// DurationOr returns the value associated with the given key as a time.Duration, or the default value if not found.
func (c *Config) DurationOr(key string, defaultVal time.Duration) time.Duration {
	return GetOr(c, key, defaultVal)
}

// Get returns the value associated with the given key as type T.
// If the key is not found or cannot be converted to type T, it returns the zero value of T.
//
// Example:
//
//	port := structcfg.Get[int](cfg, "server.port")
//	timeout := structcfg.Get[time.Duration](cfg, "timeout")
func Get[T any](c *Config, key string) T {
	var zero T
	result, err := GetE[T](c, key)
	if err != nil {
		return zero
	}
	return result
}

// GetOr returns the value associated with the given key as type T.
// If the key is not found or cannot be converted to type T, it returns the provided default value.
// The type T is inferred from the default value.
//
// Example:
//
//	port := structcfg.GetOr(cfg, "server.port", 8080)
//	host := structcfg.GetOr(cfg, "server.host", "localhost")
func GetOr[T any](c *Config, key string, defaultVal T) T {
	result, err := GetE[T](c, key)
	if err != nil {
		return defaultVal
	}
	return result
}

// GetE returns the value associated with the given key as type T, with error handling.
// If the key is not found or the value cannot be converted to type T, it returns an error.
//
// Example:
//
//	port, err := structcfg.GetE[int](cfg, "server.port")
//	if err != nil {
//	    return fmt.Errorf("failed to get port: %w", err)
//	}
func GetE[T any](c *Config, key string) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("config instance is nil")
	}

	val := c.Get(key)
	if val == nil {
		return zero, fmt.Errorf("key %q not found", key)
	}

	if result, ok := val.(T); ok {
		return result, nil
	}

	result, err := convertToType[T](val)
	if err != nil {
		return zero, fmt.Errorf("cannot convert value at key %q to type %T: %w", key, zero, err)
	}
	return result, nil
}

// convertToType converts a tree value to T with cast. Only the common
// scalar, slice and map types are handled.
func convertToType[T any](val any) (T, error) {
	var zero T
	var (
		result any
		err    error
	)

	switch any(zero).(type) {
	case string:
		result, err = cast.ToStringE(val)
	case int:
		result, err = cast.ToIntE(val)
	case int64:
		result, err = cast.ToInt64E(val)
	case int32:
		result, err = cast.ToInt32E(val)
	case int16:
		result, err = cast.ToInt16E(val)
	case int8:
		result, err = cast.ToInt8E(val)
	case uint:
		result, err = cast.ToUintE(val)
	case uint64:
		result, err = cast.ToUint64E(val)
	case uint32:
		result, err = cast.ToUint32E(val)
	case uint16:
		result, err = cast.ToUint16E(val)
	case uint8:
		result, err = cast.ToUint8E(val)
	case float64:
		result, err = cast.ToFloat64E(val)
	case float32:
		result, err = cast.ToFloat32E(val)
	case bool:
		result, err = cast.ToBoolE(val)
	case []string:
		result, err = cast.ToStringSliceE(val)
	case []int:
		result, err = cast.ToIntSliceE(val)
	case map[string]any:
		result, err = cast.ToStringMapE(val)
	case map[string]string:
		result, err = cast.ToStringMapStringE(val)
	case time.Duration:
		result, err = cast.ToDurationE(val)
	case time.Time:
		result, err = cast.ToTimeE(val)
	default:
		return zero, fmt.Errorf("unsupported type %T", zero)
	}
	if err != nil {
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type %T", result)
	}
	return typed, nil
}
