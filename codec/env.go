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

package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rivaas.dev/structcfg/value"
)

// TypeEnvVar is a constant representing the type of an environment variable codec.
const TypeEnvVar Type = "env_var"

// KeySeparator splits an environment variable name into nested keys, so
// DATABASE__HOST addresses database.host while HTTP_PORT stays http_port.
const KeySeparator = "__"

func init() {
	Register(EnvVarCodec{})
}

// EnvVarCodec decodes dotenv-style KEY=value lines. Keys are lower-cased
// and split on [KeySeparator]; blank lines, lines starting with '#' and
// lines without '=' are skipped. An optional "export " prefix is allowed
// and values may be single or double quoted.
type EnvVarCodec struct{}

// Type implements [Format].
func (EnvVarCodec) Type() Type { return TypeEnvVar }

// Extensions implements [Format].
func (EnvVarCodec) Extensions() []string { return []string{".env"} }

// Encode is not supported: environment variables are read-only input.
func (EnvVarCodec) Encode(_ value.Value) ([]byte, error) {
	return nil, errors.New("encoding to environment variables is not supported")
}

// Decode parses data into a section.
func (EnvVarCodec) Decode(data []byte) (value.Value, error) {
	conf := make(map[string]any)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimPrefix(text, "export ")

		key, raw, ok := strings.Cut(text, "=")
		if !ok {
			continue
		}
		val, err := unquote(strings.TrimSpace(raw))
		if err != nil {
			return value.Value{}, parseError(TypeEnvVar, fmt.Errorf("line %d: %w", line, err))
		}

		SetPath(conf, SplitKey(key), val)
	}
	if err := scanner.Err(); err != nil {
		return value.Value{}, parseError(TypeEnvVar, err)
	}

	return value.FromAny(conf)
}

// SplitKey lower-cases an environment variable name and splits it on
// [KeySeparator], dropping empty parts.
func SplitKey(name string) []string {
	raw := strings.Split(strings.ToLower(strings.TrimSpace(name)), KeySeparator)
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

// SetPath stores val in conf under the nested path, creating intermediate
// maps. A scalar in the way of a deeper key is replaced by a map.
func SetPath(conf map[string]any, path []string, val any) {
	if len(path) == 0 {
		return
	}

	current := conf
	for _, part := range path[:len(path)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[path[len(path)-1]] = val
}

func unquote(s string) (string, error) {
	if len(s) < 2 {
		return s, nil
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		return strconv.Unquote(s)
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1], nil
	}

	return s, nil
}
