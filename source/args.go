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

package source

import (
	"context"
	"strings"

	"rivaas.dev/structcfg/value"
)

// ParseArgs collects "--key=value" tokens into a map. Tokens of any other
// shape are ignored, a bare "--" ends scanning and the last occurrence of a
// key wins. The value may be empty and may itself contain '='.
func ParseArgs(args []string) map[string]string {
	parsed := make(map[string]string)
	for _, arg := range args {
		if arg == "--" {
			break
		}
		rest, ok := strings.CutPrefix(arg, "--")
		if !ok {
			continue
		}
		key, val, ok := strings.Cut(rest, "=")
		if !ok || key == "" {
			continue
		}
		parsed[key] = val
	}

	return parsed
}

// Args is a configuration source built from command-line tokens of the
// form "--key=value". It loads a flat section keyed by each flag's long
// name: "--log.level=debug" sets the literal key "log.level".
type Args struct {
	args []string
}

// NewArgs creates an Args source over args, typically os.Args[1:].
func NewArgs(args []string) *Args {
	return &Args{args: append([]string(nil), args...)}
}

// Load parses the tokens into a flat section of scalars.
func (a *Args) Load(context.Context) (value.Value, error) {
	parsed := ParseArgs(a.args)
	section := make(map[string]value.Value, len(parsed))
	for key, val := range parsed {
		section[key] = value.Scalar(val)
	}

	return value.Section(section), nil
}
