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
	"os"
	"strings"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

// OSEnvVar represents a configuration source that loads data from environment variables.
// It filters environment variables by prefix and creates nested configuration structures
// from names separated by [codec.KeySeparator].
//
// For example, with prefix "APP_", the environment variable "APP_SERVER__PORT" becomes
// the configuration key "server.port" and "APP_LOG_LEVEL" becomes "log_level".
type OSEnvVar struct {
	prefix string
}

// NewOSEnvVar creates a new OSEnvVar source with the specified prefix.
// Only environment variables starting with this prefix will be loaded.
// The prefix is stripped from variable names before processing.
func NewOSEnvVar(prefix string) *OSEnvVar {
	return &OSEnvVar{prefix: prefix}
}

// Load reads the matching environment variables. Names are lower-cased;
// values are kept verbatim.
//
// Example:
//
//	APP_SERVER__PORT=8080      -> server.port = "8080"
//	APP_SERVER__HOST=localhost -> server.host = "localhost"
//	APP_DEBUG=true             -> debug = "true"
func (e *OSEnvVar) Load(context.Context) (value.Value, error) {
	conf := make(map[string]any)
	for _, env := range os.Environ() {
		name, val, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		name, ok = strings.CutPrefix(name, e.prefix)
		if !ok {
			continue
		}
		codec.SetPath(conf, codec.SplitKey(name), val)
	}

	return value.FromAny(conf)
}
