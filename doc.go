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

// Package structcfg resolves typed configuration structs from layered
// sources.
//
// Every source (a file, raw content, command-line arguments, environment
// variables, a Consul key) is normalized into a [value.Value] tree. The
// trees are deep-merged by priority, and a [Schema] then builds a struct
// from the merged tree, one field at a time, consulting per-field
// overrides before the tree itself.
//
// # Quick Start
//
// Describe the struct:
//
//	type Server struct {
//	    Host string
//	    Port uint16
//	}
//
//	var serverSchema = structcfg.MustSchema(
//	    structcfg.Field("host", func(s *Server) *string { return &s.Host }, structcfg.String()).
//	        Default("localhost"),
//	    structcfg.Field("port", func(s *Server) *uint16 { return &s.Port }, structcfg.Uint16()).
//	        Default(8080).
//	        Env("APP_PORT").
//	        Flag("port"),
//	)
//
// Load it:
//
//	server, err := structcfg.Load(ctx, serverSchema,
//	    structcfg.WithFile("config.toml"),
//	    structcfg.WithFile("local.yaml", structcfg.Priority(1)),
//	)
//
// # Priorities
//
// Each source has a priority from 0 to 255, [LowestPriority] by default.
// Smaller numbers win: a key set by a priority 1 source replaces the same
// key from a priority 10 source. Sources of equal priority are merged in
// registration order, so the one registered last wins. Sections merge key
// by key; sequences and scalars are replaced.
//
// # Field Resolution
//
// A field takes the first of:
//
//  1. its command-line flag (--port=9000), if one is named with Flag
//  2. its environment variable, if one is named with Env
//  3. its key in the current section, optionally matched case-insensitively
//  4. for a nested field, the nested struct read from the current section itself
//  5. its default
//  6. the zero value, if the field is optional
//
// Otherwise resolution fails with a [*MissingFieldError]. Values from steps
// 1 to 4 are converted; defaults are used as given.
//
// # Errors
//
// Resolution errors keep their structure. A failure deep inside nested
// structs is reported as a chain of [*NestedError] ending in a
// [*MissingFieldError] or [*TypeMismatchError]:
//
//	var nested *structcfg.NestedError
//	if errors.As(err, &nested) {
//	    fmt.Println(nested.Path()) // database.replicas[1].port
//	}
//
//	if errors.Is(err, structcfg.ErrTypeMismatch) {
//	    // ...
//	}
//
// Loading and dumping errors are wrapped in [*Error], which names the
// source or dumper that failed.
//
// # Accessing the Tree
//
// Besides schemas, the merged tree can be read directly with dotted,
// case-insensitive paths or decoded through struct tags:
//
//	port := cfg.Int("server.port")
//	host := cfg.StringOr("server.host", "localhost")
//	timeout := structcfg.GetOr(cfg, "timeout", 30*time.Second)
//
//	var s Settings
//	err := cfg.Decode(&s)
//
// # Thread Safety
//
// Config is safe for concurrent use. Load and Watch replace the merged
// tree atomically; readers see either the old or the new tree. Schemas and
// formats are immutable once built.
package structcfg
