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

// Package source provides configuration source implementations.
//
// Every source loads into a [value.Value] tree. Sources load configuration
// data from files, command-line arguments, environment variables and
// remote services.
//
// # Available Sources
//
//   - File: a file path or in-memory content, parsed by a codec
//   - Args: "--key=value" command-line tokens
//   - FlagSet: flags the user set on a parsed pflag.FlagSet
//   - OSEnvVar: environment variables with a prefix
//   - Consul: a key in Consul's key-value store
//
// [Watcher] reports edits to file sources so they can be reloaded.
//
// # Example
//
//	yaml, _ := codec.Lookup(codec.TypeYAML)
//	tree, err := source.NewFile("config.yaml", yaml).Load(ctx)
//
//	env, err := source.NewOSEnvVar("APP_").Load(ctx)
package source
