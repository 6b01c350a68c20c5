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

// Package dumper provides configuration dumper implementations.
//
// Dumpers write a merged configuration tree to a destination through a
// codec encoder.
//
// # Available Dumpers
//
//   - File: replace a file atomically
//   - Writer: write to any io.Writer
//
// # Example
//
//	yaml, _ := codec.Lookup(codec.TypeYAML)
//	err := dumper.NewFile("effective.yaml", yaml).Dump(ctx, tree)
//
// Creating a file dumper with custom permissions:
//
//	fileDumper := dumper.NewFileWithPermissions("effective.yaml", yaml, 0o600)
package dumper
