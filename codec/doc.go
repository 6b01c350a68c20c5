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

// Package codec provides the serialization formats configuration files are
// read from and dumped to.
//
// Every [Format] decodes into a [value.Value] tree and encodes from one.
// Scalars are stringified identically across formats, so `port = 8080` in
// TOML, `"port": 8080` in JSON and `port: 8080` in YAML all decode to the
// same tree.
//
// # Built-in Formats
//
//   - toml (.toml)
//   - json (.json)
//   - jsonc (.jsonc): JSON with comments and trailing commas
//   - yaml (.yaml, .yml)
//   - env_var (.env): KEY=value lines, "__" separating nested keys
//
// # Custom Formats
//
// Implement [Format] and register it:
//
//	type INI struct{}
//
//	func (INI) Type() codec.Type                           { return "ini" }
//	func (INI) Extensions() []string                       { return []string{".ini"} }
//	func (INI) Decode(data []byte) (value.Value, error)    { ... }
//	func (INI) Encode(v value.Value) ([]byte, error)       { ... }
//
//	codec.Register(INI{})
//
// Formats are looked up by type with [Lookup] or by file extension with
// [ForExtension] and [ForPath]. Unknown names yield an
// [*InvalidFormatError].
package codec
