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
	"fmt"
	"os"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

// File decodes a document read from disk or held in memory.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile returns a source reading path and parsing it with decoder.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{
		path:    path,
		decoder: decoder,
	}
}

// NewFileContent returns a source parsing data with decoder, typically
// for embedded documents.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{
		data:    data,
		decoder: decoder,
	}
}

// Path returns the file path, or "" for a content source.
func (f *File) Path() string {
	return f.path
}

// Load reads the file, or uses the provided content, and decodes it.
// The file is read on every call so a reload picks up edits.
//
// Errors:
//   - Returns error wrapping the [os.ReadFile] failure (NewFile only)
//   - Returns the decoder's error unchanged, typically a [*codec.ParseError]
func (f *File) Load(context.Context) (value.Value, error) {
	data := f.data
	if f.path != "" {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			return value.Value{}, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return f.decoder.Decode(data)
}
