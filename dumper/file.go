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

package dumper

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

// File represents a configuration dumper that writes data to a file.
// It supports customizable file permissions and uses encoders to
// convert configuration data to the appropriate format.
type File struct {
	path        string
	encoder     codec.Encoder
	permissions os.FileMode
}

const (
	// DefaultFilePermissions represents the default file permissions for dumped configuration files.
	// Files are created with read/write permissions for the owner and read permissions for group and others (0644).
	DefaultFilePermissions = 0o644
)

// NewFile creates a new File dumper that writes configuration to the specified file path.
// It uses default file permissions of 0644.
func NewFile(path string, encoder codec.Encoder) *File {
	return NewFileWithPermissions(path, encoder, DefaultFilePermissions)
}

// NewFileWithPermissions creates a new File dumper with custom file permissions.
// Use this when you need more restrictive permissions (e.g., 0600 for sensitive configuration).
func NewFileWithPermissions(path string, encoder codec.Encoder, permissions os.FileMode) *File {
	return &File{
		path:        path,
		encoder:     encoder,
		permissions: permissions,
	}
}

// Dump encodes tree and replaces the file with the result. The data is
// written to a temporary file in the same directory and renamed over the
// target, so readers never observe a partial file.
//
// Errors:
//   - Returns error if encoding fails
//   - Returns error if writing to the file fails
func (f *File) Dump(_ context.Context, tree value.Value) error {
	data, err := f.encoder.Encode(tree)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = tmp.Chmod(f.permissions); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Writer dumps configuration to an [io.Writer] such as os.Stdout.
type Writer struct {
	w       io.Writer
	encoder codec.Encoder
}

// NewWriter creates a Writer dumper.
func NewWriter(w io.Writer, encoder codec.Encoder) *Writer {
	return &Writer{w: w, encoder: encoder}
}

// Dump encodes tree and writes it in a single call.
func (d *Writer) Dump(_ context.Context, tree value.Value) error {
	data, err := d.encoder.Encode(tree)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}
	if _, err = d.w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
