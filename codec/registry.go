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
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry holds formats keyed by type and by file extension.
// It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	formats     map[Type]Format
	byExtension map[string]Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		formats:     make(map[Type]Format),
		byExtension: make(map[string]Format),
	}
}

var registry = NewRegistry()

// Default returns the process-wide registry that holds the built-in formats.
func Default() *Registry {
	return registry
}

// Register adds f under its type and every extension it declares. A later
// registration for the same type or extension replaces the earlier one.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formats[f.Type()] = f
	for _, ext := range f.Extensions() {
		r.byExtension[strings.ToLower(ext)] = f
	}
}

// Lookup returns the format registered under t.
func (r *Registry) Lookup(t Type) (Format, error) {
	r.mu.RLock()
	f, ok := r.formats[Type(strings.ToLower(string(t)))]
	r.mu.RUnlock()
	if !ok {
		return nil, &InvalidFormatError{Name: string(t)}
	}

	return f, nil
}

// ForExtension returns the format handling ext. The leading dot is optional
// and matching ignores case.
func (r *Registry) ForExtension(ext string) (Format, error) {
	name := strings.TrimPrefix(ext, ".")
	if name == "" {
		return nil, ErrMissingExtension
	}

	r.mu.RLock()
	f, ok := r.byExtension["."+strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, &InvalidFormatError{Name: name}
	}

	return f, nil
}

// ForPath returns the format handling the extension of path.
func (r *Registry) ForPath(path string) (Format, error) {
	return r.ForExtension(filepath.Ext(path))
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.formats))
	for t := range r.formats {
		types = append(types, t)
	}
	slices.Sort(types)

	return types
}

// Register adds f to the default registry.
func Register(f Format) {
	registry.Register(f)
}

// Lookup returns the format registered under t in the default registry.
func Lookup(t Type) (Format, error) {
	return registry.Lookup(t)
}

// ForExtension returns the default registry's format for ext.
func ForExtension(ext string) (Format, error) {
	return registry.ForExtension(ext)
}

// ForPath returns the default registry's format for the extension of path.
func ForPath(path string) (Format, error) {
	return registry.ForPath(path)
}

// Types returns the types registered in the default registry.
func Types() []Type {
	return registry.Types()
}
