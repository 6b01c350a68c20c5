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

package structcfg

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"rivaas.dev/structcfg/value"
)

// LowestPriority is the priority of a source that does not declare one.
// Smaller numbers take precedence, so 0 beats every other source.
const LowestPriority uint8 = 255

// Source defines the interface for configuration sources.
// Implementations load configuration data from various locations
// such as files, environment variables, or remote services.
//
// Load must be safe to call concurrently. The returned tree must be a
// section or null; null is read as an empty section.
type Source interface {
	Load(ctx context.Context) (value.Value, error)
}

// Prioritized is implemented by sources that declare their own priority.
type Prioritized interface {
	Priority() uint8
}

// Dumper defines the interface for writing the merged configuration.
type Dumper interface {
	Dump(ctx context.Context, tree value.Value) error
}

// SourceOption configures a source as it is registered.
type SourceOption func(*sourceEntry)

type sourceEntry struct {
	Source
	priority uint8
}

// Priority sets the priority of a source. Smaller numbers take
// precedence; sources of equal priority are merged in registration order,
// so the one registered last wins.
func Priority(p uint8) SourceOption {
	return func(e *sourceEntry) {
		e.priority = p
	}
}

// WithPriority returns src with priority p, for use with [Aggregate].
func WithPriority(src Source, p uint8) Source {
	return newSourceEntry(src, Priority(p))
}

func newSourceEntry(src Source, opts ...SourceOption) *sourceEntry {
	e := &sourceEntry{Source: src, priority: priorityOf(src)}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Priority implements [Prioritized].
func (e *sourceEntry) Priority() uint8 {
	return e.priority
}

// Unwrap returns the registered source.
func (e *sourceEntry) Unwrap() Source {
	return e.Source
}

func priorityOf(src Source) uint8 {
	if p, ok := src.(Prioritized); ok {
		return p.Priority()
	}
	return LowestPriority
}

// Aggregate loads every source and deep-merges the trees so that the
// source with the smallest priority number wins each conflict. Sources of
// equal priority are merged in the order given, the last one winning.
// With no sources the result is an empty section.
//
// Errors:
//   - Returns [*Error] with Source "source[i]" and Operation "load" for
//     the first source that fails, where i is its position in sources
//   - Returns the context error if ctx is done between two loads
func Aggregate(ctx context.Context, sources ...Source) (value.Value, error) {
	return aggregate(ctx, nil, sources)
}

func aggregate(ctx context.Context, logger *slog.Logger, sources []Source) (value.Value, error) {
	order := make([]int, len(sources))
	for i := range order {
		order[i] = i
	}
	// Fold the least important source first so that merge lets the more
	// important one overwrite it.
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(priorityOf(sources[b]), priorityOf(sources[a]))
	})

	merged := value.EmptySection()
	for _, i := range order {
		if err := ctx.Err(); err != nil {
			return value.Value{}, err
		}

		name := fmt.Sprintf("source[%d]", i)
		tree, err := sources[i].Load(ctx)
		if err != nil {
			return value.Value{}, NewError(name, "load", err)
		}
		switch {
		case tree.IsNull():
			tree = value.EmptySection()
		case !tree.IsSection():
			return value.Value{}, NewError(name, "load", &TypeMismatchError{Field: "root", Expected: "section"})
		}

		if logger != nil {
			logger.Debug("source loaded", "source", name, "priority", priorityOf(sources[i]), "keys", tree.Keys())
		}
		merged = value.Merge(merged, tree)
	}

	return merged, nil
}
