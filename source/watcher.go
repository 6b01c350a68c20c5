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
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a Watcher waits after the last event for a
// file before reporting it.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a set of configuration files.
//
// The parent directory of each file is watched rather than the file
// itself, so editors that save by renaming a temporary file are seen.
// A burst of events for the same file is reported once.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	logger   *slog.Logger
	debounce time.Duration
	once     sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets the quiet period before a change is reported. Zero or
// a negative value reports every event immediately.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher for paths.
//
// Errors:
//   - Returns error if a path cannot be made absolute
//   - Returns error if a directory cannot be watched
func NewWatcher(paths []string, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]struct{}, len(paths)),
		logger:   slog.New(slog.DiscardHandler),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		dir := filepath.Dir(abs)
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.files[abs] = struct{}{}
		w.logger.Debug("watching directory for changes", "path", dir, "file", filepath.Base(abs))
	}

	return w, nil
}

// Run calls onChange with the path of every watched file that is written
// or created, until ctx is done. Events for a file are coalesced until it
// has been quiet for the debounce period; pending paths are then reported
// in sorted order. Calls are sequential. Run closes the watcher when it
// returns.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer func() { _ = w.Close() }()

	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	flush := func() {
		paths := make([]string, 0, len(pending))
		for path := range pending {
			paths = append(paths, path)
		}
		slices.Sort(paths)
		clear(pending)
		for _, path := range paths {
			onChange(path)
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(event.Name)
			if _, watched := w.files[name]; !watched {
				continue
			}
			w.logger.Debug("configuration file changed", "file", name, "op", event.Op.String())
			pending[name] = struct{}{}
			if w.debounce <= 0 {
				flush()
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			flush()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("configuration watcher error", "error", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
