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
	"context"
	"errors"

	"rivaas.dev/structcfg/source"
)

// pathSource is implemented by sources backed by a file on disk.
type pathSource interface {
	Path() string
}

// Watch reloads the configuration whenever one of the file sources
// changes, until ctx is done. onReload, if not nil, is called after every
// reload attempt with its error; a failed reload keeps the previous tree.
//
// Watch blocks. Run it on its own goroutine:
//
//	go func() {
//	    _ = cfg.Watch(ctx, func(err error) {
//	        if err != nil {
//	            log.Printf("reload failed: %v", err)
//	        }
//	    })
//	}()
//
// Errors:
//   - Returns error if ctx is nil or no source is backed by a file
//   - Returns error if the files cannot be watched
//   - Returns ctx.Err() once ctx is done
func (c *Config) Watch(ctx context.Context, onReload func(error)) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	paths := c.watchPaths()
	if len(paths) == 0 {
		return NewError("watch", "start", errors.New("no file sources to watch"))
	}

	w, err := source.NewWatcher(paths, source.WithWatcherLogger(c.logger))
	if err != nil {
		return NewError("watch", "start", err)
	}

	return w.Run(ctx, func(path string) {
		err := c.Load(ctx)
		if err != nil {
			c.logger.Warn("configuration reload failed", "file", path, "error", err)
		} else {
			c.logger.Info("configuration reloaded", "file", path)
		}
		if onReload != nil {
			onReload(err)
		}
	})
}

func (c *Config) watchPaths() []string {
	var paths []string
	for _, src := range c.sources {
		if e, ok := src.(*sourceEntry); ok {
			src = e.Unwrap()
		}
		if p, ok := src.(pathSource); ok && p.Path() != "" {
			paths = append(paths, p.Path())
		}
	}
	return paths
}
