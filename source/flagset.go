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

	"github.com/spf13/pflag"

	"rivaas.dev/structcfg/value"
)

// FlagSet is a configuration source backed by a parsed [pflag.FlagSet].
// Only flags the user actually set contribute, so flag defaults never
// shadow values from files. Keys are flag names taken literally, dots
// included.
type FlagSet struct {
	flags *pflag.FlagSet
}

// NewFlagSet creates a FlagSet source. fs must be parsed before Load.
func NewFlagSet(fs *pflag.FlagSet) *FlagSet {
	return &FlagSet{flags: fs}
}

// Load collects the changed flags into a flat section keyed by flag name.
// Slice flags become sequences.
func (f *FlagSet) Load(context.Context) (value.Value, error) {
	section := make(map[string]value.Value)
	f.flags.Visit(func(flag *pflag.Flag) {
		if slice, ok := flag.Value.(pflag.SliceValue); ok {
			items := make([]value.Value, 0, len(slice.GetSlice()))
			for _, item := range slice.GetSlice() {
				items = append(items, value.Scalar(item))
			}
			section[flag.Name] = value.Sequence(items...)
			return
		}
		section[flag.Name] = value.Scalar(flag.Value.String())
	})

	return value.Section(section), nil
}
