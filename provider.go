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
	"os"
	"strings"

	"github.com/spf13/pflag"

	"rivaas.dev/structcfg/source"
)

// EnvProvider looks up environment variables by name.
type EnvProvider interface {
	LookupEnv(name string) (string, bool)
}

// ArgProvider looks up command-line flag values by name, without the
// leading dashes.
type ArgProvider interface {
	LookupArg(name string) (string, bool)
}

// EnvFunc adapts a lookup function such as [os.LookupEnv] to [EnvProvider].
type EnvFunc func(name string) (string, bool)

// LookupEnv calls f(name).
func (f EnvFunc) LookupEnv(name string) (string, bool) {
	return f(name)
}

// OSEnv returns the process environment. Mutating the environment while
// configuration is resolved in another goroutine is a data race in the
// caller, as with any use of [os.Setenv].
func OSEnv() EnvProvider {
	return EnvFunc(os.LookupEnv)
}

// MapEnv is a fixed environment, for tests and for callers that have
// already collected variables.
type MapEnv map[string]string

// LookupEnv implements [EnvProvider].
func (m MapEnv) LookupEnv(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// ArgMap holds parsed "--key=value" arguments.
type ArgMap map[string]string

// LookupArg implements [ArgProvider].
func (m ArgMap) LookupArg(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// ParseArgs parses "--key=value" tokens. Other tokens are ignored, "--"
// ends scanning and the last occurrence of a key wins.
func ParseArgs(args []string) ArgMap {
	return ArgMap(source.ParseArgs(args))
}

type osArgs struct{}

// OSArgs looks flags up in the process arguments, excluding the program
// name. [os.Args] is parsed on every lookup, so a change made after [New]
// is seen by the next resolution.
func OSArgs() ArgProvider {
	return osArgs{}
}

func (osArgs) LookupArg(name string) (string, bool) {
	if len(os.Args) < 2 {
		return "", false
	}
	return ParseArgs(os.Args[1:]).LookupArg(name)
}

type flagSetArgs struct {
	flags *pflag.FlagSet
}

// FlagSetArgs looks flags up in a parsed [pflag.FlagSet]. Only flags the
// user set are reported, so a flag's own default never overrides the
// configuration tree. Slice flags are joined with commas.
func FlagSetArgs(fs *pflag.FlagSet) ArgProvider {
	return flagSetArgs{flags: fs}
}

func (a flagSetArgs) LookupArg(name string) (string, bool) {
	flag := a.flags.Lookup(name)
	if flag == nil || !flag.Changed {
		return "", false
	}
	if slice, ok := flag.Value.(pflag.SliceValue); ok {
		return strings.Join(slice.GetSlice(), ","), true
	}
	return flag.Value.String(), true
}
