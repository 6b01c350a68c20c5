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
	"errors"
	"log/slog"

	"rivaas.dev/structcfg/value"
)

// Origins reported in the "origin" attribute of field resolution logs.
const (
	OriginFlag    = "flag"
	OriginEnv     = "env"
	OriginConfig  = "config"
	OriginFlat    = "flat"
	OriginDefault = "default"
	OriginAbsent  = "absent"
)

// Resolver carries the override providers a [Schema] consults. Any field
// may be nil: a nil provider is never consulted, and a nil *Resolver
// applies no overrides at all.
type Resolver struct {
	Env    EnvProvider
	Args   ArgProvider
	Logger *slog.Logger
}

// lookup runs the first three steps of the override chain: flag, then
// environment, then the section key. A null leaf counts as absent.
func (r *Resolver) lookup(d Descriptor, section value.Value) (value.Value, string, bool) {
	if r != nil && r.Args != nil && d.Flag != "" {
		if v, ok := r.Args.LookupArg(d.Flag); ok {
			return value.Scalar(v), OriginFlag, true
		}
	}
	if r != nil && r.Env != nil && d.Env != "" {
		if v, ok := r.Env.LookupEnv(d.Env); ok {
			return value.Scalar(v), OriginEnv, true
		}
	}
	if v, ok := section.Lookup(d.Key, d.CaseInsensitive); ok && !v.IsNull() {
		return v, OriginConfig, true
	}
	return value.Value{}, "", false
}

func (r *Resolver) trace(key, origin string) {
	if r == nil || r.Logger == nil {
		return
	}
	r.Logger.Debug("field resolved", "key", key, "origin", origin)
}

func (f *FieldSpec[S, T]) resolve(dst *S, section value.Value, r *Resolver) error {
	key := f.desc.Key
	target := f.bind(dst)

	if raw, origin, found := r.lookup(f.desc, section); found {
		out, err := f.convert(raw, r)
		if err != nil {
			return wrapField(key, err)
		}
		*target = out
		r.trace(key, origin)
		return nil
	}

	if f.section != nil {
		out, err := f.section(section, r)
		if err == nil {
			*target = out
			r.trace(key, OriginFlat)
			return nil
		}
		// Only absence falls through to the default; a flat layout that
		// is present but wrong is reported.
		if !errors.Is(err, ErrMissingField) || (f.def == nil && !f.desc.Optional) {
			return &NestedError{Section: key, Err: err}
		}
	}

	if f.def != nil {
		*target = f.def()
		r.trace(key, OriginDefault)
		return nil
	}

	if f.desc.Optional {
		var zero T
		*target = zero
		r.trace(key, OriginAbsent)
		return nil
	}

	return &MissingFieldError{Key: key}
}

func (f *FieldSpec[S, T]) convert(raw value.Value, r *Resolver) (T, error) {
	if f.section != nil {
		return f.section(raw, r)
	}
	return f.conv.Convert(raw)
}

// wrapField attributes a conversion failure to key: a bare type mismatch
// is tagged with the key, anything else is wrapped in a [*NestedError].
func wrapField(key string, err error) error {
	if tm, ok := err.(*TypeMismatchError); ok && tm.Field == "" {
		return tagField(err, key)
	}
	return &NestedError{Section: key, Err: err}
}
