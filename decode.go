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
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"rivaas.dev/structcfg/value"
)

// Decode copies the current tree into target, a pointer to a struct,
// matching fields by their struct tag ("config" unless changed with
// [WithTag]). Scalars are converted weakly, so "8080" fills an int.
// Fields still zero after decoding take the value of their `default` tag.
//
// Decode is the reflective alternative to a [Schema]; it has no override
// chain and reports conversion failures as mapstructure errors.
//
// Example:
//
//	type Settings struct {
//	    Port    int           `config:"port" default:"8080"`
//	    Timeout time.Duration `config:"timeout" default:"30s"`
//	}
//
//	var s Settings
//	if err := cfg.Decode(&s); err != nil {
//	    return err
//	}
func (c *Config) Decode(target any) error {
	if target == nil {
		return errors.New("decode target cannot be nil")
	}
	if reflect.TypeOf(target).Kind() != reflect.Ptr {
		return errors.New("decode target must be a pointer")
	}

	config := *c.getDecoderConfig()
	config.Result = target

	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return NewError("decode", "create-decoder", err)
	}

	native, _ := value.ToAny(c.Tree()).(map[string]any)
	if native == nil {
		native = map[string]any{}
	}
	if err = decoder.Decode(native); err != nil {
		return NewError("decode", "decode", err)
	}

	if err = applyDefaults(target); err != nil {
		return NewError("decode", "apply-defaults", err)
	}

	return nil
}

// getDecoderConfig returns a cached decoder configuration to reduce reflection overhead.
// Callers copy it before setting Result.
func (c *Config) getDecoderConfig() *mapstructure.DecoderConfig {
	c.decoderOnce.Do(func() {
		tagName := c.tagName
		if tagName == "" {
			tagName = "config"
		}
		c.decoderConfig = &mapstructure.DecoderConfig{
			TagName:          tagName,
			Squash:           true,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeHookFunc(time.RFC3339),
				mapstructure.StringToURLHookFunc(),
			),
		}
	})
	return c.decoderConfig
}

// applyDefaults walks a struct and sets the `default` tag on fields that are
// still zero-valued.
func applyDefaults(target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer")
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct")
	}

	return setDefaults(val)
}

func setDefaults(val reflect.Value) error {
	typ := val.Type()

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		// time.Time is a struct but takes a default like a scalar.
		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeFor[time.Time]() {
			if err := setDefaults(field); err != nil {
				return err
			}
			continue
		}

		defaultTag := fieldType.Tag.Get("default")
		if defaultTag == "" || !field.IsZero() {
			continue
		}

		if err := setDefaultValue(field, defaultTag); err != nil {
			return fmt.Errorf("failed to set default for field %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// setDefaultValue sets a default value on a field based on its type.
func setDefaultValue(field reflect.Value, defaultVal string) error {
	switch field.Type() {
	case reflect.TypeFor[time.Duration]():
		d, err := cast.ToDurationE(defaultVal)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	case reflect.TypeFor[time.Time]():
		t, err := cast.ToTimeE(defaultVal)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(t))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(defaultVal)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := cast.ToInt64E(defaultVal)
		if err != nil {
			return err
		}
		if field.OverflowInt(i) {
			return fmt.Errorf("value %s overflows %s", defaultVal, field.Kind())
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := cast.ToUint64E(defaultVal)
		if err != nil {
			return err
		}
		if field.OverflowUint(u) {
			return fmt.Errorf("value %s overflows %s", defaultVal, field.Kind())
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(defaultVal)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := cast.ToBoolE(defaultVal)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported type for default tag: %s", field.Type())
		}
		parts := strings.Split(defaultVal, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts).Convert(field.Type()))
	default:
		return fmt.Errorf("unsupported type for default tag: %s", field.Kind())
	}
	return nil
}
