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
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/dumper"
	"rivaas.dev/structcfg/source"
	"rivaas.dev/structcfg/value"
)

// Option is a functional option that can be used to configure a Config instance.
type Option func(c *Config) error

// Config manages configuration data loaded from multiple sources.
// It holds the merged tree of the last successful [Config.Load] and the
// providers schemas are resolved against.
//
// Config is safe for concurrent use by multiple goroutines.
type Config struct {
	tree    value.Value
	sources []Source
	dumpers []Dumper
	env     EnvProvider
	args    ArgProvider
	logger  *slog.Logger
	tagName string // Custom struct tag name (default: "config")
	mu      sync.RWMutex

	decoderConfig *mapstructure.DecoderConfig
	decoderOnce   sync.Once
}

// WithSource adds a source to the configuration loader.
//
// Example:
//
//	cfg := structcfg.MustNew(
//	    structcfg.WithSource(mySource, structcfg.Priority(10)),
//	)
func WithSource(src Source, opts ...SourceOption) Option {
	return func(c *Config) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, newSourceEntry(src, opts...))
		return nil
	}
}

// WithFile returns an Option that configures the Config instance to load configuration data from a file.
// The format is automatically detected from the file extension (.yaml, .yml, .json, .jsonc, .toml, .env).
// For files without extensions or custom formats, use WithFileAs instead.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
// Example: "${CONFIG_DIR}/app.yaml" expands to "/etc/myapp/app.yaml" when CONFIG_DIR=/etc/myapp
//
// Example:
//
//	cfg := structcfg.MustNew(
//	    structcfg.WithFile("config.yaml"),
//	    structcfg.WithFile("override.json", structcfg.Priority(1)),
//	)
func WithFile(path string, opts ...SourceOption) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}

		c.sources = append(c.sources, newSourceEntry(source.NewFile(path, format), opts...))
		return nil
	}
}

// WithFileAs returns an Option that configures the Config instance to load configuration data from a file with explicit format.
// Use this when the file doesn't have an extension or when you need to override the format detection.
//
// Example:
//
//	cfg := structcfg.MustNew(
//	    structcfg.WithFileAs("config", codec.TypeYAML),      // No extension, specify YAML
//	    structcfg.WithFileAs("config.dat", codec.TypeJSON),  // Wrong extension, specify JSON
//	)
func WithFileAs(path string, codecType codec.Type, opts ...SourceOption) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := lookupFormat(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}

		c.sources = append(c.sources, newSourceEntry(source.NewFile(path, format), opts...))
		return nil
	}
}

// WithContent returns an Option that configures the Config instance to load configuration data from a byte slice.
// The codecType parameter specifies the format of the data (e.g., codec.TypeJSON, codec.TypeYAML).
//
// Example:
//
//	yamlContent := []byte("server:\n  port: 8080")
//	cfg := structcfg.MustNew(
//	    structcfg.WithContent(yamlContent, codec.TypeYAML),
//	)
func WithContent(data []byte, codecType codec.Type, opts ...SourceOption) Option {
	return func(c *Config) error {
		format, err := lookupFormat(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}

		c.sources = append(c.sources, newSourceEntry(source.NewFileContent(data, format), opts...))
		return nil
	}
}

// WithArgs adds "--key=value" command-line tokens as a flat source keyed
// by flag name, so "--log.level=debug" sets the root key "log.level".
func WithArgs(args []string, opts ...SourceOption) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, newSourceEntry(source.NewArgs(args), opts...))
		return nil
	}
}

// WithFlagSet adds the flags the user set on a parsed pflag.FlagSet as a
// source. To use the same flags as per-field overrides instead, pass
// [FlagSetArgs] to [WithArgProvider].
func WithFlagSet(fs *pflag.FlagSet, opts ...SourceOption) Option {
	return func(c *Config) error {
		if fs == nil {
			return errors.New("flag set cannot be nil")
		}
		c.sources = append(c.sources, newSourceEntry(source.NewFlagSet(fs), opts...))
		return nil
	}
}

// WithEnv returns an Option that configures the Config instance to load configuration data from environment variables.
// The prefix parameter specifies the prefix for the environment variables to be loaded.
// Names are lower-cased and a double underscore separates nested keys.
//
// Example:
//
//	cfg := structcfg.MustNew(
//	    structcfg.WithFile("config.yaml"),
//	    structcfg.WithEnv("APP_"),  // Loads APP_SERVER__PORT as server.port
//	)
func WithEnv(prefix string, opts ...SourceOption) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, newSourceEntry(source.NewOSEnvVar(prefix), opts...))
		return nil
	}
}

// WithConsul returns an Option that configures the Config instance to load configuration data from a Consul server.
// The format is automatically detected from the path extension.
// For custom formats, use WithConsulAs instead.
//
// If CONSUL_HTTP_ADDR is not set, this option is silently skipped, allowing
// development without Consul while requiring it in production environments.
//
// Required environment variables (production only):
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication with Consul (optional)
func WithConsul(path string, opts ...SourceOption) Option {
	return func(c *Config) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("consul-source", "detect-format", err)
		}

		return c.addConsul(path, format, opts)
	}
}

// WithConsulAs returns an Option that configures the Config instance to load configuration data from a Consul server with explicit format.
// Like [WithConsul], it is skipped when CONSUL_HTTP_ADDR is not set.
func WithConsulAs(path string, codecType codec.Type, opts ...SourceOption) Option {
	return func(c *Config) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		path = os.ExpandEnv(path)

		format, err := lookupFormat(codecType)
		if err != nil {
			return NewError("consul-source", "get-decoder", err)
		}

		return c.addConsul(path, format, opts)
	}
}

// WithConsulValue loads a single raw Consul value, keyed by the last
// segment of path: "app/timeout" yields the key "timeout". Like
// [WithConsul], it is skipped when CONSUL_HTTP_ADDR is not set.
func WithConsulValue(path string, opts ...SourceOption) Option {
	return func(c *Config) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}
		return c.addConsul(os.ExpandEnv(path), nil, opts)
	}
}

func (c *Config) addConsul(path string, decoder codec.Decoder, opts []SourceOption) error {
	l, err := source.NewConsul(path, decoder, nil)
	if err != nil {
		return NewError("consul-source", "create-client", err)
	}

	c.sources = append(c.sources, newSourceEntry(l, opts...))
	return nil
}

// WithDumper adds a dumper to the configuration loader.
func WithDumper(d Dumper) Option {
	return func(c *Config) error {
		if d == nil {
			return errors.New("dumper cannot be nil")
		}
		c.dumpers = append(c.dumpers, d)
		return nil
	}
}

// WithFileDumper returns an Option that configures the Config instance to dump configuration data to a file.
// The format is automatically detected from the file extension.
// For files without extensions or custom formats, use WithFileDumperAs instead.
//
// Example:
//
//	cfg := structcfg.MustNew(
//	    structcfg.WithFile("config.yaml"),
//	    structcfg.WithFileDumper("effective.yaml"),
//	)
func WithFileDumper(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-dumper", "detect-format", err)
		}

		c.dumpers = append(c.dumpers, dumper.NewFile(path, format))
		return nil
	}
}

// WithFileDumperAs returns an Option that configures the Config instance to dump configuration data to a file with explicit format.
func WithFileDumperAs(path string, codecType codec.Type) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)

		format, err := lookupFormat(codecType)
		if err != nil {
			return NewError("file-dumper", "get-encoder", err)
		}

		c.dumpers = append(c.dumpers, dumper.NewFile(path, format))
		return nil
	}
}

// WithEnvProvider sets where per-field environment overrides are read
// from. The default is [OSEnv].
func WithEnvProvider(p EnvProvider) Option {
	return func(c *Config) error {
		if p == nil {
			return errors.New("env provider cannot be nil")
		}
		c.env = p
		return nil
	}
}

// WithArgProvider sets where per-field flag overrides are read from. The
// default is [OSArgs], which reads the process arguments at resolution
// time.
func WithArgProvider(p ArgProvider) Option {
	return func(c *Config) error {
		if p == nil {
			return errors.New("arg provider cannot be nil")
		}
		c.args = p
		return nil
	}
}

// WithLogger sets the logger for load, resolve and watch events. Nothing
// is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithTag sets a custom struct tag name for [Config.Decode] (default: "config").
//
// Example:
//
//	type Settings struct {
//	    Port int `cfg:"port"`
//	}
//
//	cfg := structcfg.MustNew(
//	    structcfg.WithFile("config.yaml"),
//	    structcfg.WithTag("cfg"),
//	)
func WithTag(tagName string) Option {
	return func(c *Config) error {
		if tagName == "" {
			return errors.New("tag name cannot be empty")
		}
		c.tagName = tagName
		return nil
	}
}

// New creates a new Config instance with the provided options.
// It iterates through the options and applies each one to the Config instance.
// If any of the options return an error, the errors are collected and returned.
// Returns a partially initialized Config along with any errors encountered.
func New(options ...Option) (*Config, error) {
	var errs error
	c := &Config{
		tree:    value.EmptySection(),
		env:     OSEnv(),
		args:    OSArgs(),
		logger:  slog.New(slog.DiscardHandler),
		tagName: "config",
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(c); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return c, errs
}

// MustNew creates a new Config instance with the provided options.
// It panics if any option returns an error.
// Use this in main() or initialization code where panic is acceptable.
func MustNew(options ...Option) *Config {
	cfg, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("structcfg: failed to create config: %v", err))
	}
	return cfg
}

// Load loads every registered source, merges the trees by priority and
// replaces the current tree. On error the current tree is kept.
// Load is safe to call concurrently.
//
// Errors:
//   - Returns error if ctx is nil
//   - Returns [*Error] if any source fails to load
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	tree, err := aggregate(ctx, c.logger, c.sources)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.tree = tree
	c.mu.Unlock()

	c.logger.Debug("configuration loaded", "sources", len(c.sources), "keys", tree.Keys())
	return nil
}

// MustLoad loads configuration or panics on error.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

// Tree returns the merged tree of the last successful Load.
func (c *Config) Tree() value.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree
}

// Resolver returns the providers and logger schemas are resolved with.
func (c *Config) Resolver() *Resolver {
	return &Resolver{Env: c.env, Args: c.args, Logger: c.logger}
}

// Dump writes the current tree to the registered dumpers in order.
//
// Errors:
//   - Returns error if ctx is nil
//   - Returns [*Error] for the first dumper that fails
func (c *Config) Dump(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	tree := c.Tree()
	for i, d := range c.dumpers {
		if err := d.Dump(ctx, tree); err != nil {
			return NewError(fmt.Sprintf("dumper[%d]", i), "dump", err)
		}
	}

	return nil
}

// MustDump writes configuration to dumpers or panics on error.
func (c *Config) MustDump(ctx context.Context) {
	if err := c.Dump(ctx); err != nil {
		panic(err)
	}
}

// Resolve builds a T from the current tree of c using its providers.
func Resolve[T any](c *Config, s *Schema[T]) (T, error) {
	return s.Resolve(c.Tree(), c.Resolver())
}

// Load is the one-shot form of [New], [Config.Load] and [Resolve].
//
// Example:
//
//	settings, err := structcfg.Load(ctx, settingsSchema,
//	    structcfg.WithFile("config.toml"),
//	    structcfg.WithFile("local.yaml", structcfg.Priority(1)),
//	)
func Load[T any](ctx context.Context, s *Schema[T], opts ...Option) (T, error) {
	var zero T
	c, err := New(opts...)
	if err != nil {
		return zero, err
	}
	if err = c.Load(ctx); err != nil {
		return zero, err
	}
	return Resolve(c, s)
}
