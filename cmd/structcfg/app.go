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

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"rivaas.dev/structcfg"
	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/dumper"
)

// Version is set via ldflags.
var Version = "dev"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "structcfg",
		Usage:   "Merge layered configuration files",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Log every loaded source to stderr",
			},
			&cli.StringFlag{
				Name:    "env-prefix",
				Usage:   "Also merge environment variables with this prefix, above every file",
				EnvVars: []string{"STRUCTCFG_ENV_PREFIX"},
			},
		},
		Commands: []*cli.Command{
			mergeCommand(),
			getCommand(),
		},
	}
}

func mergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Print the merged configuration",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, yaml, toml",
				Value:   string(codec.TypeJSON),
			},
		},
		Action: func(c *cli.Context) error {
			format, err := codec.Lookup(codec.Type(c.String("format")))
			if err != nil {
				return err
			}

			cfg, err := loadFiles(c, c.Args().Slice(), structcfg.WithDumper(dumper.NewWriter(c.App.Writer, format)))
			if err != nil {
				return err
			}

			return cfg.Dump(c.Context)
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print one value of the merged configuration",
		ArgsUsage: "KEY FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("missing KEY argument")
			}
			key := c.Args().First()

			cfg, err := loadFiles(c, c.Args().Tail())
			if err != nil {
				return err
			}

			v, ok := cfg.Lookup(key)
			if !ok {
				return fmt.Errorf("key %q not found", key)
			}
			if s, isScalar := v.Scalar(); isScalar {
				_, err = fmt.Fprintln(c.App.Writer, s)
				return err
			}
			return dumper.NewWriter(c.App.Writer, codec.JSONCodec{}).Dump(c.Context, v)
		},
	}
}

// loadFiles loads files so that later ones win, with the environment on top.
func loadFiles(c *cli.Context, files []string, extra ...structcfg.Option) (*structcfg.Config, error) {
	if len(files) == 0 {
		return nil, errors.New("at least one FILE is required")
	}

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	opts := []structcfg.Option{structcfg.WithLogger(logger)}
	for _, file := range files {
		opts = append(opts, structcfg.WithFile(file))
	}
	if prefix := c.String("env-prefix"); prefix != "" {
		opts = append(opts, structcfg.WithEnv(prefix, structcfg.Priority(0)))
	}
	opts = append(opts, extra...)

	cfg, err := structcfg.New(opts...)
	if err != nil {
		return nil, err
	}
	if err = cfg.Load(c.Context); err != nil {
		return nil, err
	}

	logger.Debug("merged configuration", "keys", cfg.Tree().Keys(), "files", len(files))
	return cfg, nil
}
