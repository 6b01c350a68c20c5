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

//go:build integration

package structcfg_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/consul"

	"rivaas.dev/structcfg"
)

type service struct {
	Name    string
	Port    uint16
	Timeout string
	Debug   bool
}

var serviceSchema = structcfg.MustSchema(
	structcfg.Field("name", func(s *service) *string { return &s.Name }, structcfg.String()),
	structcfg.Field("port", func(s *service) *uint16 { return &s.Port }, structcfg.Uint16()).Default(8080),
	structcfg.Field("timeout", func(s *service) *string { return &s.Timeout }, structcfg.String()).Default("30s"),
	structcfg.Field("debug", func(s *service) *bool { return &s.Debug }, structcfg.Bool()).
		Env("STRUCTCFG_IT_DEBUG").
		Default(false),
)

// TestIntegration_LayeredFilesAndConsul merges a file, a Consul document
// and a raw Consul value, then applies an environment override.
func TestIntegration_LayeredFilesAndConsul(t *testing.T) {
	ctx := context.Background()

	container, err := consul.Run(ctx, "hashicorp/consul:1.15", testcontainers.WithLogger(log.TestLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err := container.ApiEndpoint(ctx)
	require.NoError(t, err)
	t.Setenv("CONSUL_HTTP_ADDR", endpoint)
	t.Setenv("STRUCTCFG_IT_DEBUG", "true")

	clientCfg := api.DefaultConfig()
	clientCfg.Address = endpoint
	client, err := api.NewClient(clientCfg)
	require.NoError(t, err)
	_, err = client.KV().Put(&api.KVPair{Key: "it/service.json", Value: []byte(`{"port": 9000}`)}, nil)
	require.NoError(t, err)
	_, err = client.KV().Put(&api.KVPair{Key: "it/timeout", Value: []byte("5s")}, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "service.toml")
	require.NoError(t, os.WriteFile(file, []byte("name = \"billing\"\nport = 8081\n"), 0o600))

	got, err := structcfg.Load(ctx, serviceSchema,
		structcfg.WithFile(file),
		structcfg.WithConsul("it/service.json", structcfg.Priority(10)),
		structcfg.WithConsulValue("it/timeout", structcfg.Priority(10)),
		structcfg.WithArgProvider(structcfg.ArgMap{}),
	)
	require.NoError(t, err)
	assert.Equal(t, service{Name: "billing", Port: 9000, Timeout: "5s", Debug: true}, got)
}

// TestIntegration_DumpRoundTrip dumps a merged tree and loads it back.
func TestIntegration_DumpRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "effective.yaml")

	cfg, err := structcfg.New(
		structcfg.WithContent([]byte(`{"name": "svc", "nested": {"list": [1, 2]}}`), "json"),
		structcfg.WithFileDumper(out),
	)
	require.NoError(t, err)
	require.NoError(t, cfg.Load(context.Background()))
	require.NoError(t, cfg.Dump(context.Background()))

	reloaded, err := structcfg.New(structcfg.WithFile(out))
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(context.Background()))
	structcfg.AssertTree(t, reloaded, cfg.Tree())
}
