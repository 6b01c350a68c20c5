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
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

// ConsulKV defines the interface for Consul key-value operations.
// This interface enables testing by allowing mock implementations.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul represents a configuration source that loads data from Consul's key-value store.
//
// The Consul client is configured using environment variables:
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication (optional)
type Consul struct {
	kv      ConsulKV
	path    string
	decoder codec.Decoder

	mu        sync.Mutex
	lastIndex uint64
}

// NewConsul creates a new Consul configuration source with the given path and decoder.
// The path parameter specifies the key path in Consul's key-value store.
// If kv is nil, it uses the default Consul client KV implementation.
//
// The decoder determines how the retrieved value is parsed:
//   - A format decoder (JSON, YAML, TOML): the value is a whole document
//   - nil: the value is a single raw scalar keyed by the last path segment,
//     so "app/feature_flag" yields {feature_flag: <raw>}
//
// Errors:
//   - Returns error if the Consul client cannot be created
func NewConsul(path string, decoder codec.Decoder, kv ConsulKV) (*Consul, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}

	return &Consul{
		kv:      kv,
		path:    path,
		decoder: decoder,
	}, nil
}

// LastIndex returns the Consul index observed by the most recent Load.
func (c *Consul) LastIndex() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastIndex
}

// Load retrieves configuration data from the Consul key-value store at the configured path.
// If the key does not exist in Consul, it returns an empty section without error.
//
// Errors:
//   - Returns error if the Consul query fails
//   - Returns error if decoding the value fails
func (c *Consul) Load(ctx context.Context) (value.Value, error) {
	pair, meta, err := c.kv.Get(c.path, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to get consul key: %w", err)
	}

	if meta != nil {
		c.mu.Lock()
		c.lastIndex = meta.LastIndex
		c.mu.Unlock()
	}

	if pair == nil {
		return value.EmptySection(), nil
	}

	if c.decoder == nil {
		keyParts := strings.Split(pair.Key, "/")
		key := keyParts[len(keyParts)-1]
		return value.Section(map[string]value.Value{key: value.Scalar(string(pair.Value))}), nil
	}

	tree, err := c.decoder.Decode(pair.Value)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to decode consul value: %w", err)
	}

	return tree, nil
}
