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

//go:build !integration

package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

// mockConsulKV is a mock implementation of the ConsulKV interface for testing
type mockConsulKV struct {
	pair  *api.KVPair
	meta  *api.QueryMeta
	err   error
	delay time.Duration
}

// Get is a mock implementation of the ConsulKV interface
func (m *mockConsulKV) Get(_ string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error) {
	if m.delay > 0 {
		ctx := q.Context()
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.pair, m.meta, nil
}

func TestConsulLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kv      *mockConsulKV
		decoder codec.Decoder
		want    value.Value
		wantErr string
	}{
		{
			name:    "structured value",
			kv:      &mockConsulKV{pair: &api.KVPair{Key: "app/config", Value: []byte(`{"port": 8080}`)}},
			decoder: codec.JSONCodec{},
			want:    value.Section(map[string]value.Value{"port": value.Scalar("8080")}),
		},
		{
			name: "raw value keyed by last segment",
			kv:   &mockConsulKV{pair: &api.KVPair{Key: "app/feature_flag", Value: []byte("on")}},
			want: value.Section(map[string]value.Value{"feature_flag": value.Scalar("on")}),
		},
		{
			name:    "absent key",
			kv:      &mockConsulKV{},
			decoder: codec.JSONCodec{},
			want:    value.EmptySection(),
		},
		{
			name:    "decode error",
			kv:      &mockConsulKV{pair: &api.KVPair{Key: "app/config", Value: []byte(`{"foo": "bar"`)}},
			decoder: codec.JSONCodec{},
			wantErr: "failed to decode consul value: JSON parsing error: unexpected EOF",
		},
		{
			name:    "kv failure",
			kv:      &mockConsulKV{err: errors.New("consul error: connection refused")},
			decoder: codec.JSONCodec{},
			wantErr: "failed to get consul key: consul error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := NewConsul("app/config", tt.decoder, tt.kv)
			require.NoError(t, err)

			got, err := src.Load(context.Background())
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "got %s", got)
		})
	}
}

func TestConsulLoadTracksIndex(t *testing.T) {
	t.Parallel()

	kv := &mockConsulKV{
		pair: &api.KVPair{Key: "k", Value: []byte("{}")},
		meta: &api.QueryMeta{LastIndex: 42},
	}
	src, err := NewConsul("k", codec.JSONCodec{}, kv)
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), src.LastIndex())
}

func TestConsulLoadContextTimeout(t *testing.T) {
	t.Parallel()

	src, err := NewConsul("test/timeout", codec.JSONCodec{}, &mockConsulKV{delay: 100 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = src.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
