// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func itemKey(params ...any) string {
	return fmt.Sprintf("test:items:%v", params[0])
}

func TestCachedQuery_CacheAside(t *testing.T) {
	ctx := context.Background()
	calls := 0
	query := func(ctx context.Context) ([]cachedItem, error) {
		calls++
		return []cachedItem{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, nil
	}
	cq := NewCachedQuery(NewFastCache(FastCacheConfig{}), itemKey, query, WithTTL[[]cachedItem](time.Minute))

	first, err := cq.Get(ctx, "c1")
	require.NoError(t, err)
	second, err := cq.Get(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read is served from cache")

	require.NoError(t, cq.Invalidate(ctx, "c1"))
	_, err = cq.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedQuery_EmptyResultIsCached(t *testing.T) {
	ctx := context.Background()
	calls := 0
	query := func(ctx context.Context) ([]cachedItem, error) {
		calls++
		return []cachedItem{}, nil
	}
	cq := NewCachedQuery(NewFastCache(FastCacheConfig{}), itemKey, query)

	for i := 0; i < 3; i++ {
		got, err := cq.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, 1, calls)
}

func TestCachedQuery_QueryError(t *testing.T) {
	boom := errors.New("boom")
	cq := NewCachedQuery(NewFastCache(FastCacheConfig{}), itemKey, func(ctx context.Context) (int, error) {
		return 0, boom
	})

	_, err := cq.Get(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestCachedQuery_NilCache(t *testing.T) {
	calls := 0
	cq := NewCachedQuery[int](nil, itemKey, func(ctx context.Context) (int, error) {
		calls++
		return 7, nil
	}, WithLogPrefix[int]("[test]"))

	v, err := cq.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	_, _ = cq.Get(context.Background(), "x")
	assert.Equal(t, 2, calls)
	assert.NoError(t, cq.Invalidate(context.Background(), "x"))
}
