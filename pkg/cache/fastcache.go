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
	"encoding/binary"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// 每个值前 8 字节保存过期时间（UnixNano），0 表示不过期
const expiryHeaderLen = 8

// FastCacheConfig holds fastcache configuration
type FastCacheConfig struct {
	MaxBytes int // default 16MB
}

// FastCache is an in-process ICache backed by VictoriaMetrics fastcache.
// Expired entries are dropped lazily on read.
type FastCache struct {
	cache *fastcache.Cache
	now   func() time.Time
}

// NewFastCache creates a new FastCache instance
func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &FastCache{
		cache: fastcache.New(maxBytes),
		now:   time.Now,
	}
}

func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	value, ok := fc.load(key)
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(value))
	return cmd
}

func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		encoded, err := sonic.Marshal(v)
		if err != nil {
			cmd.SetErr(fmt.Errorf("encode cache value: %w", err))
			return cmd
		}
		data = encoded
	}

	fc.store(key, data, expiration)
	cmd.SetVal("OK")
	return cmd
}

func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var count int64
	for _, key := range keys {
		if _, ok := fc.load(key); ok {
			count++
		}
		fc.cache.Del([]byte(key))
	}
	cmd.SetVal(count)
	return cmd
}

func (fc *FastCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	value, ok := fc.load(key)
	if !ok {
		cmd.SetVal(false)
		return cmd
	}
	if expiration <= 0 {
		fc.cache.Del([]byte(key))
	} else {
		fc.store(key, value, expiration)
	}
	cmd.SetVal(true)
	return cmd
}

// Reset 清空本地缓存
func (fc *FastCache) Reset() {
	fc.cache.Reset()
}

func (fc *FastCache) store(key string, value []byte, expiration time.Duration) {
	buf := make([]byte, expiryHeaderLen+len(value))
	if expiration > 0 {
		binary.BigEndian.PutUint64(buf, uint64(fc.now().Add(expiration).UnixNano()))
	}
	copy(buf[expiryHeaderLen:], value)
	fc.cache.Set([]byte(key), buf)
}

func (fc *FastCache) load(key string) ([]byte, bool) {
	buf, ok := fc.cache.HasGet(nil, []byte(key))
	if !ok || len(buf) < expiryHeaderLen {
		return nil, false
	}
	if exp := int64(binary.BigEndian.Uint64(buf)); exp != 0 && fc.now().UnixNano() >= exp {
		fc.cache.Del([]byte(key))
		return nil, false
	}
	return buf[expiryHeaderLen:], true
}
