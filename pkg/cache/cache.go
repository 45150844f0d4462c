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
	"time"

	"github.com/redis/go-redis/v9"
)

// ICache 定义缓存接口，命令返回值沿用 go-redis 的类型
type ICache interface {
	// Get 获取缓存值，未命中时 Err() 为 redis.Nil
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set 设置缓存值，expiration 为 0 时不过期
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del 删除缓存，返回实际删除的数量
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Expire 设置过期时间
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

const (
	DriverRedis = "redis"
	DriverLocal = "local"
)

// Conf 缓存配置
type Conf struct {
	Driver        string // redis | local
	LocalMaxBytes int    // 本地缓存大小（MB）
	TTL           int    // 查询缓存过期时间（秒）
	Redis         Redis
}

// SetDefaults 补齐未配置的字段
func (c *Conf) SetDefaults() {
	if c.Driver == "" {
		c.Driver = DriverLocal
	}
	if c.LocalMaxBytes <= 0 {
		c.LocalMaxBytes = 32
	}
	if c.TTL <= 0 {
		c.TTL = 300
	}
}

// TTLDuration returns the query cache TTL.
func (c *Conf) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}
