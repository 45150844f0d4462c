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
	"github.com/google/wire"

	"github.com/go-arcade/schemata/pkg/log"
)

// ProviderSet 提供缓存依赖，按配置选择 Redis 或本地 FastCache
var ProviderSet = wire.NewSet(ProvideICache)

// ProvideICache 提供 ICache 接口实例
func ProvideICache(conf *Conf) (ICache, func(), error) {
	conf.SetDefaults()

	switch conf.Driver {
	case DriverRedis:
		client, err := NewRedis(conf.Redis)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Errorw("failed to close redis", "error", err)
			}
		}
		return NewRedisCache(client), cleanup, nil
	default:
		log.Infow("using local cache", "maxBytesMB", conf.LocalMaxBytes)
		fc := NewFastCache(FastCacheConfig{MaxBytes: conf.LocalMaxBytes * 1024 * 1024})
		return fc, func() { fc.Reset() }, nil
	}
}
