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

package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/schemata/pkg/cache"
	"github.com/go-arcade/schemata/pkg/database"
	"github.com/go-arcade/schemata/pkg/http"
	"github.com/go-arcade/schemata/pkg/log"
	"github.com/go-arcade/schemata/pkg/metrics"
	"github.com/go-arcade/schemata/pkg/pprof"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Cache    cache.Conf
	Metrics  metrics.MetricsConfig
	Pprof    pprof.PprofConfig
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

// NewConf 加载配置文件，进程内只加载一次
func NewConf(confDir string) AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		mu.Lock()
		cfg = loaded
		mu.Unlock()
	})
	return Current()
}

// Current returns the latest loaded configuration
func Current() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (AppConfig, error) {
	var loaded AppConfig

	config := viper.New()
	config.SetConfigFile(confDir) //文件名
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return loaded, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := config.Unmarshal(&loaded); err != nil {
		return loaded, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	loaded.setDefaults()

	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "file", e.Name)
		var reloaded AppConfig
		if err := config.Unmarshal(&reloaded); err != nil {
			log.Errorw("failed to reload configuration", "file", e.Name, "error", err)
			return
		}
		reloaded.setDefaults()
		mu.Lock()
		cfg = reloaded
		mu.Unlock()
	})
	config.WatchConfig()

	log.Infow("config file loaded",
		"path", confDir,
	)
	return loaded, nil
}

func (c *AppConfig) setDefaults() {
	c.Http.SetDefaults()
	c.Cache.SetDefaults()
	c.Metrics.SetDefaults()
	c.Pprof.SetDefaults()
}
