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

package database

import (
	"github.com/go-arcade/schemata/pkg/log"
	"github.com/google/wire"
)

// ProviderSet provides database-related dependencies
var ProviderSet = wire.NewSet(ProvideDatabase)

// ProvideDatabase opens MySQL and optionally migrates registered models.
// logger is required so that SQL logs are routed after the global logger
// has been installed.
func ProvideDatabase(conf Database, logger *log.Logger) (IDatabase, func(), error) {
	db, err := NewDatabase(conf)
	if err != nil {
		return nil, nil, err
	}
	if conf.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, nil, err
		}
		logger.Log.Infow("database migrated", "models", len(GetRegisteredModels()))
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return NewGormDB(db), cleanup, nil
}
