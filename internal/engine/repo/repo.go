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

package repo

import (
	"github.com/go-arcade/schemata/pkg/cache"
	"github.com/go-arcade/schemata/pkg/database"
	"gorm.io/gorm"
)

// Repositories 统一管理所有 repository
type Repositories struct {
	Collection ICollectionRepository
	Field      IFieldRepository
}

// NewRepositories 初始化所有 repository
func NewRepositories(db database.IDatabase, c cache.ICache, cacheConf *cache.Conf) *Repositories {
	return &Repositories{
		Collection: NewCollectionRepo(db, c),
		Field:      NewFieldRepoWithTTL(db, c, cacheConf.TTLDuration()),
	}
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
