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
	"fmt"

	"github.com/go-arcade/schemata/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// useReplicas routes plain reads to the configured replicas. Writes and
// transactions stay on the primary.
func useReplicas(db *gorm.DB, cfg Database) error {
	dsns := cfg.ReplicaDSNs()
	if len(dsns) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(dsns))
	for _, dsn := range dsns {
		replicas = append(replicas, mysql.Open(dsn))
	}
	resolver := dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}).
		SetMaxOpenConns(cfg.MaxOpenConns).
		SetMaxIdleConns(cfg.MaxIdleConns).
		SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime)).
		SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime))

	if err := db.Use(resolver); err != nil {
		return fmt.Errorf("failed to register database replicas: %w", err)
	}
	log.Infow("database replicas registered", "replicas", len(replicas))
	return nil
}

// Primary forces the query onto the primary, for reads that must observe
// writes made just before them.
// Usage: Primary(db).Model(&Field{}).Count(&n)
func Primary(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Write)
}
