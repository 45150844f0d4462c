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
	"strings"
	"time"
)

const (
	dataTablePrefix = "t_"
)

// Database MySQL 数据源及连接池配置
type Database struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	OutPut       bool   `mapstructure:"output"`
	AutoMigrate  bool   `mapstructure:"autoMigrate"`
	SlowSQL      int    `mapstructure:"slowSQL"` // 毫秒
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxLifetime  int    `mapstructure:"maxLifeTime"`
	MaxIdleTime  int    `mapstructure:"maxIdleTime"`
	// 只读副本 host:port，账号与主库一致
	Replicas []string `mapstructure:"replicas"`
}

// Validate 检查必填项
func (d *Database) Validate() error {
	if d.Host == "" || d.User == "" || d.DBName == "" {
		return fmt.Errorf("incomplete database config: host, user, and dbname are required")
	}
	return nil
}

// DSN builds the MySQL DSN.
func (d *Database) DSN() string {
	port := d.Port
	if port == "" {
		port = "3306"
	}
	return d.dsn(d.Host + ":" + port)
}

// ReplicaDSNs builds one DSN per configured replica
func (d *Database) ReplicaDSNs() []string {
	dsns := make([]string, 0, len(d.Replicas))
	for _, addr := range d.Replicas {
		if addr == "" {
			continue
		}
		if !strings.Contains(addr, ":") {
			addr += ":3306"
		}
		dsns = append(dsns, d.dsn(addr))
	}
	return dsns
}

func (d *Database) dsn(addr string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, addr, d.DBName)
}

// GetConnMaxLifetime returns ConnMaxLifetime, default 5 minutes
func GetConnMaxLifetime(maxLifetime int) time.Duration {
	if maxLifetime > 0 {
		return time.Duration(maxLifetime) * time.Second
	}
	return 300 * time.Second
}

// GetConnMaxIdleTime returns ConnMaxIdleTime, default 1 minute
func GetConnMaxIdleTime(maxIdleTime int) time.Duration {
	if maxIdleTime > 0 {
		return time.Duration(maxIdleTime) * time.Second
	}
	return 60 * time.Second
}

// GetSlowThreshold returns the slow SQL threshold, default 1 second
func GetSlowThreshold(slowSQL int) time.Duration {
	if slowSQL > 0 {
		return time.Duration(slowSQL) * time.Millisecond
	}
	return time.Second
}
