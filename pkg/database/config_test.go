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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestDatabase_DSN(t *testing.T) {
	d := Database{Host: "db", User: "root", Password: "pw", DBName: "schemata"}
	assert.Equal(t, "root:pw@tcp(db:3306)/schemata?charset=utf8mb4&parseTime=True&loc=Local", d.DSN())

	d.Port = "3307"
	assert.Contains(t, d.DSN(), "@tcp(db:3307)/")
}

func TestDatabase_ReplicaDSNs(t *testing.T) {
	d := Database{User: "ro", Password: "pw", DBName: "schemata", Replicas: []string{"r1", "", "r2:3307"}}
	assert.Equal(t, []string{
		"ro:pw@tcp(r1:3306)/schemata?charset=utf8mb4&parseTime=True&loc=Local",
		"ro:pw@tcp(r2:3307)/schemata?charset=utf8mb4&parseTime=True&loc=Local",
	}, d.ReplicaDSNs())

	assert.Empty(t, (&Database{}).ReplicaDSNs())
}

func TestDatabase_Validate(t *testing.T) {
	assert.Error(t, (&Database{Host: "db"}).Validate())
	assert.NoError(t, (&Database{Host: "db", User: "u", DBName: "d"}).Validate())

	_, err := NewDatabase(Database{})
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 300*time.Second, GetConnMaxLifetime(0))
	assert.Equal(t, 10*time.Second, GetConnMaxLifetime(10))
	assert.Equal(t, 60*time.Second, GetConnMaxIdleTime(-1))
	assert.Equal(t, time.Second, GetSlowThreshold(0))
	assert.Equal(t, 200*time.Millisecond, GetSlowThreshold(200))
}

func TestGormLoggerAdapter(t *testing.T) {
	l := NewGormLoggerAdapter(logger.Config{SlowThreshold: time.Millisecond, IgnoreRecordNotFoundError: true}, logger.Info)

	silent := l.LogMode(logger.Silent)
	assert.Equal(t, logger.Info, l.Level, "LogMode returns a copy")

	called := 0
	fc := func() (string, int64) {
		called++
		return "SELECT 1", 1
	}
	silent.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Zero(t, called)

	l.Trace(context.Background(), time.Now(), fc, logger.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Equal(t, 2, called)
}

func TestRegisterModels(t *testing.T) {
	before := len(GetRegisteredModels())
	type probe struct{ ID uint64 }
	RegisterModels(&probe{})
	assert.Len(t, GetRegisteredModels(), before+1)
}
