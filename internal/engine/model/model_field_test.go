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

package model

import (
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm/schema"
)

func TestField_ToRecord(t *testing.T) {
	placeholder := "Enter qty"
	min := 1.0
	f := &Field{
		FieldId:            "01J0000000000000000000000",
		CollectionId:       "c1",
		Name:               "Qty",
		ApiId:              "qty",
		Type:               "number",
		SortOrder:          2,
		Placeholder:        &placeholder,
		Min:                &min,
		Settings:           datatypes.JSON(`{"ui_options":{"helpText":"How many"}}`),
		ValidationSettings: datatypes.JSON(`{"max":10}`),
		AppearanceSettings: datatypes.JSON(`null`),
		AdvancedSettings:   datatypes.JSON(`"broken"`),
		UIOptionsSettings:  datatypes.JSON(`{not json`),
	}

	r := f.ToRecord()

	assert.Equal(t, "01J0000000000000000000000", r.ID)
	assert.Equal(t, "c1", r.CollectionID)
	assert.Equal(t, 2, r.SortOrder)
	assert.Equal(t, settings.Settings{"placeholder": "Enter qty", "min": 1.0}, r.TopLevel)
	assert.Equal(t, map[string]any{"ui_options": map[string]any{"helpText": "How many"}}, r.Legacy)
	assert.Equal(t, map[string]any{"max": float64(10)}, r.Validation)
	assert.Nil(t, r.Appearance)
	assert.Equal(t, "broken", r.Advanced)
	assert.Equal(t, "{not json", r.UIOptions)
	assert.Nil(t, r.General)
}

func TestField_ToRecordWithoutTopLevel(t *testing.T) {
	assert.Nil(t, (&Field{}).ToRecord().TopLevel)
}

func TestEncodeColumns(t *testing.T) {
	cols, err := EncodeColumns(map[string]settings.Settings{
		settings.ColumnGeneral: {"placeholder": "x", "nested": map[string]any{"a": []any{1, 2}}},
		settings.ColumnLegacy:  nil,
	})
	require.NoError(t, err)

	var general map[string]any
	require.NoError(t, sonic.Unmarshal(cols[settings.ColumnGeneral].(datatypes.JSON), &general))
	assert.Equal(t, "x", general["placeholder"])
	assert.JSONEq(t, `{}`, string(cols[settings.ColumnLegacy].(datatypes.JSON)))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "t_field", Field{}.TableName())
	assert.Equal(t, "t_collection", Collection{}.TableName())
}

func TestField_ApiIdUniquePerCollection(t *testing.T) {
	s, err := schema.Parse(&Field{}, &sync.Map{}, schema.NamingStrategy{TablePrefix: "t_", SingularTable: true})
	require.NoError(t, err)

	idx := s.LookIndex("idx_field_collection_api")
	require.NotNil(t, idx)
	assert.Equal(t, "UNIQUE", idx.Class)
	require.Len(t, idx.Fields, 2)
	assert.Equal(t, "collection_id", idx.Fields[0].DBName)
	assert.Equal(t, "api_id", idx.Fields[1].DBName)
}
