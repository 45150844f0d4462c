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
	"bytes"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/schemata/internal/pkg/fieldtype"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"gorm.io/datatypes"
)

// Field 集合字段，五类配置各占一个 JSON 列，settings 列为历史聚合配置
type Field struct {
	BaseModel
	FieldId      string `gorm:"column:field_id;type:varchar(64);not null;uniqueIndex" json:"fieldId"`                                                                                          // 字段ID（ULID）
	CollectionId string `gorm:"column:collection_id;type:varchar(64);not null;index:idx_field_collection_sort,priority:1;uniqueIndex:idx_field_collection_api,priority:1" json:"collectionId"` // 所属集合
	Name         string `gorm:"column:name;type:varchar(128);not null" json:"name"`                                                                                                            // 展示名
	ApiId        string `gorm:"column:api_id;type:varchar(128);not null;uniqueIndex:idx_field_collection_api,priority:2" json:"apiId"`                                                         // 外部接口标识，集合内唯一
	Type         string `gorm:"column:type;type:varchar(32);not null" json:"type"`                                                                                                             // 字段类型
	Required     bool   `gorm:"column:required;not null;default:false" json:"required"`                                                                                                        // 是否必填
	Description  string `gorm:"column:description;type:varchar(512)" json:"description"`                                                                                                       // 说明
	SortOrder    int    `gorm:"column:sort_order;not null;index:idx_field_collection_sort,priority:2" json:"sortOrder"`                                                                        // 集合内排序

	// 历史版本直接存放在字段上的配置
	Placeholder *string  `gorm:"column:placeholder;type:varchar(255)" json:"placeholder,omitempty"`
	HelpText    *string  `gorm:"column:help_text;type:varchar(512)" json:"helpText,omitempty"`
	Min         *float64 `gorm:"column:min" json:"min,omitempty"`
	Max         *float64 `gorm:"column:max" json:"max,omitempty"`

	Settings           datatypes.JSON `gorm:"column:settings;type:json" json:"settings"`
	ValidationSettings datatypes.JSON `gorm:"column:validation_settings;type:json" json:"validation_settings"`
	AppearanceSettings datatypes.JSON `gorm:"column:appearance_settings;type:json" json:"appearance_settings"`
	AdvancedSettings   datatypes.JSON `gorm:"column:advanced_settings;type:json" json:"advanced_settings"`
	UIOptionsSettings  datatypes.JSON `gorm:"column:ui_options_settings;type:json" json:"ui_options_settings"`
	GeneralSettings    datatypes.JSON `gorm:"column:general_settings;type:json" json:"general_settings"`
}

func (Field) TableName() string {
	return "t_field"
}

// ToRecord decodes the stored columns into a settings.Record. Columns that
// are not valid JSON are kept as their raw text so the adapter can report
// them as malformed.
func (f *Field) ToRecord() *settings.Record {
	r := &settings.Record{
		ID:           f.FieldId,
		CollectionID: f.CollectionId,
		Name:         f.Name,
		APIID:        f.ApiId,
		Type:         f.Type,
		Required:     f.Required,
		Description:  f.Description,
		SortOrder:    f.SortOrder,

		Legacy:     decodeColumn(f.Settings),
		Validation: decodeColumn(f.ValidationSettings),
		Appearance: decodeColumn(f.AppearanceSettings),
		Advanced:   decodeColumn(f.AdvancedSettings),
		UIOptions:  decodeColumn(f.UIOptionsSettings),
		General:    decodeColumn(f.GeneralSettings),
	}

	top := settings.Settings{}
	if f.Placeholder != nil {
		top[fieldtype.KeyPlaceholder] = *f.Placeholder
	}
	if f.HelpText != nil {
		top[fieldtype.KeyHelpText] = *f.HelpText
	}
	if f.Min != nil {
		top[fieldtype.KeyMin] = *f.Min
	}
	if f.Max != nil {
		top[fieldtype.KeyMax] = *f.Max
	}
	if len(top) > 0 {
		r.TopLevel = top
	}
	return r
}

// EncodeColumns turns reconciled category objects into column updates.
func EncodeColumns(columns map[string]settings.Settings) (map[string]any, error) {
	out := make(map[string]any, len(columns))
	for column, value := range columns {
		data, err := EncodeJSON(value)
		if err != nil {
			return nil, err
		}
		out[column] = data
	}
	return out, nil
}

// EncodeJSON encodes v for a JSON column. nil becomes {}.
func EncodeJSON(v settings.Settings) (datatypes.JSON, error) {
	if v == nil {
		v = settings.Settings{}
	}
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func decodeColumn(raw datatypes.JSON) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var v any
	if err := sonic.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}
	return v
}
