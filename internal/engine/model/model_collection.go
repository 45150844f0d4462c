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
	"github.com/go-arcade/schemata/pkg/database"
)

func init() {
	database.RegisterModels(&Collection{}, &Field{})
}

// Collection 内容类型（集合），拥有一组有序字段
type Collection struct {
	BaseModel
	CollectionId string `gorm:"column:collection_id;type:varchar(64);not null;uniqueIndex" json:"collectionId"` // 集合ID（UUID）
	Name         string `gorm:"column:name;type:varchar(128);not null" json:"name"`                            // 展示名
	ApiId        string `gorm:"column:api_id;type:varchar(128);not null;uniqueIndex" json:"apiId"`             // 外部接口标识
	Description  string `gorm:"column:description;type:varchar(512)" json:"description"`                       // 说明
}

func (Collection) TableName() string {
	return "t_collection"
}
