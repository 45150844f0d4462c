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

package service

import (
	"github.com/go-arcade/schemata/internal/engine/repo"
)

// Services 统一管理所有 service
type Services struct {
	Collection *CollectionService
	Field      *FieldService
}

// NewServices 初始化所有 service
func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Collection: NewCollectionService(repos.Collection),
		Field:      NewFieldService(repos.Collection, repos.Field),
	}
}
