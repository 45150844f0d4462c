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
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/go-arcade/schemata/internal/engine/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memStore 为 service 测试提供内存仓储
type memStore struct {
	mu          sync.Mutex
	collections []*model.Collection
	fields      map[string]*model.Field
	updates     []map[string]any
	// staleExists 让 Exists* 总是返回 false，模拟并发请求同时通过预检查
	staleExists bool
}

func newMemStore() *memStore {
	return &memStore{fields: map[string]*model.Field{}}
}

func (s *memStore) CreateCollection(_ context.Context, c *model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.collections, func(e *model.Collection) bool { return e.ApiId == c.ApiId }) {
		return gorm.ErrDuplicatedKey
	}
	cp := *c
	s.collections = append(s.collections, &cp)
	return nil
}

func (s *memStore) GetCollection(_ context.Context, collectionId string) (*model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.collections {
		if c.CollectionId == collectionId {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) ListCollections(_ context.Context) ([]*model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.collections), nil
}

func (s *memStore) ExistsCollectionApiId(_ context.Context, apiId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staleExists {
		return false, nil
	}
	return slices.ContainsFunc(s.collections, func(c *model.Collection) bool { return c.ApiId == apiId }), nil
}

func (s *memStore) DeleteCollection(_ context.Context, collectionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.collections, func(c *model.Collection) bool { return c.CollectionId == collectionId })
	if idx < 0 {
		return gorm.ErrRecordNotFound
	}
	s.collections = slices.Delete(s.collections, idx, idx+1)
	for fid, f := range s.fields {
		if f.CollectionId == collectionId {
			delete(s.fields, fid)
		}
	}
	return nil
}

func (s *memStore) CreateField(_ context.Context, f *model.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apiIdTaken(f.CollectionId, f.ApiId, f.FieldId) {
		return gorm.ErrDuplicatedKey
	}
	cp := *f
	s.fields[f.FieldId] = &cp
	return nil
}

func (s *memStore) GetField(_ context.Context, collectionId, fieldId string) (*model.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[fieldId]
	if !ok || f.CollectionId != collectionId {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *memStore) ListFields(_ context.Context, collectionId string) ([]*model.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Field
	for _, f := range s.fields {
		if f.CollectionId == collectionId {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s *memStore) UpdateField(_ context.Context, collectionId, fieldId string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[fieldId]
	if !ok || f.CollectionId != collectionId {
		return gorm.ErrRecordNotFound
	}
	if apiId, ok := updates["api_id"].(string); ok && s.apiIdTaken(collectionId, apiId, fieldId) {
		return gorm.ErrDuplicatedKey
	}
	s.updates = append(s.updates, updates)
	for column, v := range updates {
		switch column {
		case "name":
			f.Name = v.(string)
		case "api_id":
			f.ApiId = v.(string)
		case "required":
			f.Required = v.(bool)
		case "description":
			f.Description = v.(string)
		case "settings":
			f.Settings = v.(datatypes.JSON)
		case "validation_settings":
			f.ValidationSettings = v.(datatypes.JSON)
		case "appearance_settings":
			f.AppearanceSettings = v.(datatypes.JSON)
		case "advanced_settings":
			f.AdvancedSettings = v.(datatypes.JSON)
		case "ui_options_settings":
			f.UIOptionsSettings = v.(datatypes.JSON)
		case "general_settings":
			f.GeneralSettings = v.(datatypes.JSON)
		}
	}
	return nil
}

func (s *memStore) DeleteField(_ context.Context, collectionId, fieldId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[fieldId]
	if !ok || f.CollectionId != collectionId {
		return gorm.ErrRecordNotFound
	}
	delete(s.fields, fieldId)
	return nil
}

func (s *memStore) NextSortOrder(_ context.Context, collectionId string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 0
	for _, f := range s.fields {
		if f.CollectionId == collectionId && f.SortOrder >= next {
			next = f.SortOrder + 1
		}
	}
	return next, nil
}

func (s *memStore) ExistsFieldApiId(_ context.Context, collectionId, apiId, excludeFieldId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staleExists {
		return false, nil
	}
	return s.apiIdTaken(collectionId, apiId, excludeFieldId), nil
}

func (s *memStore) ReorderFields(_ context.Context, collectionId string, fieldIds []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, fid := range fieldIds {
		if f, ok := s.fields[fid]; ok && f.CollectionId == collectionId {
			f.SortOrder = i
		}
	}
	return nil
}

// apiIdTaken mirrors the unique index on (collection_id, api_id)
func (s *memStore) apiIdTaken(collectionId, apiId, excludeFieldId string) bool {
	for _, f := range s.fields {
		if f.CollectionId == collectionId && f.ApiId == apiId && f.FieldId != excludeFieldId {
			return true
		}
	}
	return false
}
