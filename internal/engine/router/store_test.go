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

package router

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/go-arcade/schemata/internal/engine/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memRepo 同时实现集合与字段仓储，仅用于路由测试
type memRepo struct {
	mu          sync.Mutex
	collections []model.Collection
	fields      []model.Field
}

func (m *memRepo) CreateCollection(_ context.Context, c *model.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = append(m.collections, *c)
	return nil
}

func (m *memRepo) GetCollection(_ context.Context, collectionId string) (*model.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.collections {
		if c.CollectionId == collectionId {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) ListCollections(_ context.Context) ([]*model.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Collection, 0, len(m.collections))
	for i := range m.collections {
		c := m.collections[i]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memRepo) ExistsCollectionApiId(_ context.Context, apiId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.collections, func(c model.Collection) bool { return c.ApiId == apiId }), nil
}

func (m *memRepo) DeleteCollection(_ context.Context, collectionId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.collections)
	m.collections = slices.DeleteFunc(m.collections, func(c model.Collection) bool { return c.CollectionId == collectionId })
	if len(m.collections) == n {
		return gorm.ErrRecordNotFound
	}
	m.fields = slices.DeleteFunc(m.fields, func(f model.Field) bool { return f.CollectionId == collectionId })
	return nil
}

func (m *memRepo) CreateField(_ context.Context, f *model.Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields = append(m.fields, *f)
	return nil
}

func (m *memRepo) find(collectionId, fieldId string) *model.Field {
	for i := range m.fields {
		if m.fields[i].CollectionId == collectionId && m.fields[i].FieldId == fieldId {
			return &m.fields[i]
		}
	}
	return nil
}

func (m *memRepo) GetField(_ context.Context, collectionId, fieldId string) (*model.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.find(collectionId, fieldId)
	if f == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memRepo) ListFields(_ context.Context, collectionId string) ([]*model.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Field
	for _, f := range m.fields {
		if f.CollectionId == collectionId {
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *memRepo) UpdateField(_ context.Context, collectionId, fieldId string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.find(collectionId, fieldId)
	if f == nil {
		return gorm.ErrRecordNotFound
	}
	columns := map[string]*datatypes.JSON{
		"settings":            &f.Settings,
		"validation_settings": &f.ValidationSettings,
		"appearance_settings": &f.AppearanceSettings,
		"advanced_settings":   &f.AdvancedSettings,
		"ui_options_settings": &f.UIOptionsSettings,
		"general_settings":    &f.GeneralSettings,
	}
	for k, v := range updates {
		switch k {
		case "name":
			f.Name = v.(string)
		case "api_id":
			f.ApiId = v.(string)
		case "required":
			f.Required = v.(bool)
		case "description":
			f.Description = v.(string)
		default:
			if col, ok := columns[k]; ok {
				*col = v.(datatypes.JSON)
			}
		}
	}
	return nil
}

func (m *memRepo) DeleteField(_ context.Context, collectionId, fieldId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.fields)
	m.fields = slices.DeleteFunc(m.fields, func(f model.Field) bool {
		return f.CollectionId == collectionId && f.FieldId == fieldId
	})
	if len(m.fields) == n {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *memRepo) NextSortOrder(_ context.Context, collectionId string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := 0
	for _, f := range m.fields {
		if f.CollectionId == collectionId && f.SortOrder >= next {
			next = f.SortOrder + 1
		}
	}
	return next, nil
}

func (m *memRepo) ExistsFieldApiId(_ context.Context, collectionId, apiId, excludeFieldId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.fields, func(f model.Field) bool {
		return f.CollectionId == collectionId && f.ApiId == apiId && f.FieldId != excludeFieldId
	}), nil
}

func (m *memRepo) ReorderFields(_ context.Context, collectionId string, fieldIds []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, fid := range fieldIds {
		if f := m.find(collectionId, fid); f != nil {
			f.SortOrder = i
		}
	}
	return nil
}
