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
	"context"
	"time"

	"github.com/go-arcade/schemata/internal/engine/consts"
	"github.com/go-arcade/schemata/internal/engine/model"
	"github.com/go-arcade/schemata/pkg/cache"
	"github.com/go-arcade/schemata/pkg/database"
	"gorm.io/gorm"
)

type IFieldRepository interface {
	CreateField(ctx context.Context, field *model.Field) error
	GetField(ctx context.Context, collectionId, fieldId string) (*model.Field, error)
	ListFields(ctx context.Context, collectionId string) ([]*model.Field, error)
	UpdateField(ctx context.Context, collectionId, fieldId string, updates map[string]any) error
	DeleteField(ctx context.Context, collectionId, fieldId string) error
	NextSortOrder(ctx context.Context, collectionId string) (int, error)
	ExistsFieldApiId(ctx context.Context, collectionId, apiId, excludeFieldId string) (bool, error)
	ReorderFields(ctx context.Context, collectionId string, fieldIds []string) error
}

const (
	// 字段列表缓存过期时间
	fieldListCacheTTL = 5 * time.Minute
)

type FieldRepo struct {
	database.IDatabase
	cache.ICache
	ttl time.Duration
}

func NewFieldRepo(db database.IDatabase, c cache.ICache) IFieldRepository {
	return &FieldRepo{
		IDatabase: db,
		ICache:    c,
		ttl:       fieldListCacheTTL,
	}
}

// NewFieldRepoWithTTL is NewFieldRepo with a configured list cache TTL
func NewFieldRepoWithTTL(db database.IDatabase, c cache.ICache, ttl time.Duration) IFieldRepository {
	fr := NewFieldRepo(db, c).(*FieldRepo)
	if ttl > 0 {
		fr.ttl = ttl
	}
	return fr
}

// CreateField creates a field
func (fr *FieldRepo) CreateField(ctx context.Context, field *model.Field) error {
	if err := fr.Database().WithContext(ctx).Create(field).Error; err != nil {
		return err
	}
	invalidateFieldList(ctx, fr.ICache, field.CollectionId)
	return nil
}

// GetField gets a field of a collection; always read from the database
func (fr *FieldRepo) GetField(ctx context.Context, collectionId, fieldId string) (*model.Field, error) {
	var field model.Field
	err := fr.Database().WithContext(ctx).
		Where("collection_id = ? AND field_id = ?", collectionId, fieldId).
		First(&field).Error
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// ListFields lists the fields of a collection ordered by sort_order (with cache)
func (fr *FieldRepo) ListFields(ctx context.Context, collectionId string) ([]*model.Field, error) {
	queryFunc := func(ctx context.Context) ([]*model.Field, error) {
		var fields []*model.Field
		err := fr.Database().WithContext(ctx).
			Where("collection_id = ?", collectionId).
			Order("sort_order ASC, id ASC").
			Find(&fields).Error
		return fields, err
	}

	cq := cache.NewCachedQuery(
		fr.ICache,
		fieldListKey,
		queryFunc,
		cache.WithTTL[[]*model.Field](fr.ttl),
		cache.WithLogPrefix[[]*model.Field]("[FieldRepo]"),
	)
	return cq.Get(ctx, collectionId)
}

// UpdateField updates the given columns of a field. Missing fields surface
// as gorm.ErrRecordNotFound.
func (fr *FieldRepo) UpdateField(ctx context.Context, collectionId, fieldId string, updates map[string]any) error {
	db := fr.Database().WithContext(ctx)
	res := db.Model(&model.Field{}).
		Where("collection_id = ? AND field_id = ?", collectionId, fieldId).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL 在值未变化时影响行数为 0，需要再确认记录是否存在
		count, err := Count(database.Primary(db).Model(&model.Field{}).Where("collection_id = ? AND field_id = ?", collectionId, fieldId))
		if err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	invalidateFieldList(ctx, fr.ICache, collectionId)
	return nil
}

// DeleteField deletes a field
func (fr *FieldRepo) DeleteField(ctx context.Context, collectionId, fieldId string) error {
	res := fr.Database().WithContext(ctx).
		Where("collection_id = ? AND field_id = ?", collectionId, fieldId).
		Delete(&model.Field{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	invalidateFieldList(ctx, fr.ICache, collectionId)
	return nil
}

// NextSortOrder returns max(sort_order)+1, or 0 for an empty collection
func (fr *FieldRepo) NextSortOrder(ctx context.Context, collectionId string) (int, error) {
	var next int
	err := database.Primary(fr.Database().WithContext(ctx)).
		Model(&model.Field{}).
		Where("collection_id = ?", collectionId).
		Select("COALESCE(MAX(sort_order), -1) + 1").
		Scan(&next).Error
	return next, err
}

// ExistsFieldApiId reports whether apiId is used by another field of the collection
func (fr *FieldRepo) ExistsFieldApiId(ctx context.Context, collectionId, apiId, excludeFieldId string) (bool, error) {
	query := database.Primary(fr.Database().WithContext(ctx)).
		Model(&model.Field{}).
		Where("collection_id = ? AND api_id = ?", collectionId, apiId)
	if excludeFieldId != "" {
		query = query.Where("field_id <> ?", excludeFieldId)
	}
	count, err := Count(query)
	return count > 0, err
}

// ReorderFields assigns sort_order 0..n-1 following fieldIds
func (fr *FieldRepo) ReorderFields(ctx context.Context, collectionId string, fieldIds []string) error {
	err := fr.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, fieldId := range fieldIds {
			err := tx.Model(&model.Field{}).
				Where("collection_id = ? AND field_id = ?", collectionId, fieldId).
				Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	invalidateFieldList(ctx, fr.ICache, collectionId)
	return nil
}

func fieldListKey(params ...any) string {
	return consts.FieldListKeyByCollection + params[0].(string)
}

// invalidateFieldList 清除集合字段列表缓存
func invalidateFieldList(ctx context.Context, c cache.ICache, collectionId string) {
	if c == nil {
		return
	}
	cq := cache.NewCachedQuery[[]*model.Field](c, fieldListKey, nil)
	_ = cq.Invalidate(ctx, collectionId)
}
