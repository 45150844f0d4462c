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

	"github.com/go-arcade/schemata/internal/engine/model"
	"github.com/go-arcade/schemata/pkg/cache"
	"github.com/go-arcade/schemata/pkg/database"
	"gorm.io/gorm"
)

type ICollectionRepository interface {
	CreateCollection(ctx context.Context, collection *model.Collection) error
	GetCollection(ctx context.Context, collectionId string) (*model.Collection, error)
	ListCollections(ctx context.Context) ([]*model.Collection, error)
	ExistsCollectionApiId(ctx context.Context, apiId string) (bool, error)
	DeleteCollection(ctx context.Context, collectionId string) error
}

type CollectionRepo struct {
	database.IDatabase
	cache.ICache
}

func NewCollectionRepo(db database.IDatabase, cache cache.ICache) ICollectionRepository {
	return &CollectionRepo{
		IDatabase: db,
		ICache:    cache,
	}
}

// CreateCollection creates a collection
func (cr *CollectionRepo) CreateCollection(ctx context.Context, collection *model.Collection) error {
	return cr.Database().WithContext(ctx).Create(collection).Error
}

// GetCollection gets a collection by collection ID
func (cr *CollectionRepo) GetCollection(ctx context.Context, collectionId string) (*model.Collection, error) {
	var collection model.Collection
	err := cr.Database().WithContext(ctx).
		Where("collection_id = ?", collectionId).
		First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListCollections lists all collections, newest first
func (cr *CollectionRepo) ListCollections(ctx context.Context) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := cr.Database().WithContext(ctx).
		Order("id DESC").
		Find(&collections).Error
	return collections, err
}

// ExistsCollectionApiId reports whether apiId is taken
func (cr *CollectionRepo) ExistsCollectionApiId(ctx context.Context, apiId string) (bool, error) {
	count, err := Count(database.Primary(cr.Database().WithContext(ctx)).Model(&model.Collection{}).Where("api_id = ?", apiId))
	return count > 0, err
}

// DeleteCollection deletes a collection and its fields in one transaction
func (cr *CollectionRepo) DeleteCollection(ctx context.Context, collectionId string) error {
	err := cr.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", collectionId).Delete(&model.Field{}).Error; err != nil {
			return err
		}
		res := tx.Where("collection_id = ?", collectionId).Delete(&model.Collection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateFieldList(ctx, cr.ICache, collectionId)
	return nil
}
