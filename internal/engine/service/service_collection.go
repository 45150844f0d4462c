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
	"errors"

	"github.com/go-arcade/schemata/internal/engine/model"
	"github.com/go-arcade/schemata/internal/engine/repo"
	"github.com/go-arcade/schemata/pkg/id"
	"github.com/go-arcade/schemata/pkg/log"
	"gorm.io/gorm"
)

type CollectionService struct {
	collectionRepo repo.ICollectionRepository
}

func NewCollectionService(collectionRepo repo.ICollectionRepository) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
	}
}

// CreateCollection creates a collection
func (cs *CollectionService) CreateCollection(ctx context.Context, req *CreateCollectionReq) (*model.Collection, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	apiId, err := resolveApiId(req.ApiId, req.Name)
	if err != nil {
		return nil, err
	}
	exists, err := cs.collectionRepo.ExistsCollectionApiId(ctx, apiId)
	if err != nil {
		log.Errorf("failed to check collection api id: %v", err)
		return nil, err
	}
	if exists {
		return nil, invalid("apiId", "is already in use")
	}

	collection := &model.Collection{
		CollectionId: id.GetUUID(),
		Name:         req.Name,
		ApiId:        apiId,
		Description:  req.Description,
	}
	if err := cs.collectionRepo.CreateCollection(ctx, collection); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("apiId", "is already in use")
		}
		log.Errorf("failed to create collection: %v", err)
		return nil, err
	}

	log.Infow("collection created", "collectionId", collection.CollectionId, "apiId", apiId)
	return collection, nil
}

// GetCollection gets a collection by collection ID
func (cs *CollectionService) GetCollection(ctx context.Context, collectionId string) (*model.Collection, error) {
	collection, err := cs.collectionRepo.GetCollection(ctx, collectionId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		log.Errorf("failed to get collection: %v", err)
		return nil, err
	}
	return collection, nil
}

// ListCollections lists all collections
func (cs *CollectionService) ListCollections(ctx context.Context) ([]*model.Collection, error) {
	collections, err := cs.collectionRepo.ListCollections(ctx)
	if err != nil {
		log.Errorf("failed to list collections: %v", err)
		return nil, err
	}
	return collections, nil
}

// DeleteCollection deletes a collection together with its fields
func (cs *CollectionService) DeleteCollection(ctx context.Context, collectionId string) error {
	if err := cs.collectionRepo.DeleteCollection(ctx, collectionId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectionNotFound
		}
		log.Errorf("failed to delete collection: %v", err)
		return err
	}

	log.Infow("collection deleted", "collectionId", collectionId)
	return nil
}
