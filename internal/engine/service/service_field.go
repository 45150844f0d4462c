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
	"fmt"
	"slices"
	"time"

	"github.com/go-arcade/schemata/internal/engine/model"
	"github.com/go-arcade/schemata/internal/engine/repo"
	"github.com/go-arcade/schemata/internal/pkg/adapter"
	"github.com/go-arcade/schemata/internal/pkg/fieldtype"
	"github.com/go-arcade/schemata/internal/pkg/preview"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/go-arcade/schemata/pkg/id"
	"github.com/go-arcade/schemata/pkg/log"
	"github.com/go-arcade/schemata/pkg/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

var emptyObject = datatypes.JSON("{}")

type FieldService struct {
	collectionRepo repo.ICollectionRepository
	fieldRepo      repo.IFieldRepository
	adaptOpts      []adapter.Option
}

func NewFieldService(collectionRepo repo.ICollectionRepository, fieldRepo repo.IFieldRepository) *FieldService {
	return &FieldService{
		collectionRepo: collectionRepo,
		fieldRepo:      fieldRepo,
		adaptOpts:      []adapter.Option{adapter.WithMalformedHandler(reportMalformed)},
	}
}

// reportMalformed 记录被替换为空对象的历史脏数据
func reportMalformed(m adapter.Malformed) {
	log.Warnw("malformed field settings replaced with empty object",
		"fieldId", m.FieldID,
		"location", m.Location,
		"value", fmt.Sprintf("%v", m.Value),
	)
	metrics.RecordMalformed(m.Location)
}

// CreateField creates a field at the end of the collection with empty settings
func (fs *FieldService) CreateField(ctx context.Context, collectionId string, req *CreateFieldReq) (*adapter.NormalizedField, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !fieldtype.Known(req.Type) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, req.Type)
	}
	if err := fs.ensureCollection(ctx, collectionId); err != nil {
		return nil, err
	}

	apiId, err := resolveApiId(req.ApiId, req.Name)
	if err != nil {
		return nil, err
	}
	if err := fs.ensureApiIdFree(ctx, collectionId, apiId, ""); err != nil {
		return nil, err
	}

	sortOrder, err := fs.fieldRepo.NextSortOrder(ctx, collectionId)
	if err != nil {
		log.Errorf("failed to get next sort order: %v", err)
		return nil, err
	}

	field := &model.Field{
		FieldId:            id.GetUlid(),
		CollectionId:       collectionId,
		Name:               req.Name,
		ApiId:              apiId,
		Type:               string(fieldtype.Normalize(req.Type)),
		Required:           req.Required,
		Description:        req.Description,
		SortOrder:          sortOrder,
		Settings:           emptyObject,
		ValidationSettings: emptyObject,
		AppearanceSettings: emptyObject,
		AdvancedSettings:   emptyObject,
		UIOptionsSettings:  emptyObject,
		GeneralSettings:    emptyObject,
	}
	if err := fs.fieldRepo.CreateField(ctx, field); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fieldApiIdTaken()
		}
		log.Errorf("failed to create field: %v", err)
		return nil, err
	}

	log.Infow("field created",
		"collectionId", collectionId,
		"fieldId", field.FieldId,
		"type", field.Type,
	)
	n := fs.adapt(field)
	return &n, nil
}

// GetField gets the normalized view of a field
func (fs *FieldService) GetField(ctx context.Context, collectionId, fieldId string) (*adapter.NormalizedField, error) {
	field, err := fs.getField(ctx, collectionId, fieldId)
	if err != nil {
		return nil, err
	}
	n := fs.adapt(field)
	return &n, nil
}

// ListFields lists the normalized fields of a collection in sort order
func (fs *FieldService) ListFields(ctx context.Context, collectionId string) ([]adapter.NormalizedField, error) {
	if err := fs.ensureCollection(ctx, collectionId); err != nil {
		return nil, err
	}
	fields, err := fs.fieldRepo.ListFields(ctx, collectionId)
	if err != nil {
		log.Errorf("failed to list fields: %v", err)
		return nil, err
	}

	records := make([]*settings.Record, 0, len(fields))
	for _, f := range fields {
		records = append(records, f.ToRecord())
	}
	normalized := adapter.AdaptAll(records, fs.adaptOpts...)
	metrics.RecordAdapted(len(normalized))
	return normalized, nil
}

// ListAPIFields lists the fields of a collection in the external read shape
func (fs *FieldService) ListAPIFields(ctx context.Context, collectionId string, opts adapter.ProjectOptions) ([]adapter.APIField, error) {
	fields, err := fs.ListFields(ctx, collectionId)
	if err != nil {
		return nil, err
	}
	return adapter.ProjectAll(fields, opts), nil
}

// UpdateField updates name, apiId, required and description of a field
func (fs *FieldService) UpdateField(ctx context.Context, collectionId, fieldId string, req *UpdateFieldReq) (*adapter.NormalizedField, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	field, err := fs.getField(ctx, collectionId, fieldId)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
		field.Name = *req.Name
	}
	if req.ApiId != nil && *req.ApiId != field.ApiId {
		apiId, err := resolveApiId(*req.ApiId, field.Name)
		if err != nil {
			return nil, err
		}
		if err := fs.ensureApiIdFree(ctx, collectionId, apiId, fieldId); err != nil {
			return nil, err
		}
		updates["api_id"] = apiId
		field.ApiId = apiId
	}
	if req.Required != nil {
		updates["required"] = *req.Required
		field.Required = *req.Required
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		field.Description = *req.Description
	}

	if len(updates) > 0 {
		if err := fs.fieldRepo.UpdateField(ctx, collectionId, fieldId, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fieldApiIdTaken()
			}
			return nil, fs.mapFieldErr(err, "update field")
		}
		log.Infow("field updated", "collectionId", collectionId, "fieldId", fieldId)
	}

	n := fs.adapt(field)
	return &n, nil
}

// UpdateSettings applies a partial update to one settings category of a
// field and persists only the columns the reconciler touched.
func (fs *FieldService) UpdateSettings(ctx context.Context, collectionId, fieldId, rawCategory string, patch settings.Settings) (*adapter.NormalizedField, error) {
	start := time.Now()
	category, err := settings.ParseCategory(rawCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, rawCategory)
	}

	result := resultError
	defer func() {
		metrics.RecordSettingsUpdate(string(category), result, time.Since(start))
	}()

	field, err := fs.getField(ctx, collectionId, fieldId)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			result = resultNotFound
		}
		return nil, err
	}

	update, err := settings.ApplyCategoryUpdate(field.ToRecord(), category, patch)
	if err != nil {
		if _, ok := settings.AsValidationError(err); ok {
			result = resultInvalid
		}
		return nil, err
	}

	columns, err := model.EncodeColumns(update.Columns)
	if err != nil {
		log.Errorf("failed to encode settings columns: %v", err)
		return nil, err
	}
	if err := fs.fieldRepo.UpdateField(ctx, collectionId, fieldId, columns); err != nil {
		err = fs.mapFieldErr(err, "update field settings")
		if errors.Is(err, ErrFieldNotFound) {
			result = resultNotFound
		}
		return nil, err
	}

	result = resultOK
	log.Infow("field settings updated",
		"collectionId", collectionId,
		"fieldId", fieldId,
		"category", category,
		"columns", len(columns),
	)
	n := adapter.Adapt(update.Record, fs.adaptOpts...)
	return &n, nil
}

// DeleteField deletes a field
func (fs *FieldService) DeleteField(ctx context.Context, collectionId, fieldId string) error {
	if err := fs.fieldRepo.DeleteField(ctx, collectionId, fieldId); err != nil {
		return fs.mapFieldErr(err, "delete field")
	}
	log.Infow("field deleted", "collectionId", collectionId, "fieldId", fieldId)
	return nil
}

// ReorderFields reassigns sort orders. fieldIds must name every field of
// the collection exactly once.
func (fs *FieldService) ReorderFields(ctx context.Context, collectionId string, req *ReorderFieldsReq) ([]adapter.NormalizedField, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	current, err := fs.ListFields(ctx, collectionId)
	if err != nil {
		return nil, err
	}

	existing := make([]string, 0, len(current))
	for _, f := range current {
		existing = append(existing, f.ID)
	}
	requested := slices.Clone(req.FieldIds)
	slices.Sort(existing)
	slices.Sort(requested)
	if !slices.Equal(existing, requested) {
		return nil, invalid("fieldIds", "must list every field of the collection exactly once")
	}

	if err := fs.fieldRepo.ReorderFields(ctx, collectionId, req.FieldIds); err != nil {
		log.Errorf("failed to reorder fields: %v", err)
		return nil, err
	}
	log.Infow("fields reordered", "collectionId", collectionId, "count", len(req.FieldIds))
	return fs.ListFields(ctx, collectionId)
}

// Preview renders the collection as a form and validates the submitted values
func (fs *FieldService) Preview(ctx context.Context, collectionId string, req *PreviewReq) (*preview.Form, error) {
	fields, err := fs.ListFields(ctx, collectionId)
	if err != nil {
		return nil, err
	}
	form := preview.Build(fields, req.Values)
	return &form, nil
}

func (fs *FieldService) adapt(field *model.Field) adapter.NormalizedField {
	return adapter.Adapt(field.ToRecord(), fs.adaptOpts...)
}

func (fs *FieldService) getField(ctx context.Context, collectionId, fieldId string) (*model.Field, error) {
	field, err := fs.fieldRepo.GetField(ctx, collectionId, fieldId)
	if err != nil {
		return nil, fs.mapFieldErr(err, "get field")
	}
	return field, nil
}

func (fs *FieldService) mapFieldErr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrFieldNotFound
	}
	log.Errorf("failed to %s: %v", op, err)
	return err
}

func (fs *FieldService) ensureCollection(ctx context.Context, collectionId string) error {
	if _, err := fs.collectionRepo.GetCollection(ctx, collectionId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectionNotFound
		}
		log.Errorf("failed to get collection: %v", err)
		return err
	}
	return nil
}

// fieldApiIdTaken is returned by the pre-check and by the unique index on
// (collection_id, api_id) when a concurrent request wins the race.
func fieldApiIdTaken() error {
	return invalid("apiId", "is already in use in this collection")
}

func (fs *FieldService) ensureApiIdFree(ctx context.Context, collectionId, apiId, excludeFieldId string) error {
	exists, err := fs.fieldRepo.ExistsFieldApiId(ctx, collectionId, apiId, excludeFieldId)
	if err != nil {
		log.Errorf("failed to check field api id: %v", err)
		return err
	}
	if exists {
		return fieldApiIdTaken()
	}
	return nil
}
