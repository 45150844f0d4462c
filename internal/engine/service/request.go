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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/go-playground/validator/v10"
)

// CreateCollectionReq is the body of POST /collections
type CreateCollectionReq struct {
	Name        string `json:"name" validate:"required,max=128"`
	ApiId       string `json:"apiId" validate:"omitempty,max=128"`
	Description string `json:"description" validate:"max=512"`
}

// CreateFieldReq is the body of POST /collections/:cid/fields
type CreateFieldReq struct {
	Name        string `json:"name" validate:"required,max=128"`
	ApiId       string `json:"apiId" validate:"omitempty,max=128"`
	Type        string `json:"type" validate:"required"`
	Required    bool   `json:"required"`
	Description string `json:"description" validate:"max=512"`
}

// UpdateFieldReq carries the basic attributes of a field. nil members are
// left unchanged.
type UpdateFieldReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=128"`
	ApiId       *string `json:"apiId" validate:"omitempty,min=1,max=128"`
	Required    *bool   `json:"required"`
	Description *string `json:"description" validate:"omitempty,max=512"`
}

// ReorderFieldsReq lists every field id of a collection in the new order
type ReorderFieldsReq struct {
	FieldIds []string `json:"fieldIds" validate:"required,min=1,unique,dive,required"`
}

// PreviewReq holds submitted values keyed by field apiId
type PreviewReq struct {
	Values map[string]any `json:"values"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误信息中使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs the struct tags of req and reports failures as a
// *settings.ValidationError keyed by json field name.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = describe(fe)
	}
	return &settings.ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s", fe.Param())
	case "unique":
		return "must not contain duplicates"
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}

func invalid(field, msg string) error {
	return &settings.ValidationError{Fields: map[string]string{field: msg}}
}
