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
	"errors"

	"github.com/go-arcade/schemata/internal/engine/service"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/go-arcade/schemata/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// fail maps a service error onto the response code table
func fail(c *fiber.Ctx, err error) error {
	if ve, ok := settings.AsValidationError(err); ok {
		return http.WithRepErrDetail(c, http.ValidationFailed.Code, ve.Error(), ve.Fields)
	}

	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		return http.WithRepErr(c, http.CollectionNotFound.Code, http.CollectionNotFound.Msg, c.Path())
	case errors.Is(err, service.ErrFieldNotFound):
		return http.WithRepErr(c, http.FieldNotFound.Code, http.FieldNotFound.Msg, c.Path())
	case errors.Is(err, service.ErrUnknownCategory):
		return http.WithRepErr(c, http.UnknownCategory.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrUnknownFieldType):
		return http.WithRepErr(c, http.UnknownFieldType.Code, err.Error(), c.Path())
	}
	return http.WithRepErr(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
}

func badBody(c *fiber.Ctx) error {
	return http.WithRepErr(c, http.RequestParameterParsingFailed.Code, "invalid request body", c.Path())
}
