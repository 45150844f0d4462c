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
	"github.com/go-arcade/schemata/internal/engine/consts"
	"github.com/go-arcade/schemata/internal/engine/service"
	"github.com/go-arcade/schemata/internal/pkg/adapter"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/gofiber/fiber/v2"
)

// fieldRouter registers field routes
func (rt *Router) fieldRouter(r fiber.Router) {
	fieldGroup := r.Group("/collections/:collectionId")
	{
		fieldGroup.Get("/fields", rt.listAPIFields)                                     // GET /fields?appearance=&validation= - external read shape
		fieldGroup.Post("/fields", rt.createField)                                      // POST /fields - create field
		fieldGroup.Put("/fields/order", rt.reorderFields)                               // PUT /fields/order - reorder fields
		fieldGroup.Get("/fields/:fieldId", rt.getField)                                 // GET /fields/:fieldId - normalized field
		fieldGroup.Put("/fields/:fieldId", rt.updateField)                              // PUT /fields/:fieldId - update basic attributes
		fieldGroup.Delete("/fields/:fieldId", rt.deleteField)                           // DELETE /fields/:fieldId - delete field
		fieldGroup.Patch("/fields/:fieldId/settings/:category", rt.updateFieldSettings) // PATCH /fields/:fieldId/settings/:category - partial settings update
		fieldGroup.Post("/preview", rt.previewCollection)                               // POST /preview - render and validate a form
	}
}

func (rt *Router) listAPIFields(c *fiber.Ctx) error {
	opts := adapter.ProjectOptions{
		Appearance: c.QueryBool("appearance"),
		Validation: c.QueryBool("validation"),
	}

	fields, err := rt.Services.Field.ListAPIFields(c.UserContext(), c.Params("collectionId"), opts)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, fields)
	return nil
}

func (rt *Router) createField(c *fiber.Ctx) error {
	var req service.CreateFieldReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	field, err := rt.Services.Field.CreateField(c.UserContext(), c.Params("collectionId"), &req)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, field)
	return nil
}

func (rt *Router) getField(c *fiber.Ctx) error {
	field, err := rt.Services.Field.GetField(c.UserContext(), c.Params("collectionId"), c.Params("fieldId"))
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, field)
	return nil
}

func (rt *Router) updateField(c *fiber.Ctx) error {
	var req service.UpdateFieldReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	field, err := rt.Services.Field.UpdateField(c.UserContext(), c.Params("collectionId"), c.Params("fieldId"), &req)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, field)
	return nil
}

func (rt *Router) updateFieldSettings(c *fiber.Ctx) error {
	var patch settings.Settings
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	field, err := rt.Services.Field.UpdateSettings(c.UserContext(),
		c.Params("collectionId"), c.Params("fieldId"), c.Params("category"), patch)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, field)
	return nil
}

func (rt *Router) deleteField(c *fiber.Ctx) error {
	if err := rt.Services.Field.DeleteField(c.UserContext(), c.Params("collectionId"), c.Params("fieldId")); err != nil {
		return fail(c, err)
	}

	c.Locals(consts.OPERATION, "delete field")
	return nil
}

func (rt *Router) reorderFields(c *fiber.Ctx) error {
	var req service.ReorderFieldsReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	fields, err := rt.Services.Field.ReorderFields(c.UserContext(), c.Params("collectionId"), &req)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, fields)
	return nil
}

func (rt *Router) previewCollection(c *fiber.Ctx) error {
	var req service.PreviewReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}

	form, err := rt.Services.Field.Preview(c.UserContext(), c.Params("collectionId"), &req)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, form)
	return nil
}
