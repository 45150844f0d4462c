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
	"github.com/gofiber/fiber/v2"
)

// collectionRouter registers collection routes
func (rt *Router) collectionRouter(r fiber.Router) {
	collectionGroup := r.Group("/collections")
	{
		collectionGroup.Post("/", rt.createCollection)                // POST /collections - create collection
		collectionGroup.Get("/", rt.listCollections)                  // GET /collections - list collections
		collectionGroup.Get("/:collectionId", rt.getCollection)       // GET /collections/:collectionId - get collection
		collectionGroup.Delete("/:collectionId", rt.deleteCollection) // DELETE /collections/:collectionId - delete collection and its fields
	}
}

func (rt *Router) createCollection(c *fiber.Ctx) error {
	var req service.CreateCollectionReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	collection, err := rt.Services.Collection.CreateCollection(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, collection)
	return nil
}

func (rt *Router) listCollections(c *fiber.Ctx) error {
	collections, err := rt.Services.Collection.ListCollections(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, map[string]any{"list": collections, "total": len(collections)})
	return nil
}

func (rt *Router) getCollection(c *fiber.Ctx) error {
	collection, err := rt.Services.Collection.GetCollection(c.UserContext(), c.Params("collectionId"))
	if err != nil {
		return fail(c, err)
	}

	c.Locals(consts.DETAIL, collection)
	return nil
}

func (rt *Router) deleteCollection(c *fiber.Ctx) error {
	if err := rt.Services.Collection.DeleteCollection(c.UserContext(), c.Params("collectionId")); err != nil {
		return fail(c, err)
	}

	c.Locals(consts.OPERATION, "delete collection")
	return nil
}
