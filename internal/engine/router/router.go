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
	"github.com/bytedance/sonic"
	"github.com/go-arcade/schemata/internal/engine/service"
	"github.com/go-arcade/schemata/pkg/http"
	"github.com/go-arcade/schemata/pkg/http/middleware"
	"github.com/go-arcade/schemata/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type Router struct {
	Http     *http.Http
	Services *service.Services
}

func NewRouter(httpConf *http.Http, services *service.Services) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Schemata",
		DisableStartupMessage: true,
		ReadTimeout:           rt.Http.ReadTimeoutDuration(),
		WriteTimeout:          rt.Http.WriteTimeoutDuration(),
		IdleTimeout:           rt.Http.IdleTimeoutDuration(),
		BodyLimit:             rt.Http.BodyLimitBytes(),
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})

	// 中间件
	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(),
		middleware.RequestMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.AccessLogMiddleware(rt.Http),
		middleware.UnifiedResponseMiddleware(),
	)

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// 版本信息
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	api := app.Group("/api/v1")
	rt.collectionRouter(api)
	rt.fieldRouter(api)

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErr(c, http.NotFound.Code, "request path not found", c.Path())
	})

	return app
}
