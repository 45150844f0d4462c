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

package middleware

import (
	"errors"

	"github.com/go-arcade/schemata/internal/engine/consts"
	httpx "github.com/go-arcade/schemata/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应中间件
// c.Locals(consts.DETAIL, value) 返回数据
// c.Locals(consts.OPERATION, "") 只返回操作结果
// handler 已经写出响应体时不做处理
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
				return httpx.WithRepErr(c.Status(fiber.StatusOK), httpx.NotFound.Code, httpx.NotFound.Msg, c.Path())
			}
			return err
		}

		status := c.Response().StatusCode()
		if status == 0 {
			c.Status(fiber.StatusOK)
			status = fiber.StatusOK
		}
		if status == fiber.StatusNotFound && len(c.Response().Body()) == 0 {
			return httpx.WithRepErr(c.Status(fiber.StatusOK), httpx.NotFound.Code, httpx.NotFound.Msg, c.Path())
		}
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return httpx.WithRepErr(c.Status(fiber.StatusOK), httpx.Failed.Code, httpx.Failed.Msg, c.Path())
		}

		if detail := c.Locals(consts.DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}
		if c.Locals(consts.OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}
		return nil
	}
}
