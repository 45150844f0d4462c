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
	"fmt"
	"runtime/debug"

	"github.com/go-arcade/schemata/pkg/http"
	"github.com/go-arcade/schemata/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware 捕获 panic，返回统一的内部错误
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered",
				"path", c.Path(),
				"method", c.Method(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			err = http.WithRepErr(c.Status(fiber.StatusOK), http.InternalError.Code, panicMessage(r), c.Path())
		}
	}()

	return c.Next()
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case http.ResponseErr:
		// 预期内的错误可以直接返回给客户端
		if msg, ok := v.ErrMsg.(string); ok {
			return msg
		}
	case *http.Response:
		return v.Msg
	}
	// 其他错误一律返回内部错误，避免泄露堆栈
	return http.InternalError.Msg
}
