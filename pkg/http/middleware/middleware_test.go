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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/schemata/internal/engine/consts"
	"github.com/go-arcade/schemata/pkg/id"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code   int    `json:"code"`
	Detail any    `json:"detail"`
	Msg    string `json:"msg"`
	ErrMsg string `json:"errMsg"`
	Path   string `json:"path"`
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, sonic.Unmarshal(body, &env))
	}
	return resp, env
}

func TestRequestMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		generate bool
	}{
		{name: "keeps existing id", incoming: "req-12345"},
		{name: "generates when missing", generate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(RequestMiddleware())
			app.Get("/test", func(c *fiber.Ctx) error {
				assert.Equal(t, c.Get(HeaderRequestId), c.Locals("request_id"))
				return c.SendString("ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestId, tt.incoming)
			}
			resp, _ := doRequest(t, app, req)

			got := resp.Header.Get(HeaderRequestId)
			if tt.generate {
				assert.True(t, id.IsUUID(got), "got %q", got)
			} else {
				assert.Equal(t, tt.incoming, got)
			}
		})
	}
}

func TestRealIPMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    any
	}{
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 10.0.0.3 "}, want: "10.0.0.3"},
		{name: "none", headers: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got any
			app := fiber.New()
			app.Use(RealIPMiddleware())
			app.Get("/test", func(c *fiber.Ctx) error {
				got = c.Locals("ip")
				return c.SendString("ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			doRequest(t, app, req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware, UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(consts.DETAIL, map[string]any{"name": "posts"})
		return nil
	})
	app.Delete("/operation", func(c *fiber.Ctx) error {
		c.Locals(consts.OPERATION, "")
		return nil
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, env := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/detail", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, map[string]any{"name": "posts"}, env.Detail)

	_, env = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/operation", nil))
	assert.Equal(t, 200, env.Code)
	assert.Nil(t, env.Detail)

	resp, env = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 4004, env.Code)
	assert.Equal(t, "/nowhere", env.Path)

	resp, env = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5000, env.Code)
	assert.NotContains(t, env.ErrMsg, "boom")
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/metrics"))
	assert.False(t, skipAccessLog("/healthz"))
	assert.False(t, skipAccessLog("/api/v1/collections"))
}
