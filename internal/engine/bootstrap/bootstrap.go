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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-arcade/schemata/internal/engine/config"
	"github.com/go-arcade/schemata/internal/engine/router"
	"github.com/go-arcade/schemata/pkg/log"
	"github.com/go-arcade/schemata/pkg/metrics"
	"github.com/go-arcade/schemata/pkg/pprof"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp *fiber.App
	Metrics *metrics.Server
	Pprof   *pprof.Server
	Logger  *log.Logger
	AppConf *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *log.Logger,
	metricsServer *metrics.Server,
	pprofServer *pprof.Server,
	appConf *config.AppConfig,
) (*App, func(), error) {
	app := &App{
		HttpApp: rt.Router(),
		Metrics: metricsServer,
		Pprof:   pprofServer,
		Logger:  logger,
		AppConf: appConf,
	}

	cleanup := func() {
		if metricsServer != nil {
			logger.Log.Info("Shutting down metrics server...")
			ctx, cancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownTimeoutDuration())
			defer cancel()
			if err := metricsServer.Stop(ctx); err != nil {
				logger.Log.Errorw("Failed to stop metrics server", zap.Error(err))
			}
		}
		if pprofServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownTimeoutDuration())
			defer cancel()
			if err := pprofServer.Stop(ctx); err != nil {
				logger.Log.Errorw("Failed to stop pprof server", zap.Error(err))
			}
		}
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	// Wire build App (所有依赖都由 wire 自动注入)
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger.Log
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		logger.Errorw("Metrics server failed to start", zap.Error(err))
	}
	if app.Pprof != nil {
		if err := app.Pprof.Start(); err != nil {
			logger.Errorw("Pprof server failed to start", zap.Error(err))
		}
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	go func() {
		addr := appConf.Http.Addr()
		logger.Infow("HTTP listener started",
			"address", addr,
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Errorw("HTTP listener failed",
				"address", addr,
				zap.Error(err),
			)
			quit <- syscall.SIGTERM
		}
	}()

	// wait for exit signal
	sig := <-quit
	logger.Infof("Received signal: %v, shutting down gracefully...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownTimeoutDuration())
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	// close metrics, pprof, cache and database
	cleanup()

	logger.Info("Server shutdown complete")
	_ = log.Sync()
}
