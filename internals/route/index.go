// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	registrarRoute "registrar_backend/internals/features/registrar/route"
	"registrar_backend/internals/features/registrar/service"
	"registrar_backend/internals/middlewares"
	"registrar_backend/internals/middlewares/auth"
)

var startTime time.Time

type Options struct {
	Log         *zap.Logger
	APIPrefix   string
	BaseURL     string
	JWTSecret   string
	// WriteRoles, when set with JWTSecret, restricts mutations to tokens carrying one of them.
	WriteRoles  []string
	Environment string
	// Ping reports store health; nil means always healthy (in-memory store).
	Ping    func() error
	Metrics *middlewares.HTTPMetrics
}

func SetupRoutes(app *fiber.App, reg *service.Registry, o Options) {
	startTime = time.Now()
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.APIPrefix == "" {
		o.APIPrefix = "/api"
	}

	o.Log.Info("Setting up base routes...")
	BaseRoutes(app, o)

	o.Log.Info("Mounting registrar routes...", zap.String("prefix", o.APIPrefix))
	api := app.Group(o.APIPrefix, middlewares.UUIDPathFilter(o.APIPrefix, registrarRoute.Nouns...))
	registrarRoute.RegistrarRoutes(api, reg, registrarRoute.Options{
		Log:       o.Log,
		BaseURL:   o.BaseURL,
		APIPrefix: o.APIPrefix,
		Guards:    auth.WriteGuards(o.JWTSecret, o.WriteRoles),
	})
}
