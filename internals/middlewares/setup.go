package middlewares

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	helper "registrar_backend/internals/helpers"
	reqlog "registrar_backend/internals/middlewares/logger"
)

type Options struct {
	Log            *zap.Logger
	AllowedOrigins []string
	RateLimitMax   int
	RequestTimeout time.Duration
	Metrics        *HTTPMetrics
}

// SetupMiddlewares installs the app-wide chain: recover, request log, CORS, rate limit,
// compression and etags. Metrics are optional.
func SetupMiddlewares(app *fiber.App, o Options) {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	app.Use(RecoveryMiddleware(o.Log))
	app.Use(reqlog.LoggerMiddleware(o.Log, o.RequestTimeout))
	if o.Metrics != nil {
		app.Use(o.Metrics.Middleware())
	}
	app.Use(CorsMiddleware(o.AllowedOrigins))
	app.Use(GlobalRateLimiter(o.RateLimitMax))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}

// ErrorHandler renders errors escaping the handlers in the standard error body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
