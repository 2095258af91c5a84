package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, o Options) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("registrar backend running")
	})

	if o.Metrics != nil {
		app.Get("/metrics", o.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if o.Ping != nil {
			if err := o.Ping(); err != nil {
				dbStatus = "Database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    o.Environment,
		})
	})
}
