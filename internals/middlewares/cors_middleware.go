// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5500",
}

// CorsMiddleware membuat middleware CORS. An empty list falls back to the local dev origins.
func CorsMiddleware(origins []string) fiber.Handler {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: !containsWildcard(origins),
	})
}

// fiber refuses credentials together with a wildcard origin
func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
