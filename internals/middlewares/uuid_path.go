package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"registrar_backend/internals/features/registrar/model"
	helper "registrar_backend/internals/helpers"
)

// UUIDPathFilter rejects {prefix}/{noun}/{candidate} with 400 unless candidate
// has the layout of a uuid. Only the listed nouns are inspected, case-insensitively
// like fiber's routing.
func UUIDPathFilter(prefix string, nouns ...string) fiber.Handler {
	known := make(map[string]struct{}, len(nouns))
	for _, n := range nouns {
		known[strings.ToLower(n)] = struct{}{}
	}
	prefix = "/" + strings.ToLower(strings.Trim(prefix, "/")) + "/"

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !strings.HasPrefix(strings.ToLower(path), prefix) {
			return c.Next()
		}
		parts := strings.Split(strings.Trim(path[len(prefix):], "/"), "/")
		if len(parts) != 2 {
			return c.Next()
		}
		if _, ok := known[strings.ToLower(parts[0])]; !ok {
			return c.Next()
		}
		if !model.IsPossibleUUID(parts[1]) {
			return helper.JsonError(c, fiber.StatusBadRequest, "malformed uuid in path: "+parts[1])
		}
		return c.Next()
	}
}
