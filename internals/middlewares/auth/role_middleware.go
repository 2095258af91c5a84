package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "registrar_backend/internals/helpers"
)

// Roles reads the "role" (string) and "roles" (list) claims set by AuthJWT.
func Roles(c *fiber.Ctx) []string {
	claims, ok := c.Locals(LocClaims).(jwt.MapClaims)
	if !ok {
		return nil
	}
	var out []string
	if r, ok := claims["role"].(string); ok && r != "" {
		out = append(out, r)
	}
	if list, ok := claims["roles"].([]any); ok {
		for _, v := range list {
			if r, ok := v.(string); ok && r != "" {
				out = append(out, r)
			}
		}
	}
	return out
}

// OnlyRoles lets the request through when the token carries one of the allowed roles.
// Must run after AuthJWT.
func OnlyRoles(customForbiddenMessage string, allowedRoles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	if customForbiddenMessage == "" {
		customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
	}

	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(LocClaims).(jwt.MapClaims); !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, role := range Roles(c) {
			if _, ok := allowed[role]; ok {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// WriteGuards is the handler chain protecting mutating routes: a bearer token when a
// secret is set, plus a role check when roles are listed. Empty when auth is off.
func WriteGuards(secret string, roles []string) []fiber.Handler {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	guards := []fiber.Handler{AuthJWT(AuthJWTOpts{Secret: secret})}
	if len(roles) > 0 {
		guards = append(guards, OnlyRoles("", roles...))
	}
	return guards
}
