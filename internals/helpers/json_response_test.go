package helper

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", statusToErrorCode(fiber.StatusNotFound))
	assert.Equal(t, "CONFLICT", statusToErrorCode(fiber.StatusConflict))
	assert.Equal(t, "NOT_IMPLEMENTED", statusToErrorCode(fiber.StatusNotImplemented))
	assert.Equal(t, "INTERNAL_ERROR", statusToErrorCode(fiber.StatusBadGateway))
	assert.Equal(t, "ERROR", statusToErrorCode(fiber.StatusTeapot))
}

func TestJsonError_DefaultMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusNotFound, " ") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"message":"Not Found","error_code":"NOT_FOUND"}`, string(raw))
}

func TestBuildFieldErrors(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
		Name  string `validate:"max=3"`
	}
	err := validator.New().Struct(req{Name: "toolong"})
	out := BuildFieldErrors(err)
	assert.Equal(t, []string{"field is required"}, out["Email"])
	assert.Equal(t, []string{"value is too long"}, out["Name"])

	assert.Empty(t, BuildFieldErrors(nil))
	assert.Equal(t, []string{assert.AnError.Error()}, BuildFieldErrors(assert.AnError)["_error"])
}
