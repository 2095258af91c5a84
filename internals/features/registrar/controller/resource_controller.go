// file: internals/features/registrar/controller/resource_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/service"
	helper "registrar_backend/internals/helpers"
)

/* ======================================================
   Controller
====================================================== */

// ResourceController serves one entity noun on top of its service.
type ResourceController[T any, R dto.Request[T]] struct {
	Noun      string
	Service   service.Service[T, R]
	Validator *validator.Validate
	Log       *zap.Logger

	// BaseURL prefixes self links, e.g. https://registrar.example.edu/api.
	// Empty means derive it from the request.
	BaseURL   string
	APIPrefix string
}

func NewResourceController[T any, R dto.Request[T]](noun string, svc service.Service[T, R], log *zap.Logger) *ResourceController[T, R] {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResourceController[T, R]{
		Noun:      noun,
		Service:   svc,
		Validator: dto.NewValidator(),
		Log:       log.With(zap.String("resource", noun)),
		APIPrefix: "/api",
	}
}

/* ======================================================
   Handlers
====================================================== */

// GET /{noun}?countOnly=&testUuid=&productionOnly=
func (ctl *ResourceController[T, R]) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	countOnly := queryBool(c, "countOnly")

	var (
		run    *model.TestRun
		scoped bool
	)
	if raw := strings.TrimSpace(c.Query("testUuid")); raw != "" {
		if !model.IsPossibleUUID(raw) {
			return helper.JsonError(c, fiber.StatusBadRequest, "testUuid is not a uuid")
		}
		run = &model.TestRun{}
		run.UUID = raw
		scoped = true
	} else if queryBool(c, "productionOnly") {
		scoped = true
	}

	if countOnly {
		var (
			n   int64
			err error
		)
		if scoped {
			n, err = ctl.Service.CountByTestRun(ctx, run)
		} else {
			n, err = ctl.Service.Count(ctx)
		}
		if err != nil {
			return ctl.fail(c, err)
		}
		return helper.JsonOK(c, n)
	}

	var (
		rows []T
		err  error
	)
	if scoped {
		rows, err = ctl.Service.FindByTestRun(ctx, run)
	} else {
		rows, err = ctl.Service.FindAll(ctx)
	}
	if err != nil {
		return ctl.fail(c, err)
	}
	if rows == nil {
		rows = []T{}
	}
	for i := range rows {
		ctl.link(c, &rows[i])
	}
	return helper.JsonOK(c, rows)
}

// GET /{noun}/{uuid}
func (ctl *ResourceController[T, R]) Get(c *fiber.Ctx) error {
	rec, err := ctl.Service.FindByUUID(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return ctl.fail(c, err)
	}
	ctl.link(c, rec)
	return helper.JsonOK(c, rec)
}

// POST /{noun}?testUuid=
func (ctl *ResourceController[T, R]) Create(c *fiber.Ctx) error {
	req, ok, err := ctl.bind(c)
	if !ok {
		return err
	}

	var rec *T
	if raw := strings.TrimSpace(c.Query("testUuid")); raw != "" {
		run := &model.TestRun{}
		run.UUID = raw
		rec, err = ctl.Service.CreateForTesting(c.UserContext(), req, run)
	} else {
		rec, err = ctl.Service.Create(c.UserContext(), req)
	}
	if err != nil {
		return ctl.fail(c, err)
	}
	ctl.link(c, rec)
	ctl.Log.Debug("created", zap.String("uuid", model.IdentityOf(rec).UUID))
	return helper.JsonCreated(c, rec)
}

// POST /{noun}/{uuid}?version=
func (ctl *ResourceController[T, R]) Update(c *fiber.Ctx) error {
	version, err := queryVersion(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req, ok, err := ctl.bind(c)
	if !ok {
		return err
	}
	rec, err := ctl.Service.Update(c.UserContext(), c.Params("uuid"), version, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	ctl.link(c, rec)
	return helper.JsonOK(c, rec)
}

// DELETE /{noun}/{uuid}?version=&cascade=
func (ctl *ResourceController[T, R]) Delete(c *fiber.Ctx) error {
	version, err := queryVersion(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	uuid := c.Params("uuid")

	if queryBool(c, "cascade") {
		td, ok := ctl.Service.(service.Teardowner)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "cascade is only supported for test runs")
		}
		err = td.Teardown(c.UserContext(), uuid, version)
	} else {
		err = ctl.Service.Delete(c.UserContext(), uuid, version)
	}
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c)
}

/* ======================================================
   Helpers
====================================================== */

// bind parses and validates the body. An empty body is an empty request.
func (ctl *ResourceController[T, R]) bind(c *fiber.Ctx) (R, bool, error) {
	var req R
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, false, helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return req, false, helper.JsonValidationError(c, helper.BuildFieldErrors(err))
	}
	return req, true, nil
}

func (ctl *ResourceController[T, R]) link(c *fiber.Ctx, rec *T) {
	base := ctl.BaseURL
	if base == "" {
		base = c.BaseURL() + ctl.APIPrefix
	}
	id := model.IdentityOf(rec)
	id.Self = strings.TrimRight(base, "/") + "/" + ctl.Noun + "/" + id.UUID
}

func (ctl *ResourceController[T, R]) fail(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		ctl.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return helper.JsonError(c, status, "")
	}
	return helper.JsonError(c, status, err.Error())
}

// StatusOf maps service errors onto HTTP statuses.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrIllegalArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrUnsupported):
		return fiber.StatusNotImplemented
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
}

func queryBool(c *fiber.Ctx, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

// queryVersion reads ?version=; absent means any version.
func queryVersion(c *fiber.Ctx) (int64, error) {
	raw := strings.TrimSpace(c.Query("version"))
	if raw == "" {
		return model.AnyVersion, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < model.AnyVersion {
		return 0, errors.New("version must be an integer")
	}
	return v, nil
}
