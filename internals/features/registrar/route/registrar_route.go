// file: internals/features/registrar/route/registrar_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	ctl "registrar_backend/internals/features/registrar/controller"
	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/service"
)

// Nouns are the resource path segments.
var Nouns = []string{"student", "course", "section", "classroom", "term", "instructor", "testRun"}

type Options struct {
	Log       *zap.Logger
	BaseURL   string
	APIPrefix string
	// Guards run in front of POST and DELETE. Empty leaves them open.
	Guards []fiber.Handler
}

// RegistrarRoutes mounts one resource group per noun on r (normally the /api group).
func RegistrarRoutes(r fiber.Router, reg *service.Registry, o Options) {
	mount[model.Student, dto.StudentRequest](r, "student", reg.Students, o)
	mount[model.Course, dto.CourseRequest](r, "course", reg.Courses, o)
	mount[model.Section, dto.SectionRequest](r, "section", reg.Sections, o)
	mount[model.Classroom, dto.ClassroomRequest](r, "classroom", reg.Classrooms, o)
	mount[model.Term, dto.TermRequest](r, "term", reg.Terms, o)
	mount[model.Instructor, dto.InstructorRequest](r, "instructor", reg.Instructors, o)
	mount[model.TestRun, dto.TestRunRequest](r, "testRun", reg.TestRuns, o)
}

func mount[T any, R dto.Request[T]](r fiber.Router, noun string, svc service.Service[T, R], o Options) {
	c := ctl.NewResourceController[T, R](noun, svc, o.Log)
	c.BaseURL = o.BaseURL
	if o.APIPrefix != "" {
		c.APIPrefix = o.APIPrefix
	}
	guarded := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, o.Guards...), h)
	}

	g := r.Group("/" + noun)
	g.Get("/", c.List)
	g.Get("/:uuid", c.Get)
	g.Post("/", guarded(c.Create)...)
	g.Post("/:uuid", guarded(c.Update)...)
	g.Delete("/:uuid", guarded(c.Delete)...)
}
