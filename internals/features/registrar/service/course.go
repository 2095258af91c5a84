// file: internals/features/registrar/service/course.go
package service

import (
	"context"
	"strings"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

var _ Courses = (*CourseService)(nil)

type CourseService struct {
	*CrudService[model.Course, dto.CourseRequest]
}

func NewCourseService(repo repository.Repository[model.Course]) *CourseService {
	s := &CourseService{NewCrudService[model.Course, dto.CourseRequest]("course", "Course", repo)}
	s.addChecks(unique(s.CrudService, repo, "code", func(rec *model.Course) repository.Spec[model.Course] {
		return byCode(rec.Code)
	}))
	return s
}

func (s *CourseService) FindByCode(ctx context.Context, code string) (*model.Course, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, IllegalArgument("course code required")
	}
	return s.first(ctx, byCode(code), code)
}

func byCode(code string) repository.Spec[model.Course] {
	return repository.Where("code = ?", code, func(rec *model.Course) bool {
		return rec.Code == code
	})
}
