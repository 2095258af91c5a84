// file: internals/features/registrar/service/room_section.go
package service

import (
	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

var (
	_ Classrooms = (*ClassroomService)(nil)
	_ Sections   = (*SectionService)(nil)
)

type ClassroomService struct {
	*CrudService[model.Classroom, dto.ClassroomRequest]
}

func NewClassroomService(repo repository.Repository[model.Classroom], terms repository.Repository[model.Term]) *ClassroomService {
	return &ClassroomService{NewCrudService[model.Classroom, dto.ClassroomRequest](
		"classroom", "Classroom", repo,
		exists(terms, "termUuid", func(c *model.Classroom) *string { return c.TermUUID }),
	)}
}

// SectionService requires every set reference to point at an existing record.
type SectionService struct {
	*CrudService[model.Section, dto.SectionRequest]
}

func NewSectionService(repo repository.Repository[model.Section], set repository.Set) *SectionService {
	return &SectionService{NewCrudService[model.Section, dto.SectionRequest](
		"section", "Section", repo,
		exists(set.Courses, "courseUuid", func(s *model.Section) *string { return s.CourseUUID }),
		exists(set.Classrooms, "classroomUuid", func(s *model.Section) *string { return s.ClassroomUUID }),
		exists(set.Instructors, "instructorUuid", func(s *model.Section) *string { return s.InstructorUUID }),
		exists(set.Students, "studentUuid", func(s *model.Section) *string { return s.StudentUUID }),
	)}
}
