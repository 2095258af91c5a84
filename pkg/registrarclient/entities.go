package registrarclient

import (
	"context"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/service"
)

var (
	_ service.Students    = (*StudentClient)(nil)
	_ service.Courses     = (*CourseClient)(nil)
	_ service.Instructors = (*InstructorClient)(nil)
	_ service.Terms       = (*CrudClient[model.Term, dto.TermRequest])(nil)
	_ service.Classrooms  = (*CrudClient[model.Classroom, dto.ClassroomRequest])(nil)
	_ service.Sections    = (*CrudClient[model.Section, dto.SectionRequest])(nil)
	_ service.TestRuns    = (*TestRunClient)(nil)
)

type CourseClient struct {
	*CrudClient[model.Course, dto.CourseRequest]
}

func (c *CourseClient) FindByCode(context.Context, string) (*model.Course, error) {
	return nil, service.Unsupported("Course", "findByCode")
}

type StudentClient struct {
	*CrudClient[model.Student, dto.StudentRequest]
}

func (c *StudentClient) FindByEmail(context.Context, string) (*model.Student, error) {
	return nil, service.Unsupported("Student", "findByEmail")
}

type InstructorClient struct {
	*CrudClient[model.Instructor, dto.InstructorRequest]
}

func (c *InstructorClient) FindByEmail(context.Context, string) (*model.Instructor, error) {
	return nil, service.Unsupported("Instructor", "findByEmail")
}

type TestRunClient struct {
	*CrudClient[model.TestRun, dto.TestRunRequest]
}

func (c *TestRunClient) CreateForTesting(context.Context, dto.TestRunRequest, *model.TestRun) (*model.TestRun, error) {
	return nil, service.Unsupported("TestRun", "createForTesting")
}

// Teardown deletes the run and every record tagged with it.
func (c *TestRunClient) Teardown(ctx context.Context, uuid string, version int64) error {
	if err := c.checkUUID(uuid); err != nil {
		return err
	}
	return c.delete(ctx, uuid, version, map[string]string{"cascade": "true"})
}
