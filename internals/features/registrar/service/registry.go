// file: internals/features/registrar/service/registry.go
package service

import "registrar_backend/internals/features/registrar/repository"

// Registry holds one service per entity, wired to a single repository set.
type Registry struct {
	Courses     *CourseService
	Students    *StudentService
	Instructors *InstructorService
	Terms       *TermService
	Classrooms  *ClassroomService
	Sections    *SectionService
	TestRuns    *TestRunService
}

func NewRegistry(set repository.Set) *Registry {
	r := &Registry{
		Courses:     NewCourseService(set.Courses),
		Students:    NewStudentService(set.Students),
		Instructors: NewInstructorService(set.Instructors),
		Terms:       NewTermService(set.Terms, set.Classrooms, set.Sections),
		Classrooms:  NewClassroomService(set.Classrooms, set.Terms),
		Sections:    NewSectionService(set.Sections, set),
		TestRuns:    NewTestRunService(set.TestRuns),
	}
	// dependents before the records they reference
	r.TestRuns.Register(r.Sections, r.Classrooms, r.Terms, r.Courses, r.Instructors, r.Students)
	return r
}
