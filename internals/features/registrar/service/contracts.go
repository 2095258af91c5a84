// file: internals/features/registrar/service/contracts.go
package service

import (
	"context"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
)

// Finder is the read half of an entity's business contract.
// A nil test run means production scope: records without a test-run tag.
type Finder[T any] interface {
	Count(ctx context.Context) (int64, error)
	CountByTestRun(ctx context.Context, testRun *model.TestRun) (int64, error)
	FindAll(ctx context.Context) ([]T, error)
	FindByUUID(ctx context.Context, uuid string) (*T, error)
	FindByID(ctx context.Context, id uint64) (*T, error)
	FindByTestRun(ctx context.Context, testRun *model.TestRun) ([]T, error)
}

// Manager is the mutating half. version may be model.AnyVersion.
type Manager[T any, R any] interface {
	Create(ctx context.Context, req R) (*T, error)
	CreateForTesting(ctx context.Context, req R, testRun *model.TestRun) (*T, error)
	Update(ctx context.Context, uuid string, version int64, req R) (*T, error)
	Delete(ctx context.Context, uuid string, version int64) error
}

type Service[T any, R any] interface {
	Finder[T]
	Manager[T, R]
}

type CodeFinder[T any] interface {
	FindByCode(ctx context.Context, code string) (*T, error)
}

type EmailFinder[T any] interface {
	FindByEmail(ctx context.Context, email string) (*T, error)
}

// Shard is one entity collection that can hold test-run data.
type Shard interface {
	Noun() string
	TaggedUUIDs(ctx context.Context, testRunUUID string) ([]string, error)
	PurgeTestRun(ctx context.Context, testRunUUID string) (int64, error)
}

// Teardowner deletes a test run together with every record tagged with it.
type Teardowner interface {
	Teardown(ctx context.Context, uuid string, version int64) error
}

// Per-entity contracts, satisfied by both the store-backed services and the REST client.
type (
	Courses interface {
		Service[model.Course, dto.CourseRequest]
		CodeFinder[model.Course]
	}
	Students interface {
		Service[model.Student, dto.StudentRequest]
		EmailFinder[model.Student]
	}
	Instructors interface {
		Service[model.Instructor, dto.InstructorRequest]
		EmailFinder[model.Instructor]
	}
	Terms      = Service[model.Term, dto.TermRequest]
	Classrooms = Service[model.Classroom, dto.ClassroomRequest]
	Sections   = Service[model.Section, dto.SectionRequest]
	TestRuns   interface {
		Service[model.TestRun, dto.TestRunRequest]
		Teardowner
	}
)
