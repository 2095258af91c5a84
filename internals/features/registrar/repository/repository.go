// Package repository is the persistence gateway: one generic CRUD repository per entity,
// filtered with Spec criteria, backed either by gorm or by an in-memory map.
package repository

import (
	"context"
	"errors"

	"registrar_backend/internals/features/registrar/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict covers a stale version and a duplicate unique key.
	ErrConflict = errors.New("record conflict")
)

type Repository[T any] interface {
	Count(ctx context.Context, spec Spec[T]) (int64, error)
	List(ctx context.Context, spec Spec[T]) ([]T, error)
	First(ctx context.Context, spec Spec[T]) (*T, error)
	Create(ctx context.Context, rec *T) error
	// Update stores rec when the stored version equals expectedVersion and bumps the version.
	Update(ctx context.Context, rec *T, expectedVersion int64) error
	// Delete removes the record; model.AnyVersion skips the version comparison.
	Delete(ctx context.Context, uuid string, expectedVersion int64) error
	DeleteWhere(ctx context.Context, spec Spec[T]) (int64, error)
}

// Set bundles one repository per entity.
type Set struct {
	Courses     Repository[model.Course]
	Students    Repository[model.Student]
	Instructors Repository[model.Instructor]
	Terms       Repository[model.Term]
	Classrooms  Repository[model.Classroom]
	Sections    Repository[model.Section]
	TestRuns    Repository[model.TestRun]
}
