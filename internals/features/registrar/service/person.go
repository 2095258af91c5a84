// file: internals/features/registrar/service/person.go
package service

import (
	"context"
	"strings"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

var (
	_ Students    = (*StudentService)(nil)
	_ Instructors = (*InstructorService)(nil)
)

// Students and instructors share the same shape: a unique, lowercased email.

type StudentService struct {
	*CrudService[model.Student, dto.StudentRequest]
}

func NewStudentService(repo repository.Repository[model.Student]) *StudentService {
	s := &StudentService{NewCrudService[model.Student, dto.StudentRequest]("student", "Student", repo)}
	s.addChecks(unique(s.CrudService, repo, "email", func(rec *model.Student) repository.Spec[model.Student] {
		return studentByEmail(rec.Email)
	}))
	return s
}

func (s *StudentService) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.first(ctx, studentByEmail(email), email)
}

func studentByEmail(email string) repository.Spec[model.Student] {
	email = strings.ToLower(email)
	return repository.Where("email = ?", email, func(rec *model.Student) bool {
		return strings.EqualFold(rec.Email, email)
	})
}

type InstructorService struct {
	*CrudService[model.Instructor, dto.InstructorRequest]
}

func NewInstructorService(repo repository.Repository[model.Instructor]) *InstructorService {
	s := &InstructorService{NewCrudService[model.Instructor, dto.InstructorRequest]("instructor", "Instructor", repo)}
	s.addChecks(unique(s.CrudService, repo, "email", func(rec *model.Instructor) repository.Spec[model.Instructor] {
		return instructorByEmail(rec.Email)
	}))
	return s
}

func (s *InstructorService) FindByEmail(ctx context.Context, email string) (*model.Instructor, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.first(ctx, instructorByEmail(email), email)
}

func instructorByEmail(email string) repository.Spec[model.Instructor] {
	email = strings.ToLower(email)
	return repository.Where("email = ?", email, func(rec *model.Instructor) bool {
		return strings.EqualFold(rec.Email, email)
	})
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", IllegalArgument("email required")
	}
	return email, nil
}
