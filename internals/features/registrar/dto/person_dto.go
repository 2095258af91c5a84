// file: internals/features/registrar/dto/person_dto.go
package dto

import (
	"errors"
	"strings"

	"registrar_backend/internals/features/registrar/model"
)

// PersonRequest carries the attributes shared by students and instructors.
type PersonRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=40"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,max=40"`
	Email     *string `json:"email,omitempty"     validate:"omitempty,email,max=120"`
}

func (r PersonRequest) validate() error {
	return errors.Join(
		required("firstName", r.FirstName),
		required("lastName", r.LastName),
		required("email", r.Email),
	)
}

func (r PersonRequest) validateUpdate() error {
	return errors.Join(
		notBlank("firstName", r.FirstName),
		notBlank("lastName", r.LastName),
		notBlank("email", r.Email),
	)
}

func email(v *string) string { return strings.ToLower(str(v)) }

type StudentRequest struct {
	PersonRequest
}

func (r StudentRequest) ValidateCreate() error { return r.validate() }
func (r StudentRequest) ValidateUpdate() error { return r.validateUpdate() }

func (r StudentRequest) ToModel() model.Student {
	return model.Student{FirstName: str(r.FirstName), LastName: str(r.LastName), Email: email(r.Email)}
}

func (r StudentRequest) ApplyUpdates(ent *model.Student) {
	if r.FirstName != nil {
		ent.FirstName = str(r.FirstName)
	}
	if r.LastName != nil {
		ent.LastName = str(r.LastName)
	}
	if r.Email != nil {
		ent.Email = email(r.Email)
	}
}

type InstructorRequest struct {
	PersonRequest
}

func (r InstructorRequest) ValidateCreate() error { return r.validate() }
func (r InstructorRequest) ValidateUpdate() error { return r.validateUpdate() }

func (r InstructorRequest) ToModel() model.Instructor {
	return model.Instructor{FirstName: str(r.FirstName), LastName: str(r.LastName), Email: email(r.Email)}
}

func (r InstructorRequest) ApplyUpdates(ent *model.Instructor) {
	if r.FirstName != nil {
		ent.FirstName = str(r.FirstName)
	}
	if r.LastName != nil {
		ent.LastName = str(r.LastName)
	}
	if r.Email != nil {
		ent.Email = email(r.Email)
	}
}
