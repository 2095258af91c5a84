// file: internals/features/registrar/dto/course_dto.go
package dto

import (
	"errors"

	"registrar_backend/internals/features/registrar/model"
)

type CourseRequest struct {
	Code        *string `json:"code,omitempty"        validate:"omitempty,max=12"`
	Name        *string `json:"name,omitempty"        validate:"omitempty,max=80"`
	Summary     *string `json:"summary,omitempty"     validate:"omitempty,max=400"`
	Description *string `json:"description,omitempty"`
	CreditHours *int    `json:"creditHours,omitempty" validate:"omitempty,min=0,max=40"`
}

func (r CourseRequest) ValidateCreate() error {
	return errors.Join(required("code", r.Code), required("name", r.Name))
}

// Code is not checked: it is ignored on update.
func (r CourseRequest) ValidateUpdate() error {
	return notBlank("name", r.Name)
}

func (r CourseRequest) ToModel() model.Course {
	m := model.Course{
		Code:        str(r.Code),
		Name:        str(r.Name),
		Summary:     optional(r.Summary),
		Description: optional(r.Description),
	}
	if r.CreditHours != nil {
		m.CreditHours = *r.CreditHours
	}
	return m
}

// ApplyUpdates leaves Code alone: it is immutable after create.
func (r CourseRequest) ApplyUpdates(ent *model.Course) {
	if r.Name != nil {
		ent.Name = str(r.Name)
	}
	if r.Summary != nil {
		ent.Summary = optional(r.Summary)
	}
	if r.Description != nil {
		ent.Description = optional(r.Description)
	}
	if r.CreditHours != nil {
		ent.CreditHours = *r.CreditHours
	}
}
