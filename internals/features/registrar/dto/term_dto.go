// file: internals/features/registrar/dto/term_dto.go
package dto

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"registrar_backend/internals/features/registrar/model"
)

type TermRequest struct {
	Name      *string    `json:"name,omitempty"      validate:"omitempty,max=80"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

func (r TermRequest) ValidateCreate() error {
	return errors.Join(required("name", r.Name), r.order())
}

// The stored dates are checked again by the term service once both are known.
func (r TermRequest) ValidateUpdate() error {
	return errors.Join(notBlank("name", r.Name), r.order())
}

func (r TermRequest) order() error {
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return fmt.Errorf("%w: endDate before startDate", ErrInvalidRange)
	}
	return nil
}

func (r TermRequest) ToModel() model.Term {
	m := model.Term{Name: str(r.Name)}
	if r.StartDate != nil {
		m.StartDate = datatypes.Date(*r.StartDate)
	}
	if r.EndDate != nil {
		m.EndDate = datatypes.Date(*r.EndDate)
	}
	return m
}

func (r TermRequest) ApplyUpdates(ent *model.Term) {
	if r.Name != nil {
		ent.Name = str(r.Name)
	}
	if r.StartDate != nil {
		ent.StartDate = datatypes.Date(*r.StartDate)
	}
	if r.EndDate != nil {
		ent.EndDate = datatypes.Date(*r.EndDate)
	}
}
