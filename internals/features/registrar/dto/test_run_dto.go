// file: internals/features/registrar/dto/test_run_dto.go
package dto

import (
	"time"

	"registrar_backend/internals/features/registrar/model"
)

type TestRunRequest struct {
	Name     *string    `json:"name,omitempty"     validate:"omitempty,max=80"`
	User     *string    `json:"user,omitempty"     validate:"omitempty,max=80"`
	TestDate *time.Time `json:"testDate,omitempty"`
}

func (r TestRunRequest) ValidateCreate() error { return required("name", r.Name) }
func (r TestRunRequest) ValidateUpdate() error { return notBlank("name", r.Name) }

func (r TestRunRequest) ToModel() model.TestRun {
	m := model.TestRun{Name: str(r.Name), User: str(r.User)}
	if r.TestDate != nil {
		m.TestDate = r.TestDate.UTC()
	} else {
		m.TestDate = time.Now().UTC()
	}
	return m
}

func (r TestRunRequest) ApplyUpdates(ent *model.TestRun) {
	if r.Name != nil {
		ent.Name = str(r.Name)
	}
	if r.User != nil {
		ent.User = str(r.User)
	}
	if r.TestDate != nil {
		ent.TestDate = r.TestDate.UTC()
	}
}
