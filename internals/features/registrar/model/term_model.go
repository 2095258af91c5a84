// file: internals/features/registrar/model/term_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Term struct {
	TestablePersistentObject

	Name      string         `gorm:"type:varchar(80);not null;column:name" json:"name"`
	StartDate datatypes.Date `gorm:"column:start_date" json:"startDate"`
	EndDate   datatypes.Date `gorm:"column:end_date" json:"endDate"`

	// filled by the term service on uuid lookup
	Classrooms []Classroom `gorm:"-" json:"classrooms,omitempty"`
	Sections   []Section   `gorm:"-" json:"sections,omitempty"`
}

func (Term) TableName() string { return "terms" }

// Mirror CHECK: end >= start (when both are set)
func (m *Term) BeforeSave(tx *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	start, end := time.Time(m.StartDate), time.Time(m.EndDate)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errors.New("end_date must be >= start_date")
	}
	return nil
}
