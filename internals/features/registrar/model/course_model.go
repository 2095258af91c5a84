// file: internals/features/registrar/model/course_model.go
package model

import (
	"strings"

	"gorm.io/gorm"
)

type Course struct {
	TestablePersistentObject

	// Code is immutable once created
	Code        string  `gorm:"type:varchar(12);uniqueIndex;not null;column:code" json:"code"`
	Name        string  `gorm:"type:varchar(80);not null;column:name" json:"name"`
	Summary     *string `gorm:"type:varchar(400);column:summary" json:"summary,omitempty"`
	Description *string `gorm:"type:text;column:description" json:"description,omitempty"`
	CreditHours int     `gorm:"not null;default:0;column:credit_hours" json:"creditHours"`
}

func (Course) TableName() string { return "courses" }

func (m *Course) BeforeSave(tx *gorm.DB) error {
	m.Code = strings.TrimSpace(m.Code)
	m.Name = strings.TrimSpace(m.Name)
	m.Summary = trimPtr(m.Summary)
	m.Description = trimPtr(m.Description)
	return nil
}
