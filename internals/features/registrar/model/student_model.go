// file: internals/features/registrar/model/student_model.go
package model

import (
	"strings"

	"gorm.io/gorm"
)

type Student struct {
	TestablePersistentObject

	FirstName string `gorm:"type:varchar(40);not null;column:first_name" json:"firstName"`
	LastName  string `gorm:"type:varchar(40);not null;column:last_name" json:"lastName"`
	Email     string `gorm:"type:varchar(120);uniqueIndex;not null;column:email" json:"email"`
}

func (Student) TableName() string { return "students" }

func (m *Student) BeforeSave(tx *gorm.DB) error {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	return nil
}
