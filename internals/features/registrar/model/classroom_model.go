// file: internals/features/registrar/model/classroom_model.go
package model

import (
	"strings"

	"gorm.io/gorm"
)

type Classroom struct {
	TestablePersistentObject

	Name     string  `gorm:"type:varchar(80);not null;column:name" json:"name"`
	TermUUID *string `gorm:"type:varchar(36);index;column:term_uuid" json:"termUuid,omitempty"`
}

func (Classroom) TableName() string { return "classrooms" }

func (m *Classroom) BeforeSave(tx *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.TermUUID = trimPtr(m.TermUUID)
	return nil
}
