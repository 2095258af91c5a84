// file: internals/features/registrar/model/section_model.go
package model

import (
	"strings"

	"gorm.io/gorm"
)

// Section references its course, room, instructor and student by uuid.
type Section struct {
	TestablePersistentObject

	Name           string  `gorm:"type:varchar(80);not null;column:name" json:"name"`
	CourseUUID     *string `gorm:"type:varchar(36);index;column:course_uuid" json:"courseUuid,omitempty"`
	ClassroomUUID  *string `gorm:"type:varchar(36);index;column:classroom_uuid" json:"classroomUuid,omitempty"`
	InstructorUUID *string `gorm:"type:varchar(36);column:instructor_uuid" json:"instructorUuid,omitempty"`
	StudentUUID    *string `gorm:"type:varchar(36);column:student_uuid" json:"studentUuid,omitempty"`
}

func (Section) TableName() string { return "sections" }

func (m *Section) BeforeSave(tx *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.CourseUUID = trimPtr(m.CourseUUID)
	m.ClassroomUUID = trimPtr(m.ClassroomUUID)
	m.InstructorUUID = trimPtr(m.InstructorUUID)
	m.StudentUUID = trimPtr(m.StudentUUID)
	return nil
}
