// file: internals/features/registrar/dto/room_section_dto.go
package dto

import (
	"errors"

	"registrar_backend/internals/features/registrar/model"
)

type ClassroomRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,max=80"`
	TermUUID *string `json:"termUuid,omitempty" validate:"omitempty,possible_uuid"`
}

func (r ClassroomRequest) ValidateCreate() error {
	return errors.Join(required("name", r.Name), reference("termUuid", r.TermUUID))
}

func (r ClassroomRequest) ValidateUpdate() error {
	return errors.Join(notBlank("name", r.Name), reference("termUuid", r.TermUUID))
}

func (r ClassroomRequest) ToModel() model.Classroom {
	return model.Classroom{Name: str(r.Name), TermUUID: optional(r.TermUUID)}
}

// an empty string clears a reference
func (r ClassroomRequest) ApplyUpdates(ent *model.Classroom) {
	if r.Name != nil {
		ent.Name = str(r.Name)
	}
	if r.TermUUID != nil {
		ent.TermUUID = optional(r.TermUUID)
	}
}

type SectionRequest struct {
	Name           *string `json:"name,omitempty"           validate:"omitempty,max=80"`
	CourseUUID     *string `json:"courseUuid,omitempty"     validate:"omitempty,possible_uuid"`
	ClassroomUUID  *string `json:"classroomUuid,omitempty"  validate:"omitempty,possible_uuid"`
	InstructorUUID *string `json:"instructorUuid,omitempty" validate:"omitempty,possible_uuid"`
	StudentUUID    *string `json:"studentUuid,omitempty"    validate:"omitempty,possible_uuid"`
}

func (r SectionRequest) ValidateCreate() error {
	return errors.Join(
		required("name", r.Name),
		reference("courseUuid", r.CourseUUID),
		reference("classroomUuid", r.ClassroomUUID),
		reference("instructorUuid", r.InstructorUUID),
		reference("studentUuid", r.StudentUUID),
	)
}

func (r SectionRequest) ValidateUpdate() error {
	return errors.Join(
		notBlank("name", r.Name),
		reference("courseUuid", r.CourseUUID),
		reference("classroomUuid", r.ClassroomUUID),
		reference("instructorUuid", r.InstructorUUID),
		reference("studentUuid", r.StudentUUID),
	)
}

func (r SectionRequest) ToModel() model.Section {
	return model.Section{
		Name:           str(r.Name),
		CourseUUID:     optional(r.CourseUUID),
		ClassroomUUID:  optional(r.ClassroomUUID),
		InstructorUUID: optional(r.InstructorUUID),
		StudentUUID:    optional(r.StudentUUID),
	}
}

func (r SectionRequest) ApplyUpdates(ent *model.Section) {
	if r.Name != nil {
		ent.Name = str(r.Name)
	}
	if r.CourseUUID != nil {
		ent.CourseUUID = optional(r.CourseUUID)
	}
	if r.ClassroomUUID != nil {
		ent.ClassroomUUID = optional(r.ClassroomUUID)
	}
	if r.InstructorUUID != nil {
		ent.InstructorUUID = optional(r.InstructorUUID)
	}
	if r.StudentUUID != nil {
		ent.StudentUUID = optional(r.StudentUUID)
	}
}
