package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar_backend/internals/features/registrar/dto"
)

func TestStudentEmailUniqueAndLookup(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	req := dto.StudentRequest{PersonRequest: dto.PersonRequest{
		FirstName: dto.Ptr("Ada"), LastName: dto.Ptr("Lovelace"), Email: dto.Ptr("Ada@Example.edu"),
	}}
	s, err := reg.Students.Create(ctx, req)
	require.NoError(t, err)

	_, err = reg.Students.Create(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := reg.Students.FindByEmail(ctx, "ADA@example.edu ")
	require.NoError(t, err)
	assert.Equal(t, s.UUID, got.UUID)

	_, err = reg.Students.FindByEmail(ctx, "nobody@example.edu")
	assert.ErrorIs(t, err, ErrNotFound)

	// updating a record with its own email is not a conflict
	_, err = reg.Students.Update(ctx, s.UUID, s.Version, dto.StudentRequest{PersonRequest: dto.PersonRequest{Email: dto.Ptr("ada@example.edu")}})
	assert.NoError(t, err)
}

func TestInstructorEmailIsSeparateFromStudents(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	p := dto.PersonRequest{FirstName: dto.Ptr("Alan"), LastName: dto.Ptr("Turing"), Email: dto.Ptr("alan@example.edu")}

	_, err := reg.Students.Create(ctx, dto.StudentRequest{PersonRequest: p})
	require.NoError(t, err)
	i, err := reg.Instructors.Create(ctx, dto.InstructorRequest{PersonRequest: p})
	require.NoError(t, err)

	got, err := reg.Instructors.FindByEmail(ctx, "alan@example.edu")
	require.NoError(t, err)
	assert.Equal(t, i.UUID, got.UUID)
}

func TestCourseFindByCode(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)

	got, err := reg.Courses.FindByCode(ctx, "TST-1")
	require.NoError(t, err)
	assert.Equal(t, c.UUID, got.UUID)

	_, err = reg.Courses.FindByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.Courses.FindByCode(ctx, "")
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestSectionReferencesMustExist(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	_, err := reg.Sections.Create(ctx, dto.SectionRequest{Name: dto.Ptr("A"), CourseUUID: dto.Ptr(missingUUID)})
	assert.ErrorIs(t, err, ErrIllegalArgument)

	_, err = reg.Sections.Create(ctx, dto.SectionRequest{Name: dto.Ptr("A"), CourseUUID: dto.Ptr("bad")})
	assert.ErrorIs(t, err, ErrIllegalArgument)

	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)
	sec, err := reg.Sections.Create(ctx, dto.SectionRequest{Name: dto.Ptr("A"), CourseUUID: dto.Ptr(c.UUID)})
	require.NoError(t, err)
	assert.Equal(t, c.UUID, *sec.CourseUUID)
}

func TestTermLookupFillsClassroomsAndSections(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 4, 0)
	term, err := reg.Terms.Create(ctx, dto.TermRequest{Name: dto.Ptr("Fall 2025"), StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	room, err := reg.Classrooms.Create(ctx, dto.ClassroomRequest{Name: dto.Ptr("Room 1"), TermUUID: dto.Ptr(term.UUID)})
	require.NoError(t, err)
	_, err = reg.Classrooms.Create(ctx, dto.ClassroomRequest{Name: dto.Ptr("Unassigned")})
	require.NoError(t, err)
	_, err = reg.Sections.Create(ctx, dto.SectionRequest{Name: dto.Ptr("A"), ClassroomUUID: dto.Ptr(room.UUID)})
	require.NoError(t, err)

	got, err := reg.Terms.FindByUUID(ctx, term.UUID)
	require.NoError(t, err)
	require.Len(t, got.Classrooms, 1)
	assert.Equal(t, "Room 1", got.Classrooms[0].Name)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "A", got.Sections[0].Name)
}

func TestTermDatesOrder(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	term, err := reg.Terms.Create(ctx, dto.TermRequest{Name: dto.Ptr("Fall"), StartDate: &start})
	require.NoError(t, err)

	before := start.AddDate(0, -1, 0)
	_, err = reg.Terms.Update(ctx, term.UUID, term.Version, dto.TermRequest{EndDate: &before})
	assert.ErrorIs(t, err, ErrIllegalArgument)
}
