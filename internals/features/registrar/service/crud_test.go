package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

const missingUUID = "123e4567-e89b-12d3-a456-426614174000"

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(repository.NewMemorySet())
}

func physics() dto.CourseRequest {
	return dto.CourseRequest{
		Code:        dto.Ptr("TST-1"),
		Name:        dto.Ptr("Physics"),
		Summary:     dto.Ptr("s"),
		Description: dto.Ptr("d"),
		CreditHours: dto.Ptr(3),
	}
}

func TestCreateThenFindByUUID(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	created, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)
	require.True(t, model.IsPossibleUUID(created.UUID))

	got, err := reg.Courses.FindByUUID(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, "TST-1", got.Code)
	assert.Equal(t, "Physics", got.Name)
	assert.Equal(t, "s", *got.Summary)
	assert.Equal(t, "d", *got.Description)
	assert.Equal(t, 3, got.CreditHours)
	assert.True(t, got.Equal(&created.PersistentObject))
}

func TestCreate_MissingFieldIsIllegalArgument(t *testing.T) {
	_, err := newRegistry(t).Courses.Create(context.Background(), dto.CourseRequest{Name: dto.Ptr("Physics")})
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestCreate_DuplicateCodeIsConflict(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	_, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)

	_, err = reg.Courses.Create(ctx, physics())
	assert.ErrorIs(t, err, ErrConflict)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Course", ce.ObjectClass)
}

func TestFindByUUID(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	_, err := reg.Students.FindByUUID(ctx, missingUUID)
	assert.ErrorIs(t, err, ErrNotFound)
	var nf *ObjectNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, missingUUID, nf.UUID)
	assert.Equal(t, "Student", nf.ObjectClass)

	_, err = reg.Students.FindByUUID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)

	got, err := reg.Courses.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.UUID, got.UUID)

	_, err = reg.Courses.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)

	updated, err := reg.Courses.Update(ctx, c.UUID, c.Version, dto.CourseRequest{Name: dto.Ptr("Physics II"), Code: dto.Ptr("OTHER")})
	require.NoError(t, err)
	assert.Equal(t, c.UUID, updated.UUID, "uuid is stable across update")
	assert.Equal(t, "TST-1", updated.Code, "code is immutable")
	assert.Equal(t, "Physics II", updated.Name)
	assert.Equal(t, 3, updated.CreditHours)
	assert.Equal(t, c.Version+1, updated.Version)
	assert.Equal(t, c.CreationDate, updated.CreationDate)

	_, err = reg.Courses.Update(ctx, c.UUID, c.Version, dto.CourseRequest{Name: dto.Ptr("stale")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = reg.Courses.Update(ctx, c.UUID, model.AnyVersion, dto.CourseRequest{Name: dto.Ptr("any")})
	assert.NoError(t, err)

	_, err = reg.Courses.Update(ctx, missingUUID, model.AnyVersion, dto.CourseRequest{Name: dto.Ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_RejectsBlankAndMalformedFields(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)
	s, err := reg.Students.Create(ctx, dto.StudentRequest{PersonRequest: dto.PersonRequest{
		FirstName: dto.Ptr("Ada"), LastName: dto.Ptr("Lovelace"), Email: dto.Ptr("ada@example.edu"),
	}})
	require.NoError(t, err)
	sec, err := reg.Sections.Create(ctx, dto.SectionRequest{Name: dto.Ptr("A"), CourseUUID: dto.Ptr(c.UUID)})
	require.NoError(t, err)

	cases := []struct {
		name   string
		update func() error
		stored func(t *testing.T)
	}{
		{"blank course name", func() error {
			_, err := reg.Courses.Update(ctx, c.UUID, model.AnyVersion, dto.CourseRequest{Name: dto.Ptr("  ")})
			return err
		}, func(t *testing.T) {
			got, err := reg.Courses.FindByUUID(ctx, c.UUID)
			require.NoError(t, err)
			assert.Equal(t, "Physics", got.Name)
			assert.Equal(t, c.Version, got.Version)
		}},
		{"empty student email", func() error {
			_, err := reg.Students.Update(ctx, s.UUID, model.AnyVersion, dto.StudentRequest{PersonRequest: dto.PersonRequest{Email: dto.Ptr("")}})
			return err
		}, func(t *testing.T) {
			got, err := reg.Students.FindByUUID(ctx, s.UUID)
			require.NoError(t, err)
			assert.Equal(t, "ada@example.edu", got.Email)
		}},
		{"malformed section course reference", func() error {
			_, err := reg.Sections.Update(ctx, sec.UUID, model.AnyVersion, dto.SectionRequest{CourseUUID: dto.Ptr("nope")})
			return err
		}, func(t *testing.T) {
			got, err := reg.Sections.FindByUUID(ctx, sec.UUID)
			require.NoError(t, err)
			require.NotNil(t, got.CourseUUID)
			assert.Equal(t, c.UUID, *got.CourseUUID)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.update(), ErrIllegalArgument)
			tc.stored(t)
		})
	}
}

func TestUpdate_KeepsTestRunTag(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	run, err := reg.TestRuns.Create(ctx, dto.TestRunRequest{Name: dto.Ptr("T1")})
	require.NoError(t, err)

	c, err := reg.Courses.CreateForTesting(ctx, physics(), run)
	require.NoError(t, err)
	u, err := reg.Courses.Update(ctx, c.UUID, model.AnyVersion, dto.CourseRequest{Name: dto.Ptr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, run.UUID, u.TestRunRef())
}

func TestDelete_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)

	require.NoError(t, reg.Courses.Delete(ctx, c.UUID, c.Version))
	require.NoError(t, reg.Courses.Delete(ctx, c.UUID, c.Version))
	require.NoError(t, reg.Courses.Delete(ctx, missingUUID, model.AnyVersion))

	_, err = reg.Courses.FindByUUID(ctx, c.UUID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_StaleVersionIsConflict(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	c, err := reg.Courses.Create(ctx, physics())
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Courses.Delete(ctx, c.UUID, c.Version+7), ErrConflict)
}

func TestCountByTestRun(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	n, err := reg.Courses.Count(ctx)
	require.NoError(t, err)
	p, err := reg.Courses.CountByTestRun(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, n, p)

	_, err = reg.Courses.Create(ctx, physics())
	require.NoError(t, err)
	run, err := reg.TestRuns.Create(ctx, dto.TestRunRequest{Name: dto.Ptr("T1")})
	require.NoError(t, err)
	req := physics()
	req.Code = dto.Ptr("TST-2")
	_, err = reg.Courses.CreateForTesting(ctx, req, run)
	require.NoError(t, err)

	total, _ := reg.Courses.Count(ctx)
	prod, _ := reg.Courses.CountByTestRun(ctx, nil)
	tagged, _ := reg.Courses.CountByTestRun(ctx, run)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), prod)
	assert.Equal(t, int64(1), tagged)
}

func TestCreateForTesting_RequiresRun(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)

	_, err := reg.Courses.CreateForTesting(ctx, physics(), nil)
	assert.ErrorIs(t, err, ErrIllegalArgument)
	_, err = reg.Courses.CreateForTesting(ctx, physics(), &model.TestRun{})
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestPurgeTestRun_RefusesProduction(t *testing.T) {
	_, err := newRegistry(t).Courses.PurgeTestRun(context.Background(), "")
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

type failingRepo struct {
	repository.Repository[model.Course]
}

var errStore = errors.New("connection lost")

func (failingRepo) Count(context.Context, repository.Spec[model.Course]) (int64, error) {
	return 0, errStore
}

func (failingRepo) First(context.Context, repository.Spec[model.Course]) (*model.Course, error) {
	return nil, errStore
}

func TestPersistenceErrorCarriesOpAndIdentity(t *testing.T) {
	svc := NewCourseService(failingRepo{})

	_, err := svc.Count(context.Background())
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, OpCount, pe.Op)
	assert.ErrorIs(t, err, errStore)

	_, err = svc.FindByUUID(context.Background(), missingUUID)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, OpFind, pe.Op)
	assert.Equal(t, missingUUID, pe.Identity)
}
