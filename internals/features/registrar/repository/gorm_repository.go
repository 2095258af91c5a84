package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"registrar_backend/internals/features/registrar/model"
)

var _ Repository[model.Course] = (*GormRepository[model.Course])(nil)

// GormRepository stores T in its own table. The version column is the
// optimistic-concurrency token: updates are conditional on it.
type GormRepository[T any] struct {
	db *gorm.DB
}

func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func NewGormSet(db *gorm.DB) Set {
	return Set{
		Courses:     NewGormRepository[model.Course](db),
		Students:    NewGormRepository[model.Student](db),
		Instructors: NewGormRepository[model.Instructor](db),
		Terms:       NewGormRepository[model.Term](db),
		Classrooms:  NewGormRepository[model.Classroom](db),
		Sections:    NewGormRepository[model.Section](db),
		TestRuns:    NewGormRepository[model.TestRun](db),
	}
}

func (r *GormRepository[T]) scope(ctx context.Context, spec Spec[T]) *gorm.DB {
	return spec.apply(r.db.WithContext(ctx).Model(new(T)))
}

func (r *GormRepository[T]) Count(ctx context.Context, spec Spec[T]) (int64, error) {
	var n int64
	if err := r.scope(ctx, spec).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *GormRepository[T]) List(ctx context.Context, spec Spec[T]) ([]T, error) {
	out := []T{}
	if err := r.scope(ctx, spec).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository[T]) First(ctx context.Context, spec Spec[T]) (*T, error) {
	var out T
	if err := r.scope(ctx, spec).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *GormRepository[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *GormRepository[T]) Update(ctx context.Context, rec *T, expectedVersion int64) error {
	base := model.IdentityOf(rec)
	base.Version = expectedVersion + 1

	res := r.db.WithContext(ctx).Model(rec).
		Where("version = ?", expectedVersion).
		Select("*").
		Omit("id", "uuid", "creation_date").
		Updates(rec)
	if res.Error != nil {
		base.Version = expectedVersion
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		base.Version = expectedVersion
		return r.missOrConflict(ctx, base.UUID)
	}
	return nil
}

func (r *GormRepository[T]) Delete(ctx context.Context, uuid string, expectedVersion int64) error {
	q := r.db.WithContext(ctx).Where("uuid = ?", uuid)
	if expectedVersion != model.AnyVersion {
		q = q.Where("version = ?", expectedVersion)
	}
	res := q.Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrConflict(ctx, uuid)
	}
	return nil
}

func (r *GormRepository[T]) DeleteWhere(ctx context.Context, spec Spec[T]) (int64, error) {
	res := spec.apply(r.db.WithContext(ctx)).Delete(new(T))
	return res.RowsAffected, res.Error
}

// missOrConflict explains a conditional write that touched no row.
func (r *GormRepository[T]) missOrConflict(ctx context.Context, uuid string) error {
	n, err := r.Count(ctx, ByUUID[T](uuid))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}
