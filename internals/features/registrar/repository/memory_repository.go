package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"registrar_backend/internals/features/registrar/model"
)

var _ Repository[model.Course] = (*MemoryRepository[model.Course])(nil)

// MemoryRepository keeps records in a uuid-keyed map behind one RWMutex and
// performs the same compare-and-increment on version as the SQL store.
// Values are copied on the way in and out.
type MemoryRepository[T any] struct {
	mu     sync.RWMutex
	rows   map[string]T
	nextID uint64
	now    func() time.Time
}

func NewMemoryRepository[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{rows: map[string]T{}, now: time.Now}
}

func NewMemorySet() Set {
	return Set{
		Courses:     NewMemoryRepository[model.Course](),
		Students:    NewMemoryRepository[model.Student](),
		Instructors: NewMemoryRepository[model.Instructor](),
		Terms:       NewMemoryRepository[model.Term](),
		Classrooms:  NewMemoryRepository[model.Classroom](),
		Sections:    NewMemoryRepository[model.Section](),
		TestRuns:    NewMemoryRepository[model.TestRun](),
	}
}

type beforeSaver interface {
	BeforeSave(tx *gorm.DB) error
}

// runs the same model hook gorm would
func beforeSave[T any](rec *T) error {
	if h, ok := any(rec).(beforeSaver); ok {
		return h.BeforeSave(nil)
	}
	return nil
}

func (r *MemoryRepository[T]) Count(ctx context.Context, spec Spec[T]) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for k := range r.rows {
		rec := r.rows[k]
		if spec.matches(&rec) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository[T]) List(ctx context.Context, spec Spec[T]) ([]T, error) {
	r.mu.RLock()
	out := []T{}
	for k := range r.rows {
		rec := r.rows[k]
		if spec.matches(&rec) {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return model.IdentityOf(&out[i]).ID < model.IdentityOf(&out[j]).ID
	})
	return out, nil
}

func (r *MemoryRepository[T]) First(ctx context.Context, spec Spec[T]) (*T, error) {
	rows, err := r.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *MemoryRepository[T]) Create(ctx context.Context, rec *T) error {
	base := model.IdentityOf(rec)
	base.Prepare(r.now())
	if err := beforeSave(rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[base.UUID]; exists {
		return ErrConflict
	}
	r.nextID++
	base.ID = r.nextID
	r.rows[base.UUID] = *rec
	return nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, rec *T, expectedVersion int64) error {
	if err := beforeSave(rec); err != nil {
		return err
	}
	base := model.IdentityOf(rec)

	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[base.UUID]
	if !ok {
		return ErrNotFound
	}
	stored := model.IdentityOf(&cur)
	if stored.Version != expectedVersion {
		return ErrConflict
	}
	base.ID = stored.ID
	base.CreationDate = stored.CreationDate
	base.Version = expectedVersion + 1
	r.rows[base.UUID] = *rec
	return nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, uuid string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[uuid]
	if !ok {
		return ErrNotFound
	}
	if expectedVersion != model.AnyVersion && model.IdentityOf(&cur).Version != expectedVersion {
		return ErrConflict
	}
	delete(r.rows, uuid)
	return nil
}

func (r *MemoryRepository[T]) DeleteWhere(ctx context.Context, spec Spec[T]) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.rows {
		rec := r.rows[k]
		if spec.matches(&rec) {
			delete(r.rows, k)
			n++
		}
	}
	return n, nil
}
