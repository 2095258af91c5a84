// file: internals/features/registrar/service/crud.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

// Check runs before a record is inserted or updated (uniqueness, references, ranges).
type Check[T any] func(ctx context.Context, rec *T) error

// CrudService implements Finder and Manager for one entity on top of a repository.
type CrudService[T any, R dto.Request[T]] struct {
	noun        string
	objectClass string
	repo        repository.Repository[T]
	checks      []Check[T]
}

func NewCrudService[T any, R dto.Request[T]](noun, objectClass string, repo repository.Repository[T], checks ...Check[T]) *CrudService[T, R] {
	return &CrudService[T, R]{noun: noun, objectClass: objectClass, repo: repo, checks: checks}
}

func (s *CrudService[T, R]) Noun() string        { return s.noun }
func (s *CrudService[T, R]) ObjectClass() string { return s.objectClass }

func (s *CrudService[T, R]) addChecks(checks ...Check[T]) {
	s.checks = append(s.checks, checks...)
}

/* ============================================
   Finder
============================================ */

func (s *CrudService[T, R]) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx, repository.All[T]())
	if err != nil {
		return 0, s.failure(OpCount, "", err)
	}
	return n, nil
}

func (s *CrudService[T, R]) CountByTestRun(ctx context.Context, testRun *model.TestRun) (int64, error) {
	runUUID := model.TestRunUUIDOf(testRun)
	n, err := s.repo.Count(ctx, repository.ByTestRun[T](runUUID))
	if err != nil {
		return 0, s.failure(OpCount, runUUID, err)
	}
	return n, nil
}

// FindAll has no pagination.
func (s *CrudService[T, R]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := s.repo.List(ctx, repository.All[T]())
	if err != nil {
		return nil, s.failure(OpList, "", err)
	}
	return rows, nil
}

func (s *CrudService[T, R]) FindByUUID(ctx context.Context, uuid string) (*T, error) {
	if !model.IsPossibleUUID(uuid) {
		return nil, IllegalArgument("%s uuid %q is malformed", s.objectClass, uuid)
	}
	return s.first(ctx, repository.ByUUID[T](uuid), uuid)
}

func (s *CrudService[T, R]) FindByID(ctx context.Context, id uint64) (*T, error) {
	return s.first(ctx, repository.ByID[T](id), strconv.FormatUint(id, 10))
}

func (s *CrudService[T, R]) FindByTestRun(ctx context.Context, testRun *model.TestRun) ([]T, error) {
	runUUID := model.TestRunUUIDOf(testRun)
	rows, err := s.repo.List(ctx, repository.ByTestRun[T](runUUID))
	if err != nil {
		return nil, s.failure(OpList, runUUID, err)
	}
	return rows, nil
}

func (s *CrudService[T, R]) first(ctx context.Context, spec repository.Spec[T], identity string) (*T, error) {
	rec, err := s.repo.First(ctx, spec)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.notFound(identity)
	}
	if err != nil {
		return nil, s.failure(OpFind, identity, err)
	}
	return rec, nil
}

/* ============================================
   Manager
============================================ */

func (s *CrudService[T, R]) Create(ctx context.Context, req R) (*T, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, IllegalArgument("%s: %v", s.objectClass, err)
	}
	rec := req.ToModel()
	return s.insert(ctx, &rec)
}

func (s *CrudService[T, R]) CreateForTesting(ctx context.Context, req R, testRun *model.TestRun) (*T, error) {
	if testRun == nil || testRun.UUID == "" {
		return nil, IllegalArgument("%s: test run with uuid required", s.objectClass)
	}
	if !model.IsPossibleUUID(testRun.UUID) {
		return nil, IllegalArgument("%s: test run uuid %q is malformed", s.objectClass, testRun.UUID)
	}
	if err := req.ValidateCreate(); err != nil {
		return nil, IllegalArgument("%s: %v", s.objectClass, err)
	}
	rec := req.ToModel()
	model.TestableOf(&rec).SetTestRun(testRun.UUID)
	return s.insert(ctx, &rec)
}

func (s *CrudService[T, R]) insert(ctx context.Context, rec *T) (*T, error) {
	if err := s.runChecks(ctx, rec); err != nil {
		return nil, err
	}
	err := s.repo.Create(ctx, rec)
	if errors.Is(err, repository.ErrConflict) {
		return nil, s.conflict(model.IdentityOf(rec).UUID, "duplicate key")
	}
	if err != nil {
		return nil, s.failure(OpCreate, model.IdentityOf(rec).UUID, err)
	}
	return rec, nil
}

// Update applies only the supplied fields. uuid, creation date and the test-run tag
// of the stored record are kept.
func (s *CrudService[T, R]) Update(ctx context.Context, uuid string, version int64, req R) (*T, error) {
	if err := req.ValidateUpdate(); err != nil {
		return nil, IllegalArgument("%s: %v", s.objectClass, err)
	}
	rec, err := s.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	stored := model.IdentityOf(rec).Version
	if version != model.AnyVersion && version != stored {
		return nil, s.conflict(uuid, fmt.Sprintf("version %d is stale, current is %d", version, stored))
	}

	req.ApplyUpdates(rec)
	if err := s.runChecks(ctx, rec); err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, rec, stored)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, s.notFound(uuid)
	case errors.Is(err, repository.ErrConflict):
		return nil, s.conflict(uuid, "concurrent update")
	case err != nil:
		return nil, s.failure(OpUpdate, uuid, err)
	}
	return rec, nil
}

// Delete is idempotent: an absent uuid is not an error.
func (s *CrudService[T, R]) Delete(ctx context.Context, uuid string, version int64) error {
	if !model.IsPossibleUUID(uuid) {
		return IllegalArgument("%s uuid %q is malformed", s.objectClass, uuid)
	}
	err := s.repo.Delete(ctx, uuid, version)
	switch {
	case err == nil, errors.Is(err, repository.ErrNotFound):
		return nil
	case errors.Is(err, repository.ErrConflict):
		return s.conflict(uuid, fmt.Sprintf("version %d is stale", version))
	default:
		return s.failure(OpDelete, uuid, err)
	}
}

/* ============================================
   Shard
============================================ */

func (s *CrudService[T, R]) TaggedUUIDs(ctx context.Context, testRunUUID string) ([]string, error) {
	if testRunUUID == "" {
		return nil, IllegalArgument("%s: test run uuid required", s.objectClass)
	}
	rows, err := s.repo.List(ctx, repository.ByTestRun[T](testRunUUID))
	if err != nil {
		return nil, s.failure(OpList, testRunUUID, err)
	}
	out := make([]string, 0, len(rows))
	for i := range rows {
		out = append(out, model.IdentityOf(&rows[i]).UUID)
	}
	return out, nil
}

func (s *CrudService[T, R]) PurgeTestRun(ctx context.Context, testRunUUID string) (int64, error) {
	if testRunUUID == "" {
		return 0, IllegalArgument("%s: refusing to purge production data", s.objectClass)
	}
	n, err := s.repo.DeleteWhere(ctx, repository.ByTestRun[T](testRunUUID))
	if err != nil {
		return n, s.failure(OpDelete, testRunUUID, err)
	}
	return n, nil
}

/* ============================================
   helpers
============================================ */

func (s *CrudService[T, R]) runChecks(ctx context.Context, rec *T) error {
	for _, check := range s.checks {
		if err := check(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *CrudService[T, R]) notFound(identity string) error {
	return &ObjectNotFoundError{Resource: s.noun, ObjectClass: s.objectClass, UUID: identity}
}

func (s *CrudService[T, R]) conflict(uuid, reason string) error {
	return &ConflictError{Resource: s.noun, ObjectClass: s.objectClass, UUID: uuid, Reason: reason}
}

func (s *CrudService[T, R]) failure(op Op, identity string, err error) error {
	return &PersistenceError{Op: op, Entity: s.noun, Identity: identity, Err: err}
}

// unique builds a Check rejecting a second record with the same natural key.
func unique[T any](s interface{ conflict(string, string) error }, repo repository.Repository[T], field string, spec func(rec *T) repository.Spec[T]) Check[T] {
	return func(ctx context.Context, rec *T) error {
		self := model.IdentityOf(rec).UUID
		n, err := repo.Count(ctx, repository.And(spec(rec), repository.ExcludingUUID[T](self)))
		if err != nil {
			return &PersistenceError{Op: OpCount, Entity: field, Identity: self, Err: err}
		}
		if n > 0 {
			return s.conflict(self, field+" already in use")
		}
		return nil
	}
}

// exists builds a Check requiring an optional uuid reference to resolve.
func exists[T any, F any](repo repository.Repository[F], field string, ref func(rec *T) *string) Check[T] {
	return func(ctx context.Context, rec *T) error {
		u := ref(rec)
		if u == nil || *u == "" {
			return nil
		}
		if !model.IsPossibleUUID(*u) {
			return IllegalArgument("%s %q is malformed", field, *u)
		}
		n, err := repo.Count(ctx, repository.ByUUID[F](*u))
		if err != nil {
			return &PersistenceError{Op: OpCount, Entity: field, Identity: *u, Err: err}
		}
		if n == 0 {
			return IllegalArgument("%s %s does not exist", field, *u)
		}
		return nil
	}
}
