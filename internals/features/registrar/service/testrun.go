// file: internals/features/registrar/service/testrun.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/repository"
)

var _ TestRuns = (*TestRunService)(nil)

// TestRunService manages test runs and knows every shard that can hold data tagged with one.
// A run is its own shard, so production scope (CountByTestRun(nil), FindByTestRun(nil)) is always empty for runs.
type TestRunService struct {
	*CrudService[model.TestRun, dto.TestRunRequest]

	mu     sync.RWMutex
	shards []Shard
}

func NewTestRunService(repo repository.Repository[model.TestRun]) *TestRunService {
	return &TestRunService{
		CrudService: NewCrudService[model.TestRun, dto.TestRunRequest]("testRun", "TestRun", repo),
	}
}

func (s *TestRunService) Register(shards ...Shard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shards = append(s.shards, shards...)
}

func (s *TestRunService) registered() []Shard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Shard(nil), s.shards...)
}

// FindByUUID also lists the records tagged with the run.
func (s *TestRunService) FindByUUID(ctx context.Context, uuid string) (*model.TestRun, error) {
	run, err := s.CrudService.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	objects := []model.ObjectRef{}
	for _, shard := range s.registered() {
		ids, err := shard.TaggedUUIDs(ctx, run.UUID)
		if err != nil {
			return nil, fmt.Errorf("collect %s objects of test run %s: %w", shard.Noun(), run.UUID, err)
		}
		for _, id := range ids {
			objects = append(objects, model.ObjectRef{Noun: shard.Noun(), UUID: id})
		}
	}
	run.Objects = objects
	return run, nil
}

// A test run cannot itself belong to a test run.
func (s *TestRunService) CreateForTesting(context.Context, dto.TestRunRequest, *model.TestRun) (*model.TestRun, error) {
	return nil, Unsupported("TestRun", "createForTesting")
}

// Teardown purges every shard of the run's data, then deletes the run.
// An absent run is not an error.
func (s *TestRunService) Teardown(ctx context.Context, uuid string, version int64) error {
	run, err := s.CrudService.FindByUUID(ctx, uuid)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if version != model.AnyVersion && version != run.Version {
		return s.conflict(uuid, fmt.Sprintf("version %d is stale, current is %d", version, run.Version))
	}

	for _, shard := range s.registered() {
		if _, err := shard.PurgeTestRun(ctx, run.UUID); err != nil {
			return fmt.Errorf("teardown %s of test run %s: %w", shard.Noun(), run.UUID, err)
		}
	}
	return s.Delete(ctx, uuid, run.Version)
}
