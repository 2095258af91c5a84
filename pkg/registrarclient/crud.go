package registrarclient

import (
	"context"
	"strings"

	"registrar_backend/internals/features/registrar/dto"
	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/service"
)

// CrudClient implements service.Service over HTTP. Arguments are checked before
// any network call.
type CrudClient[T any, R dto.Request[T]] struct {
	endpoint[T]
}

func newCrudClient[T any, R dto.Request[T]](c *Client, noun, objectClass string) *CrudClient[T, R] {
	return &CrudClient[T, R]{endpoint[T]{c: c, noun: noun, objectClass: objectClass}}
}

// Resource is the collection URL, {base}/{noun}/.
func (cc *CrudClient[T, R]) Resource() string { return cc.resource() }

func (cc *CrudClient[T, R]) Count(ctx context.Context) (int64, error) {
	return cc.count(ctx, nil)
}

// CountByTestRun counts the run's records; a nil run (or one without uuid) counts production records.
func (cc *CrudClient[T, R]) CountByTestRun(ctx context.Context, testRun *model.TestRun) (int64, error) {
	return cc.count(ctx, testRunQuery(testRun))
}

func (cc *CrudClient[T, R]) FindAll(ctx context.Context) ([]T, error) {
	return cc.list(ctx, nil)
}

func (cc *CrudClient[T, R]) FindByUUID(ctx context.Context, uuid string) (*T, error) {
	if err := cc.checkUUID(uuid); err != nil {
		return nil, err
	}
	return cc.get(ctx, uuid)
}

// FindByID is not available remotely: numeric ids never leave the server.
func (cc *CrudClient[T, R]) FindByID(context.Context, uint64) (*T, error) {
	return nil, service.Unsupported(cc.objectClass, "findByID")
}

func (cc *CrudClient[T, R]) FindByTestRun(ctx context.Context, testRun *model.TestRun) ([]T, error) {
	return cc.list(ctx, testRunQuery(testRun))
}

func (cc *CrudClient[T, R]) Create(ctx context.Context, req R) (*T, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, service.IllegalArgument("%s: %v", cc.objectClass, err)
	}
	return cc.create(ctx, req, nil)
}

func (cc *CrudClient[T, R]) CreateForTesting(ctx context.Context, req R, testRun *model.TestRun) (*T, error) {
	if testRun == nil || strings.TrimSpace(testRun.UUID) == "" {
		return nil, service.IllegalArgument("%s: test run with uuid required", cc.objectClass)
	}
	if err := cc.checkUUID(testRun.UUID); err != nil {
		return nil, err
	}
	if err := req.ValidateCreate(); err != nil {
		return nil, service.IllegalArgument("%s: %v", cc.objectClass, err)
	}
	return cc.create(ctx, req, map[string]string{"testUuid": testRun.UUID})
}

func (cc *CrudClient[T, R]) Update(ctx context.Context, uuid string, version int64, req R) (*T, error) {
	if err := cc.checkUUID(uuid); err != nil {
		return nil, err
	}
	if err := req.ValidateUpdate(); err != nil {
		return nil, service.IllegalArgument("%s: %v", cc.objectClass, err)
	}
	return cc.update(ctx, uuid, version, req)
}

func (cc *CrudClient[T, R]) Delete(ctx context.Context, uuid string, version int64) error {
	if err := cc.checkUUID(uuid); err != nil {
		return err
	}
	return cc.delete(ctx, uuid, version, nil)
}

func (cc *CrudClient[T, R]) checkUUID(uuid string) error {
	if !model.IsPossibleUUID(uuid) {
		return service.IllegalArgument("%s uuid %q is malformed", cc.objectClass, uuid)
	}
	return nil
}

func testRunQuery(testRun *model.TestRun) map[string]string {
	if testRun == nil || testRun.UUID == "" {
		return map[string]string{"productionOnly": "true"}
	}
	return map[string]string{"testUuid": testRun.UUID}
}
