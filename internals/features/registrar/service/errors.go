// file: internals/features/registrar/service/errors.go
package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("object not found")
	ErrConflict        = errors.New("conflict")
	ErrIllegalArgument = errors.New("illegal argument")
	ErrUnsupported     = errors.New("operation not supported")
)

// ObjectNotFoundError names the lookup that missed. Resource is the noun on the
// server side and the resource URL on the client side.
type ObjectNotFoundError struct {
	Resource    string
	ObjectClass string
	UUID        string
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found (%s)", e.ObjectClass, e.UUID, e.Resource)
}

func (e *ObjectNotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a stale version or a taken unique key.
type ConflictError struct {
	Resource    string
	ObjectClass string
	UUID        string
	Reason      string
}

func (e *ConflictError) Error() string {
	if e.UUID == "" {
		return fmt.Sprintf("%s conflict: %s", e.ObjectClass, e.Reason)
	}
	return fmt.Sprintf("%s %s conflict: %s", e.ObjectClass, e.UUID, e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type Op string

const (
	OpCount  Op = "count"
	OpFind   Op = "find"
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// PersistenceError wraps an unexpected store failure with the operation and identity involved.
type PersistenceError struct {
	Op       Op
	Entity   string
	Identity string
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.Identity == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s %s [%s]: %v", e.Op, e.Entity, e.Identity, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IllegalArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalArgument, fmt.Sprintf(format, args...))
}

func Unsupported(objectClass, op string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnsupported, objectClass, op)
}
