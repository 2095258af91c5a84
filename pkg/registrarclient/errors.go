package registrarclient

import (
	"fmt"

	"registrar_backend/internals/features/registrar/service"
)

// NoUUID marks a failed list call. Count failures carry an empty uuid.
const NoUUID = "<none>"

// RestClientFailure is an unexpected HTTP status, or a transport failure when StatusCode is 0.
type RestClientFailure struct {
	Resource    string
	ObjectClass string
	// UUID is the object's uuid, NoUUID for lists, empty for counts, or "({json body})" for creates.
	UUID       string
	StatusCode int
	// Message is the server's error message when the body carried one.
	Message string
	Err     error
}

func (e *RestClientFailure) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s %s %s: %v", e.Resource, e.ObjectClass, e.UUID, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s %s: status %d: %s", e.Resource, e.ObjectClass, e.UUID, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s %s %s: status %d", e.Resource, e.ObjectClass, e.UUID, e.StatusCode)
	}
}

func (e *RestClientFailure) Unwrap() error { return e.Err }

// Not-found, conflict, illegal-argument and unsupported errors are the service
// package's, so errors.Is works the same against either implementation.
var (
	ErrNotFound        = service.ErrNotFound
	ErrConflict        = service.ErrConflict
	ErrIllegalArgument = service.ErrIllegalArgument
	ErrUnsupported     = service.ErrUnsupported
)
