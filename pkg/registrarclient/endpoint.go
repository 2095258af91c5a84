package registrarclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"registrar_backend/internals/features/registrar/model"
	"registrar_backend/internals/features/registrar/service"
)

// endpoint speaks the wire protocol of one resource: {base}/{noun}/.
type endpoint[T any] struct {
	c           *Client
	noun        string
	objectClass string
}

func (e endpoint[T]) resource() string { return e.c.base + "/" + e.noun + "/" }

func (e endpoint[T]) path(uuid string) string { return "/" + e.noun + "/" + uuid }

func (e endpoint[T]) count(ctx context.Context, query map[string]string) (int64, error) {
	q := map[string]string{"countOnly": "true"}
	for k, v := range query {
		q[k] = v
	}
	resp, err := e.c.do(ctx, http.MethodGet, e.path(""), q, nil)
	if err != nil {
		return 0, e.transport("", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, e.failure("", resp)
	}
	var n int64
	if err := json.Unmarshal(resp.Body(), &n); err != nil {
		return 0, e.decode("", resp, err)
	}
	return n, nil
}

func (e endpoint[T]) list(ctx context.Context, query map[string]string) ([]T, error) {
	resp, err := e.c.do(ctx, http.MethodGet, e.path(""), query, nil)
	if err != nil {
		return nil, e.transport(NoUUID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, e.failure(NoUUID, resp)
	}
	out := []T{}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, e.decode(NoUUID, resp, err)
	}
	return out, nil
}

func (e endpoint[T]) get(ctx context.Context, uuid string) (*T, error) {
	resp, err := e.c.do(ctx, http.MethodGet, e.path(uuid), nil, nil)
	if err != nil {
		return nil, e.transport(uuid, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return e.entity(uuid, resp)
	case http.StatusNotFound:
		return nil, e.notFound(uuid)
	default:
		return nil, e.failure(uuid, resp)
	}
}

func (e endpoint[T]) create(ctx context.Context, body any, query map[string]string) (*T, error) {
	resp, err := e.c.do(ctx, http.MethodPost, e.path(""), query, body)
	marker := bodyMarker(body)
	if err != nil {
		return nil, e.transport(marker, err)
	}
	switch resp.StatusCode() {
	case http.StatusCreated:
		return e.entity(marker, resp)
	case http.StatusConflict:
		return nil, e.conflict("", resp)
	default:
		return nil, e.failure(marker, resp)
	}
}

func (e endpoint[T]) update(ctx context.Context, uuid string, version int64, body any) (*T, error) {
	resp, err := e.c.do(ctx, http.MethodPost, e.path(uuid), versionQuery(version, nil), body)
	if err != nil {
		return nil, e.transport(uuid, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return e.entity(uuid, resp)
	case http.StatusNotFound:
		return nil, e.notFound(uuid)
	case http.StatusConflict:
		return nil, e.conflict(uuid, resp)
	default:
		return nil, e.failure(uuid, resp)
	}
}

// delete treats 200, 204 and 404 alike: the object is gone.
func (e endpoint[T]) delete(ctx context.Context, uuid string, version int64, query map[string]string) error {
	resp, err := e.c.do(ctx, http.MethodDelete, e.path(uuid), versionQuery(version, query), nil)
	if err != nil {
		return e.transport(uuid, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	case http.StatusConflict:
		return e.conflict(uuid, resp)
	default:
		return e.failure(uuid, resp)
	}
}

/* ============================================
   helpers
============================================ */

func (e endpoint[T]) entity(uuid string, resp *resty.Response) (*T, error) {
	var out T
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, e.decode(uuid, resp, err)
	}
	return &out, nil
}

func (e endpoint[T]) notFound(uuid string) error {
	return &service.ObjectNotFoundError{Resource: e.resource(), ObjectClass: e.objectClass, UUID: uuid}
}

func (e endpoint[T]) conflict(uuid string, resp *resty.Response) error {
	return &service.ConflictError{Resource: e.resource(), ObjectClass: e.objectClass, UUID: uuid, Reason: serverMessage(resp)}
}

func (e endpoint[T]) failure(uuid string, resp *resty.Response) error {
	return &RestClientFailure{
		Resource:    e.resource(),
		ObjectClass: e.objectClass,
		UUID:        uuid,
		StatusCode:  resp.StatusCode(),
		Message:     serverMessage(resp),
	}
}

func (e endpoint[T]) transport(uuid string, err error) error {
	return &RestClientFailure{Resource: e.resource(), ObjectClass: e.objectClass, UUID: uuid, Err: err}
}

func (e endpoint[T]) decode(uuid string, resp *resty.Response, err error) error {
	return &RestClientFailure{
		Resource:    e.resource(),
		ObjectClass: e.objectClass,
		UUID:        uuid,
		StatusCode:  resp.StatusCode(),
		Err:         err,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

func serverMessage(resp *resty.Response) string {
	var b errorBody
	if err := json.Unmarshal(resp.Body(), &b); err != nil {
		return ""
	}
	return b.Message
}

func bodyMarker(body any) string {
	raw, err := json.Marshal(body)
	if err != nil {
		return "(?)"
	}
	return "(" + string(raw) + ")"
}

func versionQuery(version int64, extra map[string]string) map[string]string {
	q := map[string]string{}
	for k, v := range extra {
		q[k] = v
	}
	if version != model.AnyVersion {
		q["version"] = strconv.FormatInt(version, 10)
	}
	return q
}
