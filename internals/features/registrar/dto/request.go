// file: internals/features/registrar/dto/request.go
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"registrar_backend/internals/features/registrar/model"
)

// Request is the creatable/updatable attribute set of one entity. Every field is a
// pointer: nil means "not sent", which is also what keeps it off the wire (omitempty).
type Request[T any] interface {
	ValidateCreate() error
	// ValidateUpdate rejects sent fields that would leave the record invalid.
	ValidateUpdate() error
	ToModel() T
	ApplyUpdates(ent *T)
}

var (
	ErrMissingField  = errors.New("missing required field")
	ErrMalformedUUID = errors.New("malformed uuid reference")
	ErrInvalidRange  = errors.New("invalid range")
)

// NewValidator returns a validator with the possible_uuid tag registered.
// possible_uuid accepts an empty string, which clears a reference.
// Field errors are reported under their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("possible_uuid", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || model.IsPossibleUUID(s)
	})
	return v
}

func required(field string, v *string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

// notBlank is required() for update requests: an absent field is fine, a blank one is not.
func notBlank(field string, v *string) error {
	if v == nil {
		return nil
	}
	return required(field, v)
}

func reference(field string, v *string) error {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s != "" && !model.IsPossibleUUID(s) {
		return fmt.Errorf("%w: %s=%q", ErrMalformedUUID, field, s)
	}
	return nil
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

// Ptr is a convenience for building requests in code.
func Ptr[V any](v V) *V { return &v }
