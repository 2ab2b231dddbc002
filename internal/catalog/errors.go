package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ValidationError reports a missing or invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation on an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ReferentialError reports a product pointing at a missing service.
type ReferentialError struct {
	ServiceID int64
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("service %d does not exist", e.ServiceID)
}

// StoreError wraps an underlying persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: errors.WithStack(err)}
}

// lookupErr turns a First() failure into NotFoundError or StoreError.
func lookupErr(entity string, id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return storeErr("get "+entity, err)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

func IsReferential(err error) bool {
	var v *ReferentialError
	return errors.As(err, &v)
}
