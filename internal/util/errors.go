package util

import (
	"errors"
	"fmt"
)

// Error kinds. Services return AppError values wrapping one of these so
// controllers can map them to HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStoreFailure = errors.New("store failure")
)

// AppError carries the failure kind plus the entity and identity that
// triggered it, enough to render a user-facing message.
type AppError struct {
	Kind   error
	Entity string
	ID     string
	Msg    string
	Err    error
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Entity, e.Kind, e.Err)
	case e.ID != "":
		return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Kind)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	default:
		return e.Kind.Error()
	}
}

func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFoundErr(entity, id string) error {
	return &AppError{Kind: ErrNotFound, Entity: entity, ID: id}
}

func InvalidInputErr(msg string) error {
	return &AppError{Kind: ErrInvalidInput, Msg: msg}
}

// StoreErr wraps a persistence failure. Not retried at this layer.
func StoreErr(entity string, err error) error {
	return &AppError{Kind: ErrStoreFailure, Entity: entity, Err: err}
}
