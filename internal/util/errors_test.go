package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorKinds(t *testing.T) {
	notFound := NotFoundErr("course", "abc")
	if !errors.Is(notFound, ErrNotFound) {
		t.Error("NotFoundErr does not match ErrNotFound")
	}
	if errors.Is(notFound, ErrInvalidInput) {
		t.Error("NotFoundErr matches the wrong kind")
	}
	if !strings.Contains(notFound.Error(), "course") || !strings.Contains(notFound.Error(), "abc") {
		t.Errorf("message %q should name entity and id", notFound.Error())
	}

	invalid := InvalidInputErr("elapsed time must be non-negative")
	if !errors.Is(invalid, ErrInvalidInput) {
		t.Error("InvalidInputErr does not match ErrInvalidInput")
	}
	if !strings.Contains(invalid.Error(), "elapsed time") {
		t.Errorf("message %q should carry the reason", invalid.Error())
	}
}

func TestStoreErrUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := StoreErr("test_submission", cause)

	if !errors.Is(err, ErrStoreFailure) {
		t.Error("StoreErr does not match ErrStoreFailure")
	}
	if !errors.Is(err, cause) {
		t.Error("StoreErr does not unwrap to its cause")
	}
}
