package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_TypeChecks(t *testing.T) {
	if !IsValidation(NewValidationError("missing field")) {
		t.Error("expected validation error to match IsValidation")
	}
	if !IsAPI(NewAPIError(500, "boom")) {
		t.Error("expected api error to match IsAPI")
	}
	if !IsTransport(NewTransportError("down", errors.New("dial tcp"))) {
		t.Error("expected transport error to match IsTransport")
	}
	if IsValidation(NewAPIError(400, "bad request")) {
		t.Error("api error must not match IsValidation")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("plain error must not match IsValidation")
	}
}

func TestAppError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("empty title"))
	if !IsValidation(err) {
		t.Error("expected wrapped validation error to match")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(NewAPIError(422, "judul sudah dipakai"), "fallback"); got != "judul sudah dipakai" {
		t.Errorf("unexpected message %q", got)
	}
	if got := UserMessage(errors.New("dial tcp"), "Gagal membuat iklan!"); got != "Gagal membuat iklan!" {
		t.Errorf("unexpected fallback %q", got)
	}
}
