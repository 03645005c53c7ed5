package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := NotFound("GitHub user", "octocat")

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() should match ErrNotFound via errors.Is")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("NotFound() should not match ErrValidation")
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("email", "invalid email address")

	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
	if err.Error() != "invalid email address" {
		t.Errorf("Error() = %q, want the message", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationFailed() should match ErrValidation")
	}
}

func TestWrapped_SurvivesErrorsIs(t *testing.T) {
	// Services wrap AppErrors with fmt.Errorf("%w", ...); both errors.Is
	// and errors.As must still see through the chain.
	inner := UpstreamTimeout("GitHub API timeout")
	wrapped := fmt.Errorf("comparing profiles: %w", inner)

	if !errors.Is(wrapped, ErrUpstreamTimeout) {
		t.Error("wrapped error should match ErrUpstreamTimeout")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should extract the *AppError")
	}
	if appErr.Message != "GitHub API timeout" {
		t.Errorf("Message = %q, want %q", appErr.Message, "GitHub API timeout")
	}
}

func TestUnauthorized_And_Conflict_Kinds(t *testing.T) {
	if !errors.Is(Unauthorized("nope"), ErrUnauthorized) {
		t.Error("Unauthorized() should match ErrUnauthorized")
	}
	if !errors.Is(Conflict("taken"), ErrConflict) {
		t.Error("Conflict() should match ErrConflict")
	}
	if !errors.Is(Upstream("boom"), ErrUpstream) {
		t.Error("Upstream() should match ErrUpstream")
	}
}
