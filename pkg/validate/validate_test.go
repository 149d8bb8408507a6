package validate

import (
	"testing"

	"github.com/labstack/echo/v4"
)

type samplePayload struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	if err := v.Validate(&samplePayload{Name: "Lan"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RequiredMissing(t *testing.T) {
	v := New()
	err := v.Validate(&samplePayload{})
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != 400 {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestValidate_BadEmail(t *testing.T) {
	v := New()
	if err := v.Validate(&samplePayload{Name: "Lan", Email: "not-an-email"}); err == nil {
		t.Fatal("expected error for malformed email")
	}
}
