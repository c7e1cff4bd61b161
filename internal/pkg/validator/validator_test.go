package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "expiry", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; expiry: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

type sampleRequest struct {
	Name   string `json:"name" validate:"required"`
	Expiry string `json:"expiry" validate:"required,datetime=2006-01-02"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestStruct_RequiredFieldIsMissingField(t *testing.T) {
	err := Struct(sampleRequest{Expiry: "2025-01-01"})

	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Struct() = %v, want ErrMissingField", err)
	}
	var reqErr *RequiredError
	if !errors.As(err, &reqErr) || reqErr.Field != "name" {
		t.Errorf("Struct() field = %v, want name", err)
	}
}

func TestStruct_FormatErrorsAreCollected(t *testing.T) {
	err := Struct(sampleRequest{Name: "CPR", Expiry: "15/09/2025", Email: "nope"})

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() = %T, want ValidationErrors", err)
	}
	m := errs.ToMap()
	if _, ok := m["expiry"]; !ok {
		t.Errorf("expected expiry error, got %v", m)
	}
	if _, ok := m["email"]; !ok {
		t.Errorf("expected email error, got %v", m)
	}
	if errors.Is(err, ErrMissingField) {
		t.Errorf("format errors must not match ErrMissingField")
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sampleRequest{Name: "CPR", Expiry: "2025-09-15"}); err != nil {
		t.Errorf("Struct() = %v, want nil", err)
	}
}
