package result

import (
	"errors"
	"testing"
)

func TestSuccessCarriesOnlyValue(t *testing.T) {
	r := Success("https://example.test/a.pdf")
	if r.IsError() || !r.IsSuccess() {
		t.Fatalf("expected success variant")
	}
	if r.Err() != nil {
		t.Fatalf("expected nil error, got %v", r.Err())
	}
	v, err := r.Unwrap()
	if err != nil || v != "https://example.test/a.pdf" {
		t.Fatalf("Unwrap = %q, %v", v, err)
	}
}

func TestFailureCarriesOnlyError(t *testing.T) {
	boom := errors.New("boom")
	r := Failure[int](boom)
	if !r.IsError() || r.IsSuccess() {
		t.Fatalf("expected error variant")
	}
	if !errors.Is(r.Err(), boom) {
		t.Fatalf("expected boom, got %v", r.Err())
	}
	if r.Value() != 0 {
		t.Fatalf("expected zero value, got %d", r.Value())
	}
}

func TestFailureRejectsNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil error")
		}
	}()
	_ = Failure[string](nil)
}
