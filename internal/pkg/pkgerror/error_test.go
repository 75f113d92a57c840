package pkgerror

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeValidation.String(); got != "ERROR_TYPE_VALIDATION" {
		t.Fatalf("unexpected validation string: %q", got)
	}
	if got := TypeUnavailable.String(); got != "ERROR_TYPE_UNAVAILABLE" {
		t.Fatalf("unexpected unavailable string: %q", got)
	}
	if got := TypeServer.String(); got != "ERROR_TYPE_SERVER" {
		t.Fatalf("unexpected server string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeString(t *testing.T) {
	tests := map[Code]string{
		CodeInvalidInput: "ERROR_CODE_INVALID_INPUT",
		CodeNotFound:     "ERROR_CODE_NOT_FOUND",
		CodeUnavailable:  "ERROR_CODE_UNAVAILABLE",
		CodeTimeout:      "ERROR_CODE_TIMEOUT",
		CodeInternal:     "ERROR_CODE_INTERNAL",
		Code(99):         "ERROR_CODE_INTERNAL",
	}
	for code, want := range tests {
		if got := code.String(); got != want {
			t.Fatalf("Code(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	root := errors.New("boom")
	err := NewServer(root)
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Msg(); got != "Internal server error" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.Type(); got != TypeServer {
		t.Fatalf("unexpected type: %v", got)
	}
	if got := gerr.Code(); got != CodeInternal {
		t.Fatalf("unexpected code: %v", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
	if got := gerr.Fields(); got != nil {
		t.Fatalf("unexpected fields: %v", got)
	}
}

func TestValidationErrors(t *testing.T) {
	root := errors.New("bad")
	invalidInput := NewInvalidInput(root)
	if got := invalidInput.Error(); got != "bad" {
		t.Fatalf("unexpected invalid input error: %q", got)
	}
	if !errors.Is(invalidInput, root) {
		t.Fatalf("expected invalid input to wrap error")
	}

	field := NewInvalidField("min_amount", errors.New("must be a number")).(*Error)
	if got := field.StatusCode(); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected invalid field status: %d", got)
	}
	fields := field.Fields()
	if got := fields["min_amount"]; got != "must be a number" {
		t.Fatalf("unexpected field detail: %q", got)
	}

	fields["min_amount"] = "mutated"
	if got := field.Fields()["min_amount"]; got != "must be a number" {
		t.Fatalf("Fields() must return a copy, got %q", got)
	}
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailable(ErrNotReady).(*Error)
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady to be wrapped")
	}
	if got := err.StatusCode(); got != http.StatusServiceUnavailable {
		t.Fatalf("unexpected unavailable status: %d", got)
	}
	if got := err.Msg(); got != "service unavailable" {
		t.Fatalf("unexpected unavailable msg: %q", got)
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	validation := new(nil, "", TypeValidation, CodeInternal)
	if got := validation.Error(); got != "Validation violation" {
		t.Fatalf("unexpected validation fallback: %q", got)
	}

	unavailable := new(nil, "", TypeUnavailable, CodeInternal)
	if got := unavailable.Error(); got != "Service unavailable" {
		t.Fatalf("unexpected unavailable fallback: %q", got)
	}

	server := new(nil, "", TypeServer, CodeInternal)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewInvalidField("min_amount", errors.New("nan")).(*Error)
	str := err.String()
	if !strings.Contains(str, "ERROR_TYPE_VALIDATION") {
		t.Fatalf("expected error type in string: %q", str)
	}
	if !strings.Contains(str, "ERROR_CODE_INVALID_INPUT") {
		t.Fatalf("expected error code in string: %q", str)
	}
	if !strings.Contains(str, "min_amount") {
		t.Fatalf("expected field in string: %q", str)
	}
}
