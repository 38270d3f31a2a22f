package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thanksledger/internal/repository"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", repository.ErrAccountNotFound, http.StatusNotFound},
		{"insufficient funds", repository.ErrInsufficientFunds, http.StatusBadRequest},
		{"pool exhausted", repository.ErrPoolExhausted, http.StatusInternalServerError},
		{"store error", &repository.StoreError{Op: "commit", Err: errors.New("broken pipe")}, http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("debit: %w", repository.ErrAccountNotFound), http.StatusNotFound},
		{"unclassified", errors.New("surprise"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestWriteError_StoreErrorCarriesDiagnostic(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, &repository.StoreError{Op: "lock balance", Err: errors.New("connection reset")})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection reset") {
		t.Errorf("expected diagnostic in body, got %q", rec.Body.String())
	}
}

func TestWriteError_RejectionHasEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, repository.ErrInsufficientFunds)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}
