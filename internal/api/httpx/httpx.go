package httpx

import (
	"errors"
	"net/http"

	"thanksledger/internal/repository"
)

// StatusFor maps the storage error taxonomy to HTTP statuses. The mapping
// is spelled out case by case over the closed set; an error outside the
// taxonomy is a server fault and is handled explicitly, not by accident of
// a default branch.
func StatusFor(err error) int {
	var se *repository.StoreError
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrPoolExhausted):
		return http.StatusInternalServerError
	case errors.As(err, &se):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders a classified failure. Business rejections carry no
// body; server faults carry the raw diagnostic text.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(status)
}

func WriteText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
