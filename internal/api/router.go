package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"thanksledger/internal/api/httpx"
	"thanksledger/internal/api/validate"
	"thanksledger/internal/config"
	"thanksledger/internal/metrics"
	"thanksledger/internal/middleware"
	"thanksledger/internal/services"
)

// maxLoginBytes bounds the raw-text login body.
const maxLoginBytes = 512

// debitTimeout bounds a debit that has been detached from the client's
// context; the row lock is never held longer than this.
const debitTimeout = 30 * time.Second

func NewRouter(cfg config.Config, ledger *services.LedgerService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// ---------- user count ----------
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		n, err := ledger.UserCount(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteText(w, fmt.Sprintf("%d users", n))
	})

	// ---------- conditional debit ----------
	r.Post("/thanks", func(w http.ResponseWriter, r *http.Request) {
		// Read one byte past the limit so an oversized body is detected and
		// rejected rather than truncated to a prefix that may name another
		// account.
		body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBytes+1))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if len(body) > maxLoginBytes {
			http.Error(w, "login too long", http.StatusBadRequest)
			return
		}
		login := string(body)
		if ef := validate.Required("login", login); ef != nil {
			http.Error(w, ef.Error(), http.StatusBadRequest)
			return
		}

		// Detach from the client's context: a dropped connection must not
		// strand the transaction holding the account's row lock.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), debitTimeout)
		defer cancel()

		acct, err := ledger.Thank(ctx, login)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteText(w, fmt.Sprintf("%d thanks to user %s", ledger.Amount(), acct.Login))
	})

	return r
}
