package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"thanksledger/internal/db"
	"thanksledger/internal/models"
	"thanksledger/internal/repository"
)

// countSentinel is a placeholder row excluded from user counts.
const countSentinel = "hello world"

type accountsRepo struct {
	pool *db.Pool

	// beforeApply, when set, runs between the locking read and the update.
	// Test-only fault injection point; nil in production.
	beforeApply func(ctx context.Context) error
}

type Option func(*accountsRepo)

// WithBeforeApply installs a hook invoked after the sufficiency check and
// before the balance update, inside the open transaction.
func WithBeforeApply(fn func(ctx context.Context) error) Option {
	return func(r *accountsRepo) { r.beforeApply = fn }
}

func NewAccounts(pool *db.Pool, opts ...Option) repository.Accounts {
	r := &accountsRepo{pool: pool}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *accountsRepo) CountUsers(ctx context.Context) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var n int64
	if err := conn.QueryRow(ctx, `SELECT count(*) FROM users WHERE login != $1`, countSentinel).Scan(&n); err != nil {
		return 0, &repository.StoreError{Op: "count users", Err: err}
	}
	return n, nil
}

// Debit runs the conditional-debit transaction. The SELECT ... FOR UPDATE
// holds the account's row lock until commit or rollback, so two debits on
// the same login are serialized by the database itself; no in-process lock
// is taken, which keeps the guarantee valid across server instances.
func (r *accountsRepo) Debit(ctx context.Context, login string, amount int64) (models.Account, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Account{}, err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return models.Account{}, &repository.StoreError{Op: "begin", Err: err}
	}
	// Safety net: after a successful commit this is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE login = $1 FOR UPDATE`, login).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, repository.ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, &repository.StoreError{Op: "lock balance", Err: err}
	}

	slog.Debug("debit", "login", login, "balance", balance, "amount", amount, "remaining", balance-amount)
	if balance < amount {
		return models.Account{}, repository.ErrInsufficientFunds
	}

	if r.beforeApply != nil {
		if err := r.beforeApply(ctx); err != nil {
			return models.Account{}, &repository.StoreError{Op: "apply debit", Err: err}
		}
	}

	// No re-read, no re-check: the row lock held since the SELECT means the
	// balance cannot have moved underneath this transaction.
	if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance - $1 WHERE login = $2`, amount, login); err != nil {
		return models.Account{}, &repository.StoreError{Op: "apply debit", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Account{}, &repository.StoreError{Op: "commit", Err: err}
	}

	return models.Account{Login: login, Balance: balance - amount}, nil
}
