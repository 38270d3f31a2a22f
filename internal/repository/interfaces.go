package repository

import (
	"context"

	"thanksledger/internal/models"
)

// Accounts is the storage contract for the balance ledger. Implementations
// must serialize concurrent Debit calls on the same login (the postgres one
// via a row lock, so the guarantee holds across processes) while letting
// debits on distinct logins proceed in parallel.
type Accounts interface {
	// CountUsers returns the number of accounts, excluding the sentinel row.
	CountUsers(ctx context.Context) (int64, error)

	// Debit atomically subtracts amount from the account's balance if the
	// balance is sufficient, and returns the account with its remaining
	// balance. It never creates accounts and never leaves a partial debit:
	// on ErrAccountNotFound, ErrInsufficientFunds or any store failure the
	// balance is unchanged.
	Debit(ctx context.Context, login string, amount int64) (models.Account, error)
}
