package services

import (
	"context"
	"errors"

	"thanksledger/internal/metrics"
	"thanksledger/internal/models"
	"thanksledger/internal/repository"
)

// LedgerService runs the two ledger operations over the accounts store.
// The debit amount is fixed per service instance, configured at startup.
type LedgerService struct {
	accounts repository.Accounts
	amount   int64
}

func NewLedgerService(accounts repository.Accounts, amount int64) *LedgerService {
	return &LedgerService{accounts: accounts, amount: amount}
}

// Amount is the fixed number of smallest units debited per thank.
func (s *LedgerService) Amount() int64 { return s.amount }

func (s *LedgerService) UserCount(ctx context.Context) (int64, error) {
	return s.accounts.CountUsers(ctx)
}

// Thank debits the configured amount from the account's balance. The store
// serializes concurrent thanks for the same login; this layer adds no
// locking of its own.
func (s *LedgerService) Thank(ctx context.Context, login string) (models.Account, error) {
	acct, err := s.accounts.Debit(ctx, login, s.amount)
	metrics.DebitsTotal.WithLabelValues(debitOutcome(err)).Inc()
	if err != nil {
		return models.Account{}, err
	}
	return acct, nil
}

func debitOutcome(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, repository.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, repository.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, repository.ErrPoolExhausted):
		return "pool_exhausted"
	default:
		return "store_error"
	}
}
