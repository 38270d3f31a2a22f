package memory

import (
	"context"
	"sync"

	"thanksledger/internal/models"
	"thanksledger/internal/repository"
)

// AccountsRepo is an in-memory repository.Accounts for tests. It mirrors
// the locking shape of the postgres implementation: one lock per login
// serializes same-account debits, while debits on distinct logins never
// contend with each other.
type AccountsRepo struct {
	mu       sync.Mutex
	balances map[string]int64
	rowLocks map[string]*sync.Mutex
	sentinel string

	// BeforeApply, when set, runs between the sufficiency check and the
	// balance mutation, under the account's row lock. Returning an error
	// aborts the debit with the balance untouched.
	BeforeApply func(ctx context.Context) error
}

func NewAccounts() *AccountsRepo {
	return &AccountsRepo{
		balances: make(map[string]int64),
		rowLocks: make(map[string]*sync.Mutex),
		sentinel: "hello world",
	}
}

// Seed creates or resets an account. Accounts are otherwise never created
// by the repository, matching the production contract.
func (m *AccountsRepo) Seed(login string, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[login] = balance
	if _, ok := m.rowLocks[login]; !ok {
		m.rowLocks[login] = &sync.Mutex{}
	}
}

// Balance reports the current balance, for test assertions.
func (m *AccountsRepo) Balance(login string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[login]
	return b, ok
}

func (m *AccountsRepo) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for login := range m.balances {
		if login != m.sentinel {
			n++
		}
	}
	return n, nil
}

func (m *AccountsRepo) Debit(ctx context.Context, login string, amount int64) (models.Account, error) {
	m.mu.Lock()
	row, ok := m.rowLocks[login]
	m.mu.Unlock()
	if !ok {
		return models.Account{}, repository.ErrAccountNotFound
	}

	// The per-login "row lock". Held across check and apply, like the
	// FOR UPDATE transaction in the postgres implementation.
	row.Lock()
	defer row.Unlock()

	m.mu.Lock()
	balance := m.balances[login]
	m.mu.Unlock()

	if balance < amount {
		return models.Account{}, repository.ErrInsufficientFunds
	}

	if m.BeforeApply != nil {
		if err := m.BeforeApply(ctx); err != nil {
			return models.Account{}, &repository.StoreError{Op: "apply debit", Err: err}
		}
	}

	m.mu.Lock()
	m.balances[login] -= amount
	remaining := m.balances[login]
	m.mu.Unlock()

	return models.Account{Login: login, Balance: remaining}, nil
}

var _ repository.Accounts = (*AccountsRepo)(nil)
