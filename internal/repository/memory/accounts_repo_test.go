package memory

import (
	"context"
	"errors"
	"testing"

	"thanksledger/internal/repository"
)

func TestAccountsRepo_Debit_Success(t *testing.T) {
	ctx := context.Background()
	repo := NewAccounts()
	repo.Seed("alice", 100)

	acct, err := repo.Debit(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.Login != "alice" || acct.Balance != 99 {
		t.Errorf("expected alice/99, got %s/%d", acct.Login, acct.Balance)
	}
	if b, _ := repo.Balance("alice"); b != 99 {
		t.Errorf("expected stored balance 99, got %d", b)
	}
}

func TestAccountsRepo_Debit_UnknownLogin(t *testing.T) {
	repo := NewAccounts()

	_, err := repo.Debit(context.Background(), "nobody", 1)
	if !errors.Is(err, repository.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountsRepo_Debit_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	repo := NewAccounts()
	repo.Seed("bob", 0)

	for i := 0; i < 3; i++ {
		_, err := repo.Debit(ctx, "bob", 1)
		if !errors.Is(err, repository.ErrInsufficientFunds) {
			t.Fatalf("attempt %d: expected ErrInsufficientFunds, got %v", i, err)
		}
	}
	if b, _ := repo.Balance("bob"); b != 0 {
		t.Errorf("expected balance unchanged at 0, got %d", b)
	}
}

func TestAccountsRepo_Debit_FaultBeforeApply(t *testing.T) {
	ctx := context.Background()
	repo := NewAccounts()
	repo.Seed("carol", 10)
	repo.BeforeApply = func(ctx context.Context) error {
		return errors.New("injected update failure")
	}

	_, err := repo.Debit(ctx, "carol", 1)
	var se *repository.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if b, _ := repo.Balance("carol"); b != 10 {
		t.Errorf("expected balance unchanged at 10, got %d", b)
	}
}

func TestAccountsRepo_CountUsers_ExcludesSentinel(t *testing.T) {
	repo := NewAccounts()
	repo.Seed("alice", 100)
	repo.Seed("bob", 0)
	repo.Seed("hello world", 0)

	n, err := repo.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 users, got %d", n)
	}
}
