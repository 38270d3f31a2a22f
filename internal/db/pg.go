package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"thanksledger/internal/config"
	"thanksledger/internal/repository"
)

// Pool is the shared connection pool. It wraps pgxpool so that every
// acquisition waits at most the configured timeout instead of queuing
// without bound behind a saturated pool.
type Pool struct {
	*pgxpool.Pool
	acquireTimeout time.Duration
}

func New(ctx context.Context, cfg config.Config) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}
	pc.MaxConns = cfg.DBMaxConns

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &Pool{Pool: pool, acquireTimeout: cfg.DBAcquireTimeout}, nil
}

// Acquire hands out a pooled connection. The caller must Release it on
// every exit path. Waiting past the acquire timeout is classified as
// ErrPoolExhausted so the caller can tell saturation from a broken store.
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, classifyAcquireErr(err)
	}
	return conn, nil
}

func classifyAcquireErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repository.ErrPoolExhausted
	}
	return &repository.StoreError{Op: "acquire connection", Err: err}
}
