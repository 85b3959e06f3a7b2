package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
)

const (
	dbMaxConns        = 10
	dbMinConns        = 2
	dbMaxConnLifetime = 30 * time.Minute
	dbMaxConnIdleTime = 5 * time.Minute
)

const schema = `
CREATE TABLE IF NOT EXISTS wallet_accounts (
	user_id           TEXT PRIMARY KEY,
	status            TEXT NOT NULL,
	tx_limit          BIGINT NOT NULL CHECK (tx_limit > 0),
	can_transfer_bank BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// AccountStore shares account records between replicas through one table.
type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *AccountStore) Get(ctx context.Context, userID string) (*entity.Account, error) {
	var (
		status          string
		limit           int64
		canTransferBank bool
	)
	err := s.pool.QueryRow(ctx,
		`SELECT status, tx_limit, can_transfer_bank FROM wallet_accounts WHERE user_id = $1`,
		userID,
	).Scan(&status, &limit, &canTransferBank)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tier, err := entity.ParseTier(status)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", userID, err)
	}
	return entity.ReconstructAccount(tier, limit, canTransferBank), nil
}

func (s *AccountStore) Set(ctx context.Context, userID string, account *entity.Account) error {
	if account == nil {
		return errors.New("nil account")
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO wallet_accounts (user_id, status, tx_limit, can_transfer_bank, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET status = EXCLUDED.status,
		     tx_limit = EXCLUDED.tx_limit,
		     can_transfer_bank = EXCLUDED.can_transfer_bank,
		     updated_at = EXCLUDED.updated_at`,
		userID, string(account.Status()), account.Limit(), account.CanTransferBank(),
	)
	return err
}

func (s *AccountStore) Insert(ctx context.Context, userID string, account *entity.Account) (bool, error) {
	if account == nil {
		return false, errors.New("nil account")
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO wallet_accounts (user_id, status, tx_limit, can_transfer_bank, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, string(account.Status()), account.Limit(), account.CanTransferBank(),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
