package repository

import (
	"context"
	"errors"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
)

var ErrNotFound = errors.New("not found")

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . AccountRepository

// AccountRepository holds one account record per user identifier.
// Get fails with ErrNotFound for unknown identifiers; Set replaces the record wholesale.
// Insert stores the record only when none exists and reports whether it did.
type AccountRepository interface {
	Get(ctx context.Context, userID string) (*entity.Account, error)
	Set(ctx context.Context, userID string, account *entity.Account) error
	Insert(ctx context.Context, userID string, account *entity.Account) (bool, error)
}
