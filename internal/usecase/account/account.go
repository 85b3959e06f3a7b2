package account

import (
	"context"
	"fmt"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
)

type UseCase struct {
	accounts   repository.AccountRepository
	basicLimit int64
}

func NewUseCase(accounts repository.AccountRepository, basicLimit int64) *UseCase {
	return &UseCase{accounts: accounts, basicLimit: basicLimit}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*entity.Account, error) {
	acc, err := uc.accounts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get account %q: %w", userID, err)
	}
	return acc, nil
}

// Seed creates a Basic account for userID unless one already exists. An
// existing record, possibly Verified, is left untouched. It reports whether a
// new account was created.
func (uc *UseCase) Seed(ctx context.Context, userID string) (bool, error) {
	created, err := uc.accounts.Insert(ctx, userID, entity.NewBasicAccount(uc.basicLimit))
	if err != nil {
		return false, fmt.Errorf("seed account %q: %w", userID, err)
	}
	return created, nil
}
