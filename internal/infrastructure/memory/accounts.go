package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
)

// AccountStore keeps account records in process memory. A single RWMutex
// serializes access; updates are last-write-wins.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]*entity.Account)}
}

func (s *AccountStore) Get(_ context.Context, userID string) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return acc, nil
}

func (s *AccountStore) Set(_ context.Context, userID string, account *entity.Account) error {
	if account == nil {
		return errors.New("nil account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[userID] = account
	return nil
}

func (s *AccountStore) Insert(_ context.Context, userID string, account *entity.Account) (bool, error) {
	if account == nil {
		return false, errors.New("nil account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[userID]; ok {
		return false, nil
	}
	s.accounts[userID] = account
	return true, nil
}
