package entity

import (
	"errors"
	"fmt"
)

type Tier string

const (
	TierBasic    Tier = "Basic"
	TierVerified Tier = "Verified"
)

const (
	DefaultBasicLimit    int64 = 2_000_000
	DefaultVerifiedLimit int64 = 20_000_000
)

var ErrUnknownTier = errors.New("unknown tier")

func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierBasic:
		return TierBasic, nil
	case TierVerified:
		return TierVerified, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
}

// Account is the per-user wallet record. It is replaced wholesale on update.
type Account struct {
	status          Tier
	limit           int64
	canTransferBank bool
}

func NewBasicAccount(limit int64) *Account {
	return &Account{
		status: TierBasic,
		limit:  limit,
	}
}

func NewVerifiedAccount(limit int64) *Account {
	return &Account{
		status:          TierVerified,
		limit:           limit,
		canTransferBank: true,
	}
}

func ReconstructAccount(status Tier, limit int64, canTransferBank bool) *Account {
	return &Account{
		status:          status,
		limit:           limit,
		canTransferBank: canTransferBank,
	}
}

func (a *Account) Status() Tier {
	return a.status
}

func (a *Account) Limit() int64 {
	return a.limit
}

func (a *Account) CanTransferBank() bool {
	return a.canTransferBank
}
