package kyc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/event"
	"github.com/hsbu/gopay-api-demo/internal/domain/latency"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
)

const successMessage = "Identity registry matched. Account upgraded to Verified."

type Request struct {
	UserID string
	NIK    string
	Name   string
}

type Response struct {
	SubmissionID  string
	NIK           string
	Status        entity.ResultStatus
	RegistryMatch bool
	Message       string
}

// UseCase runs the simulated eKYC flow. The registry always reports a match,
// so every complete submission upgrades the account to Verified.
type UseCase struct {
	accounts      repository.AccountRepository
	delayer       latency.Delayer
	publisher     event.Publisher
	logger        *slog.Logger
	verifiedLimit int64
	now           func() time.Time
}

func NewUseCase(
	accounts repository.AccountRepository,
	delayer latency.Delayer,
	publisher event.Publisher,
	logger *slog.Logger,
	verifiedLimit int64,
) *UseCase {
	return &UseCase{
		accounts:      accounts,
		delayer:       delayer,
		publisher:     publisher,
		logger:        logger,
		verifiedLimit: verifiedLimit,
		now:           time.Now,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.NIK == "" || req.Name == "" {
		return nil, entity.ErrMissingIdentity
	}

	if _, err := uc.accounts.Get(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("get account %q: %w", req.UserID, err)
	}

	uc.logger.InfoContext(ctx, "kyc verification started", "user_id", req.UserID, "nik", req.NIK)

	if err := uc.delayer.Delay(ctx, latency.StageKYC); err != nil {
		return nil, err
	}

	if err := uc.accounts.Set(ctx, req.UserID, entity.NewVerifiedAccount(uc.verifiedLimit)); err != nil {
		return nil, fmt.Errorf("upgrade account %q: %w", req.UserID, err)
	}

	uc.logger.InfoContext(ctx, "kyc approved, account upgraded",
		"user_id", req.UserID, "status", entity.TierVerified, "limit", uc.verifiedLimit)

	resp := &Response{
		SubmissionID:  entity.NewReference(entity.PrefixKYC, uc.now()),
		NIK:           req.NIK,
		Status:        entity.StatusApproved,
		RegistryMatch: true,
		Message:       successMessage,
	}

	e := event.New(event.TypeAccountUpgraded, req.UserID, map[string]any{
		"submission_id": resp.SubmissionID,
		"status":        string(entity.TierVerified),
		"limit":         uc.verifiedLimit,
	})
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.WarnContext(ctx, "publish event failed", "type", e.Type, "error", err)
	}

	return resp, nil
}
