package topup

import (
	"context"
	"log/slog"
	"time"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/event"
	"github.com/hsbu/gopay-api-demo/internal/domain/latency"
)

const successMessage = "Funding context credited the wallet transfer context."

type Request struct {
	UserID string
	Amount int64
}

type Response struct {
	TopUpID string
	Source  string
	Amount  entity.Money
	Status  entity.ResultStatus
	Message string
}

// UseCase accepts bank virtual-account top-ups. Webhook funds are trusted,
// so no limit applies and the account store is never consulted.
type UseCase struct {
	delayer   latency.Delayer
	publisher event.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewUseCase(delayer latency.Delayer, publisher event.Publisher, logger *slog.Logger) *UseCase {
	return &UseCase{
		delayer:   delayer,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.Amount < 0 {
		return nil, entity.ErrInvalidAmount
	}

	uc.logger.InfoContext(ctx, "va webhook received", "amount", req.Amount, "source", entity.TopUpSourceBankVA)

	if err := uc.delayer.Delay(ctx, latency.StageTopUp); err != nil {
		return nil, err
	}

	resp := &Response{
		TopUpID: entity.NewReference(entity.PrefixTopUp, uc.now()),
		Source:  entity.TopUpSourceBankVA,
		Amount:  entity.IDR(req.Amount),
		Status:  entity.StatusSuccess,
		Message: successMessage,
	}

	e := event.New(event.TypeTopUpReceived, req.UserID, map[string]any{
		"topup_id": resp.TopUpID,
		"source":   resp.Source,
		"amount":   resp.Amount.Value,
		"currency": resp.Amount.Currency,
	})
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.WarnContext(ctx, "publish event failed", "type", e.Type, "error", err)
	}

	return resp, nil
}
