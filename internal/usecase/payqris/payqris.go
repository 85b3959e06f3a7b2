package payqris

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/event"
	"github.com/hsbu/gopay-api-demo/internal/domain/latency"
	"github.com/hsbu/gopay-api-demo/internal/domain/policy"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
)

const successMessage = "QRIS payment processed by the payment and wallet transfer contexts."

type Request struct {
	UserID       string
	Amount       int64
	MerchantName string
}

type Response struct {
	PaymentID    string
	MerchantName string
	Amount       entity.Money
	Status       entity.ResultStatus
	ErrorCode    string
	Message      string
}

func (r *Response) Denied() bool {
	return r.Status == entity.StatusDenied
}

type UseCase struct {
	accounts  repository.AccountRepository
	delayer   latency.Delayer
	publisher event.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewUseCase(
	accounts repository.AccountRepository,
	delayer latency.Delayer,
	publisher event.Publisher,
	logger *slog.Logger,
) *UseCase {
	return &UseCase{
		accounts:  accounts,
		delayer:   delayer,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute checks the amount against the caller's tier limit and, when allowed,
// settles a simulated QRIS payment. The wallet balance is not modelled.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.Amount < 0 {
		return nil, entity.ErrInvalidAmount
	}

	merchant := strings.TrimSpace(req.MerchantName)
	if merchant == "" {
		merchant = entity.DefaultMerchantName
	}

	account, err := uc.accounts.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("get account %q: %w", req.UserID, err)
	}

	uc.logger.InfoContext(ctx, "qris limit check", "user_id", req.UserID, "status", account.Status())

	decision := policy.Evaluate(req.Amount, account)
	if !decision.Allowed {
		if err := uc.delayer.Delay(ctx, latency.StageLimitCheck); err != nil {
			return nil, err
		}
		uc.logger.InfoContext(ctx, "qris payment denied",
			"user_id", req.UserID, "amount", req.Amount, "limit", account.Limit())
		return &Response{
			MerchantName: merchant,
			Amount:       entity.IDR(req.Amount),
			Status:       entity.StatusDenied,
			ErrorCode:    decision.Code,
			Message:      decision.Message,
		}, nil
	}

	uc.logger.InfoContext(ctx, "qris limit ok, processing payment", "user_id", req.UserID, "amount", req.Amount)
	if err := uc.delayer.Delay(ctx, latency.StagePayment); err != nil {
		return nil, err
	}

	resp := &Response{
		PaymentID:    entity.NewReference(entity.PrefixPayment, uc.now()),
		MerchantName: merchant,
		Amount:       entity.IDR(req.Amount),
		Status:       entity.StatusSuccess,
		Message:      successMessage,
	}

	e := event.New(event.TypePaymentCompleted, req.UserID, map[string]any{
		"payment_id":    resp.PaymentID,
		"merchant_name": resp.MerchantName,
		"amount":        resp.Amount.Value,
		"currency":      resp.Amount.Currency,
	})
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.WarnContext(ctx, "publish event failed", "type", e.Type, "error", err)
	}

	return resp, nil
}
