package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePaymentCompleted Type = "payment.completed"
	TypeTopUpReceived    Type = "topup.received"
	TypeAccountUpgraded  Type = "account.upgraded"
)

type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       Type           `json:"type"`
	UserID     string         `json:"user_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(t Type, userID string, payload map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

//go:generate mockgen -destination=mocks/mock_event.go -package=mocks . Publisher

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
