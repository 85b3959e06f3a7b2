// Package latency models the artificial processing time of simulated external calls.
package latency

import "context"

type Stage string

const (
	StageLimitCheck Stage = "limit_check"
	StagePayment    Stage = "payment"
	StageTopUp      Stage = "topup"
	StageKYC        Stage = "kyc"
)

//go:generate mockgen -destination=mocks/mock_latency.go -package=mocks . Delayer

// Delayer blocks for the latency configured for a stage. It returns early with
// the context error when ctx is done.
type Delayer interface {
	Delay(ctx context.Context, stage Stage) error
}
