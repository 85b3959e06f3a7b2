package payqris_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/event"
	eventmocks "github.com/hsbu/gopay-api-demo/internal/domain/event/mocks"
	"github.com/hsbu/gopay-api-demo/internal/domain/latency"
	latencymocks "github.com/hsbu/gopay-api-demo/internal/domain/latency/mocks"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
	repomocks "github.com/hsbu/gopay-api-demo/internal/domain/repository/mocks"
	"github.com/hsbu/gopay-api-demo/internal/usecase/payqris"
)

const userID = "user_123"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPayQRISUseCase_Execute_AmountAtLimitIsAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := repomocks.NewMockAccountRepository(ctrl)
	delayer := latencymocks.NewMockDelayer(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	uc := payqris.NewUseCase(accounts, delayer, publisher, discardLogger())

	accounts.EXPECT().Get(gomock.Any(), userID).Return(entity.NewBasicAccount(entity.DefaultBasicLimit), nil)
	delayer.EXPECT().Delay(gomock.Any(), latency.StagePayment).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e event.Event) error {
		assert.Equal(t, event.TypePaymentCompleted, e.Type)
		assert.Equal(t, userID, e.UserID)
		return nil
	})

	resp, err := uc.Execute(context.Background(), payqris.Request{
		UserID: userID,
		Amount: entity.DefaultBasicLimit,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuccess, resp.Status)
	assert.False(t, resp.Denied())
	assert.Regexp(t, `^PAY-QRIS-\d+$`, resp.PaymentID)
	assert.Equal(t, entity.DefaultMerchantName, resp.MerchantName)
	assert.Equal(t, entity.IDR(entity.DefaultBasicLimit), resp.Amount)
	assert.NotEmpty(t, resp.Message)
}

func TestPayQRISUseCase_Execute_KeepsMerchantName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := repomocks.NewMockAccountRepository(ctrl)
	delayer := latencymocks.NewMockDelayer(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	uc := payqris.NewUseCase(accounts, delayer, publisher, discardLogger())

	accounts.EXPECT().Get(gomock.Any(), userID).Return(entity.NewBasicAccount(entity.DefaultBasicLimit), nil)
	delayer.EXPECT().Delay(gomock.Any(), latency.StagePayment).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := uc.Execute(context.Background(), payqris.Request{
		UserID:       userID,
		Amount:       15000,
		MerchantName: "Bakso Pak Kumis",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bakso Pak Kumis", resp.MerchantName)
}

func TestPayQRISUseCase_Execute_LimitExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := repomocks.NewMockAccountRepository(ctrl)
	delayer := latencymocks.NewMockDelayer(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	uc := payqris.NewUseCase(accounts, delayer, publisher, discardLogger())

	accounts.EXPECT().Get(gomock.Any(), userID).Return(entity.NewBasicAccount(entity.DefaultBasicLimit), nil)
	delayer.EXPECT().Delay(gomock.Any(), latency.StageLimitCheck).Return(nil)

	resp, err := uc.Execute(context.Background(), payqris.Request{
		UserID: userID,
		Amount: 2_500_000,
	})

	require.NoError(t, err)
	assert.True(t, resp.Denied())
	assert.Equal(t, "LIMIT_EXCEEDED", resp.ErrorCode)
	assert.Contains(t, resp.Message, "Basic")
	assert.Contains(t, resp.Message, "Rp 2,000,000")
	assert.Empty(t, resp.PaymentID)
}

func TestPayQRISUseCase_Execute_AccountNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := repomocks.NewMockAccountRepository(ctrl)
	delayer := latencymocks.NewMockDelayer(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	uc := payqris.NewUseCase(accounts, delayer, publisher, discardLogger())

	accounts.EXPECT().Get(gomock.Any(), "ghost").Return(nil, repository.ErrNotFound)

	_, err := uc.Execute(context.Background(), payqris.Request{UserID: "ghost", Amount: 1000})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPayQRISUseCase_Execute_NegativeAmountSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := payqris.NewUseCase(
		repomocks.NewMockAccountRepository(ctrl),
		latencymocks.NewMockDelayer(ctrl),
		eventmocks.NewMockPublisher(ctrl),
		discardLogger(),
	)

	_, err := uc.Execute(context.Background(), payqris.Request{UserID: userID, Amount: -1})

	assert.ErrorIs(t, err, entity.ErrInvalidAmount)
}

func TestPayQRISUseCase_Execute_CancelledDuringProcessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := repomocks.NewMockAccountRepository(ctrl)
	delayer := latencymocks.NewMockDelayer(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	uc := payqris.NewUseCase(accounts, delayer, publisher, discardLogger())

	accounts.EXPECT().Get(gomock.Any(), userID).Return(entity.NewVerifiedAccount(entity.DefaultVerifiedLimit), nil)
	delayer.EXPECT().Delay(gomock.Any(), latency.StagePayment).Return(context.Canceled)

	_, err := uc.Execute(context.Background(), payqris.Request{UserID: userID, Amount: 1000})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPayQRISUseCase_Execute_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := repomocks.NewMockAccountRepository(ctrl)
	delayer := latencymocks.NewMockDelayer(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	uc := payqris.NewUseCase(accounts, delayer, publisher, discardLogger())

	accounts.EXPECT().Get(gomock.Any(), userID).Return(entity.NewBasicAccount(entity.DefaultBasicLimit), nil)
	delayer.EXPECT().Delay(gomock.Any(), latency.StagePayment).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	resp, err := uc.Execute(context.Background(), payqris.Request{UserID: userID, Amount: 1000})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuccess, resp.Status)
}
