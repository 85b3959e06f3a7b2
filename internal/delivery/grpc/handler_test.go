package grpc_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	grpchandler "github.com/hsbu/gopay-api-demo/internal/delivery/grpc"
	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/eventlog"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/grpcclient"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/memory"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/sleeper"
	"github.com/hsbu/gopay-api-demo/internal/usecase/account"
	"github.com/hsbu/gopay-api-demo/internal/usecase/kyc"
	"github.com/hsbu/gopay-api-demo/internal/usecase/payqris"
	"github.com/hsbu/gopay-api-demo/internal/usecase/topup"
	"github.com/hsbu/gopay-api-demo/internal/walletrpc"
)

const defaultUser = "user_123"

func startServer(t *testing.T) *bufconn.Listener {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewAccountStore()
	delayer := sleeper.None()
	publisher := eventlog.NewPublisher(logger)

	accountUC := account.NewUseCase(store, entity.DefaultBasicLimit)
	_, err := accountUC.Seed(context.Background(), defaultUser)
	require.NoError(t, err)

	handler := grpchandler.NewHandler(
		payqris.NewUseCase(store, delayer, publisher, logger),
		topup.NewUseCase(delayer, publisher, logger),
		kyc.NewUseCase(store, delayer, publisher, logger, entity.DefaultVerifiedLimit),
		accountUC,
		defaultUser,
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	walletrpc.RegisterWalletSimulatorServer(srv, handler)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis
}

func dialer(lis *bufconn.Listener) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func newClient(t *testing.T, lis *bufconn.Listener, userID string) *grpcclient.Client {
	t.Helper()
	client, err := grpcclient.NewClient("passthrough:///bufnet", userID, dialer(lis))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestWalletSimulator_LimitThenKYCThenPayment(t *testing.T) {
	lis := startServer(t)
	client := newClient(t, lis, "")
	ctx := context.Background()

	acc, err := client.GetAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Basic", acc["status"])
	assert.Equal(t, float64(2_000_000), acc["limit"])
	assert.Equal(t, false, acc["can_transfer_bank"])

	_, err = client.PayQRIS(ctx, 2_500_000, "")
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "Rp 2,000,000")
	assert.Equal(t, "LIMIT_EXCEEDED", grpcclient.DenialCode(err))
	require.Len(t, status.Convert(err).Details(), 1)
	info, ok := status.Convert(err).Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.Equal(t, "LIMIT_EXCEEDED", info.GetReason())
	assert.Equal(t, walletrpc.ServiceName, info.GetDomain())

	kycResp, err := client.StartKYC(ctx, "1234", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Approved", kycResp["status"])
	assert.Equal(t, true, kycResp["dukcapil_match"])
	assert.Equal(t, "1234", kycResp["nik"])

	acc, err = client.GetAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Verified", acc["status"])
	assert.Equal(t, float64(20_000_000), acc["limit"])
	assert.Equal(t, true, acc["can_transfer_bank"])

	payResp, err := client.PayQRIS(ctx, 2_500_000, "")
	require.NoError(t, err)
	assert.Equal(t, "Success", payResp["status"])
	assert.Equal(t, "Warung Kopi", payResp["merchant_name"])
	assert.Equal(t, map[string]any{"value": float64(2_500_000), "currency": "IDR"}, payResp["amount"])
}

func TestWalletSimulator_TopUp(t *testing.T) {
	lis := startServer(t)
	client := newClient(t, lis, "")

	resp, err := client.TopUp(context.Background(), 750_000)

	require.NoError(t, err)
	assert.Equal(t, "Bank BCA (via Webhook)", resp["source"])
	assert.Equal(t, "Success", resp["status"])
	assert.Regexp(t, `^VA-BCA-\d+$`, resp["topup_id"])
}

func TestWalletSimulator_ValidationErrors(t *testing.T) {
	lis := startServer(t)
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()), dialer(lis))
	require.NoError(t, err)
	defer conn.Close()
	raw := walletrpc.NewClient(conn)
	ctx := context.Background()

	req, err := structpb.NewStruct(map[string]any{"amount": "banyak"})
	require.NoError(t, err)
	_, err = raw.PayQRIS(ctx, req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = raw.TopUp(ctx, &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	req, err = structpb.NewStruct(map[string]any{"nik": "1234"})
	require.NoError(t, err)
	_, err = raw.StartKYC(ctx, req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestWalletSimulator_UnknownUser(t *testing.T) {
	lis := startServer(t)
	client := newClient(t, lis, "user_999")

	_, err := client.GetAccount(context.Background())
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.PayQRIS(context.Background(), 1000, "")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestWalletSimulator_TopUpLargestAmountIsExact(t *testing.T) {
	lis := startServer(t)
	client := newClient(t, lis, "")

	resp, err := client.TopUp(context.Background(), entity.MaxAmount)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": float64(entity.MaxAmount), "currency": "IDR"}, resp["amount"])
	assert.Equal(t, entity.MaxAmount, int64(resp["amount"].(map[string]any)["value"].(float64)))

	_, err = client.TopUp(context.Background(), 2*entity.MaxAmount)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
