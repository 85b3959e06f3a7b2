package grpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
	"github.com/hsbu/gopay-api-demo/internal/usecase/account"
	"github.com/hsbu/gopay-api-demo/internal/usecase/kyc"
	"github.com/hsbu/gopay-api-demo/internal/usecase/payqris"
	"github.com/hsbu/gopay-api-demo/internal/usecase/topup"
	"github.com/hsbu/gopay-api-demo/internal/walletrpc"
)

var _ walletrpc.WalletSimulatorServer = (*Handler)(nil)

type Handler struct {
	payUC         *payqris.UseCase
	topUpUC       *topup.UseCase
	kycUC         *kyc.UseCase
	accountUC     *account.UseCase
	defaultUserID string
}

func NewHandler(
	payUC *payqris.UseCase,
	topUpUC *topup.UseCase,
	kycUC *kyc.UseCase,
	accountUC *account.UseCase,
	defaultUserID string,
) *Handler {
	return &Handler{
		payUC:         payUC,
		topUpUC:       topUpUC,
		kycUC:         kycUC,
		accountUC:     accountUC,
		defaultUserID: defaultUserID,
	}
}

func (h *Handler) PayQRIS(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()

	amount, err := entity.ParseAmount(fields["amount"])
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.payUC.Execute(ctx, payqris.Request{
		UserID:       h.userID(fields),
		Amount:       amount,
		MerchantName: stringField(fields, "merchant"),
	})
	if err != nil {
		return nil, mapError(err)
	}
	if resp.Denied() {
		return nil, denialError(resp)
	}

	return newStruct(map[string]any{
		"payment_id":    resp.PaymentID,
		"merchant_name": resp.MerchantName,
		"amount":        moneyFields(resp.Amount),
		"status":        string(resp.Status),
		"message":       resp.Message,
	})
}

func (h *Handler) TopUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()

	amount, err := entity.ParseAmount(fields["amount"])
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.topUpUC.Execute(ctx, topup.Request{
		UserID: h.userID(fields),
		Amount: amount,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"topup_id": resp.TopUpID,
		"source":   resp.Source,
		"amount":   moneyFields(resp.Amount),
		"status":   string(resp.Status),
		"message":  resp.Message,
	})
}

func (h *Handler) StartKYC(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()

	resp, err := h.kycUC.Execute(ctx, kyc.Request{
		UserID: h.userID(fields),
		NIK:    stringField(fields, "nik"),
		Name:   stringField(fields, "name"),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"submission_id":  resp.SubmissionID,
		"nik":            resp.NIK,
		"status":         string(resp.Status),
		"dukcapil_match": resp.RegistryMatch,
		"message":        resp.Message,
	})
}

func (h *Handler) GetAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID := h.userID(req.AsMap())

	acc, err := h.accountUC.Get(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"user_id":           userID,
		"status":            string(acc.Status()),
		"limit":             acc.Limit(),
		"can_transfer_bank": acc.CanTransferBank(),
	})
}

func (h *Handler) userID(fields map[string]any) string {
	if id := stringField(fields, "user_id"); id != "" {
		return id
	}
	return h.defaultUserID
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func moneyFields(m entity.Money) map[string]any {
	return map[string]any{
		"value":    m.Value,
		"currency": m.Currency,
	}
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return s, nil
}

// denialError carries the denial code as an ErrorInfo reason next to the
// human-readable message.
func denialError(resp *payqris.Response) error {
	st := status.New(codes.FailedPrecondition, resp.Message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: resp.ErrorCode,
		Domain: walletrpc.ServiceName,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func mapError(err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidAmount), errors.Is(err, entity.ErrMissingIdentity):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Errorf(codes.Internal, "operation failed: %v", err)
	}
}
