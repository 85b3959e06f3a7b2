package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
	"github.com/hsbu/gopay-api-demo/internal/usecase/account"
	"github.com/hsbu/gopay-api-demo/internal/usecase/generateqr"
	"github.com/hsbu/gopay-api-demo/internal/usecase/kyc"
	"github.com/hsbu/gopay-api-demo/internal/usecase/payqris"
	"github.com/hsbu/gopay-api-demo/internal/usecase/topup"
)

const userIDHeader = "X-User-ID"

type Handler struct {
	payUC         *payqris.UseCase
	topUpUC       *topup.UseCase
	kycUC         *kyc.UseCase
	accountUC     *account.UseCase
	generateQRUC  *generateqr.UseCase
	defaultUserID string
	logger        *slog.Logger
}

type HandlerDeps struct {
	Pay           *payqris.UseCase
	TopUp         *topup.UseCase
	KYC           *kyc.UseCase
	Account       *account.UseCase
	GenerateQR    *generateqr.UseCase
	DefaultUserID string
	Logger        *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		payUC:         deps.Pay,
		topUpUC:       deps.TopUp,
		kycUC:         deps.KYC,
		accountUC:     deps.Account,
		generateQRUC:  deps.GenerateQR,
		defaultUserID: deps.DefaultUserID,
		logger:        deps.Logger,
	}
}

type AmountJSON struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

type PayQRISRequest struct {
	Amount   any    `json:"amount"`
	Merchant string `json:"merchant"`
}

type PayQRISResponse struct {
	PaymentID    string     `json:"payment_id"`
	MerchantName string     `json:"merchant_name"`
	Amount       AmountJSON `json:"amount"`
	Status       string     `json:"status"`
	Message      string     `json:"message"`
}

type DenialResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

type TopUpRequest struct {
	Amount any `json:"amount"`
}

type TopUpResponse struct {
	TopUpID string     `json:"topup_id"`
	Source  string     `json:"source"`
	Amount  AmountJSON `json:"amount"`
	Status  string     `json:"status"`
	Message string     `json:"message"`
}

type KYCRequest struct {
	NIK  string `json:"nik"`
	Name string `json:"name"`
}

type KYCResponse struct {
	SubmissionID  string `json:"submission_id"`
	NIK           string `json:"nik"`
	Status        string `json:"status"`
	DukcapilMatch bool   `json:"dukcapil_match"`
	Message       string `json:"message"`
}

type AccountResponse struct {
	UserID          string `json:"user_id"`
	Status          string `json:"status"`
	Limit           int64  `json:"limit"`
	CanTransferBank bool   `json:"can_transfer_bank"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandlePayQRIS(w http.ResponseWriter, r *http.Request) {
	var req PayQRISRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.payUC.Execute(r.Context(), payqris.Request{
		UserID:       h.userID(r),
		Amount:       amount,
		MerchantName: req.Merchant,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if resp.Denied() {
		writeJSON(w, http.StatusBadRequest, DenialResponse{
			ErrorCode: resp.ErrorCode,
			Message:   resp.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, PayQRISResponse{
		PaymentID:    resp.PaymentID,
		MerchantName: resp.MerchantName,
		Amount:       amountJSON(resp.Amount),
		Status:       string(resp.Status),
		Message:      resp.Message,
	})
}

func (h *Handler) HandleBankVAWebhook(w http.ResponseWriter, r *http.Request) {
	var req TopUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.topUpUC.Execute(r.Context(), topup.Request{
		UserID: h.userID(r),
		Amount: amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TopUpResponse{
		TopUpID: resp.TopUpID,
		Source:  resp.Source,
		Amount:  amountJSON(resp.Amount),
		Status:  string(resp.Status),
		Message: resp.Message,
	})
}

func (h *Handler) HandleStartKYC(w http.ResponseWriter, r *http.Request) {
	var req KYCRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.kycUC.Execute(r.Context(), kyc.Request{
		UserID: h.userID(r),
		NIK:    req.NIK,
		Name:   req.Name,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, KYCResponse{
		SubmissionID:  resp.SubmissionID,
		NIK:           resp.NIK,
		Status:        string(resp.Status),
		DukcapilMatch: resp.RegistryMatch,
		Message:       resp.Message,
	})
}

func (h *Handler) HandleAccount(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)

	acc, err := h.accountUC.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AccountResponse{
		UserID:          userID,
		Status:          string(acc.Status()),
		Limit:           acc.Limit(),
		CanTransferBank: acc.CanTransferBank(),
	})
}

func (h *Handler) HandleQRISCode(w http.ResponseWriter, r *http.Request) {
	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "amount query param required"})
		return
	}

	amount, err := entity.ParseAmount(amountStr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	png, err := h.generateQRUC.Execute(generateqr.Request{
		MerchantName: r.URL.Query().Get("merchant"),
		Amount:       amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) userID(r *http.Request) string {
	if id := r.Header.Get(userIDHeader); id != "" {
		return id
	}
	return h.defaultUserID
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidAmount), errors.Is(err, entity.ErrMissingIdentity):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "account not found"})
	case errors.Is(err, context.DeadlineExceeded):
		// middleware.Timeout writes the 504 once the handler returns.
		h.logger.WarnContext(r.Context(), "request timed out", "path", r.URL.Path)
	case errors.Is(err, context.Canceled):
		h.logger.InfoContext(r.Context(), "request cancelled by client", "path", r.URL.Path)
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func amountJSON(m entity.Money) AmountJSON {
	return AmountJSON{Value: m.Value, Currency: m.Currency}
}
