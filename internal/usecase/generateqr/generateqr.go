package generateqr

import (
	"strings"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/qrcode"
)

type Request struct {
	MerchantName string
	Amount       int64
}

type UseCase struct {
	generator qrcode.Generator
}

func NewUseCase(generator qrcode.Generator) *UseCase {
	return &UseCase{generator: generator}
}

func (uc *UseCase) Execute(req Request) ([]byte, error) {
	if req.Amount < 0 {
		return nil, entity.ErrInvalidAmount
	}

	merchant := strings.TrimSpace(req.MerchantName)
	if merchant == "" {
		merchant = entity.DefaultMerchantName
	}

	return uc.generator.Generate(qrcode.QRISData{
		MerchantName: merchant,
		Amount:       req.Amount,
		Currency:     entity.CurrencyIDR,
	})
}
