package generateqr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
	"github.com/hsbu/gopay-api-demo/internal/domain/qrcode"
	"github.com/hsbu/gopay-api-demo/internal/usecase/generateqr"
)

type recordingGenerator struct {
	got   []qrcode.QRISData
	image []byte
}

func (g *recordingGenerator) Generate(data qrcode.QRISData) ([]byte, error) {
	g.got = append(g.got, data)
	return g.image, nil
}

func TestGenerateQRUseCase_Execute(t *testing.T) {
	gen := &recordingGenerator{image: []byte("png")}
	uc := generateqr.NewUseCase(gen)

	img, err := uc.Execute(generateqr.Request{MerchantName: " Toko Budi ", Amount: 15000})

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), img)
	require.Len(t, gen.got, 1)
	assert.Equal(t, qrcode.QRISData{MerchantName: "Toko Budi", Amount: 15000, Currency: entity.CurrencyIDR}, gen.got[0])
}

func TestGenerateQRUseCase_Execute_DefaultMerchant(t *testing.T) {
	gen := &recordingGenerator{}
	uc := generateqr.NewUseCase(gen)

	_, err := uc.Execute(generateqr.Request{Amount: 0})

	require.NoError(t, err)
	require.Len(t, gen.got, 1)
	assert.Equal(t, entity.DefaultMerchantName, gen.got[0].MerchantName)
}

func TestGenerateQRUseCase_Execute_NegativeAmount(t *testing.T) {
	gen := &recordingGenerator{}
	uc := generateqr.NewUseCase(gen)

	_, err := uc.Execute(generateqr.Request{Amount: -1})

	assert.ErrorIs(t, err, entity.ErrInvalidAmount)
	assert.Empty(t, gen.got)
}
