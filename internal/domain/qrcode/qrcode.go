package qrcode

// QRISData is the payload a merchant QR code carries.
type QRISData struct {
	MerchantName string `json:"merchant_name"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type Generator interface {
	Generate(data QRISData) ([]byte, error)
}
