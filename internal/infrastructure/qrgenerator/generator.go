package qrgenerator

import (
	"encoding/json"

	qr "github.com/skip2/go-qrcode"

	"github.com/hsbu/gopay-api-demo/internal/domain/qrcode"
)

// Generator renders QRIS payloads as PNG images of a fixed pixel size.
type Generator struct {
	size  int
	level qr.RecoveryLevel
}

func NewGenerator(size int) *Generator {
	return &Generator{size: size, level: qr.Medium}
}

func (g *Generator) Generate(data qrcode.QRISData) ([]byte, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	code, err := qr.New(string(content), g.level)
	if err != nil {
		return nil, err
	}
	return code.PNG(g.size)
}
