package entity

import (
	"errors"
	"fmt"
	"time"
)

type ResultStatus string

const (
	StatusSuccess  ResultStatus = "Success"
	StatusDenied   ResultStatus = "Denied"
	StatusApproved ResultStatus = "Approved"
)

const (
	PrefixPayment = "PAY-QRIS"
	PrefixTopUp   = "VA-BCA"
	PrefixKYC     = "KYC"
)

var ErrMissingIdentity = errors.New("nik and name are required")

// NewReference builds a result identifier from a prefix and a second-resolution timestamp.
func NewReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.Unix())
}

const (
	DefaultMerchantName = "Warung Kopi"
	TopUpSourceBankVA   = "Bank BCA (via Webhook)"
)
