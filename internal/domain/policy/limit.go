// Package policy decides whether a requested amount fits an account's tier limit.
package policy

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
)

const CodeLimitExceeded = "LIMIT_EXCEEDED"

type Decision struct {
	Allowed bool
	Code    string
	Message string
}

var printer = message.NewPrinter(language.English)

// Evaluate allows any amount up to and including the account limit.
func Evaluate(amount int64, account *entity.Account) Decision {
	if amount > account.Limit() {
		return Decision{
			Code: CodeLimitExceeded,
			Message: fmt.Sprintf(
				"Transaction failed. %s accounts cannot transact above Rp %s.",
				account.Status(), FormatRupiah(account.Limit()),
			),
		}
	}
	return Decision{Allowed: true}
}

// FormatRupiah renders an amount with comma thousands separators, e.g. 2,000,000.
func FormatRupiah(amount int64) string {
	return printer.Sprintf("%d", amount)
}
