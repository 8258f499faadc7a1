// Package money formats PKR amounts for display. Amounts are integer rupees
// throughout; only rendering applies locale digit grouping.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-PK"))

// FormatPKR renders an amount as a grouped PKR string, e.g. "PKR 100,000".
func FormatPKR(amount int64) string {
	return printer.Sprintf("PKR %d", amount)
}
