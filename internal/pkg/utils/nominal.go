package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	idPrinter = message.NewPrinter(language.Indonesian)

	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
)

// FormatRupiah prints the whole-rupiah part with Indonesian digit grouping: "Rp 12.345".
func FormatRupiah(amount decimal.Decimal) string {
	return "Rp " + idPrinter.Sprintf("%d", amount.IntPart())
}

// FormatNominal shortens large amounts to triliun/miliar/juta.
func FormatNominal(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(trillion):
		return fmt.Sprintf("Rp %s triliun", amount.Div(trillion).StringFixed(3))
	case amount.GreaterThanOrEqual(billion):
		return fmt.Sprintf("Rp %s miliar", amount.Div(billion).StringFixed(3))
	case amount.GreaterThanOrEqual(million):
		return fmt.Sprintf("Rp %s juta", amount.Div(million).StringFixed(1))
	default:
		return FormatRupiah(amount)
	}
}

// FormatPercent renders a ratio as a percentage with two decimals: 0.8512 -> "85.12%".
func FormatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
