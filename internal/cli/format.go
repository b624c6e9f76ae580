package cli

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CR"))

// FormatMoney renders amount with its currency symbol and Costa Rican digit
// grouping, without decimals. Unknown currencies are treated as colones.
func FormatMoney(amount float64, moneda string) string {
	symbol := "₡"
	if strings.EqualFold(moneda, "USD") {
		symbol = "$"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(1), number.MinFractionDigits(1))) + "%"
}

// Truncate cuts s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
