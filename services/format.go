package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEUR formats an amount as euros with thousands separators and
// exactly two decimals, e.g. €12,345.60. Negative amounts get a leading "-".
func FormatEUR(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "€" + applyThousandsGrouping(intPart) + "." + decPart
	if negative && !amount.Round(2).IsZero() {
		result = "-" + result
	}
	return result
}

// FormatPercent renders a discount percentage without trailing zeros.
func FormatPercent(d decimal.Decimal) string {
	return d.String() + "%"
}

// applyThousandsGrouping inserts a comma between every group of three
// digits counted from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
