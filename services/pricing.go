// Package services holds the configurator engine, quotation numbering,
// pricing, persistence and export logic.
package services

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// effectivePrice is the custom price when set, else the catalog price.
func effectivePrice(s Selection) decimal.Decimal {
	if s.CustomPrice != nil {
		return *s.CustomPrice
	}
	return s.Item.UnitPrice
}

// CalcLineTotal returns price * quantity for one selection.
func CalcLineTotal(s Selection) decimal.Decimal {
	return effectivePrice(s).Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// QuotationTotals holds the priced summary of a selection set.
type QuotationTotals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Total           decimal.Decimal `json:"total"`
}

// CalcQuotationTotals sums the selections and applies discountPercent.
// The total is never negative and is rounded to cents. discountPercent is
// used as given; callers clamp it with ClampDiscount.
func CalcQuotationTotals(selections []Selection, discountPercent decimal.Decimal) QuotationTotals {
	subtotal := decimal.Zero
	for _, s := range selections {
		subtotal = subtotal.Add(CalcLineTotal(s))
	}

	total := subtotal.Mul(hundred.Sub(discountPercent)).Div(hundred)
	if total.IsNegative() {
		total = decimal.Zero
	}
	total = total.Round(2)

	return QuotationTotals{
		Subtotal:        subtotal.Round(2),
		DiscountPercent: discountPercent,
		DiscountAmount:  subtotal.Round(2).Sub(total),
		Total:           total,
	}
}

// ClampDiscount limits a discount percentage to [0, 100].
func ClampDiscount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}
