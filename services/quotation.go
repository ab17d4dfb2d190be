package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientDetails identifies the customer a quotation is addressed to.
type ClientDetails struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Quotation is a persisted, priced snapshot of a configuration.
type Quotation struct {
	ID              string          `json:"id"`
	ReferenceNumber string          `json:"referenceNumber"`
	Vendor          Vendor          `json:"vendor"`
	Customer        ClientDetails   `json:"customer"`
	Lines           []Selection     `json:"lines"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Total           decimal.Decimal `json:"total"`
	Terms           string          `json:"terms"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Totals recomputes the priced summary of the stored lines.
func (q *Quotation) Totals() QuotationTotals {
	return CalcQuotationTotals(q.Lines, q.DiscountPercent)
}

// NewQuotation prices a selection snapshot into an unsaved quotation.
// referenceNumber may be empty or a draft; the saver then allocates one.
func NewQuotation(referenceNumber string, vendor Vendor, customer ClientDetails, lines []Selection, discountPercent decimal.Decimal, terms string) *Quotation {
	discountPercent = ClampDiscount(discountPercent)
	return &Quotation{
		ReferenceNumber: referenceNumber,
		Vendor:          vendor,
		Customer:        customer,
		Lines:           lines,
		DiscountPercent: discountPercent,
		Total:           CalcQuotationTotals(lines, discountPercent).Total,
		Terms:           terms,
	}
}
