package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuotationExportData holds everything needed to render a quotation document.
type QuotationExportData struct {
	// Company
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string

	// Header
	ReferenceNumber string
	Date            string
	Vendor          string
	Draft           bool

	Customer ClientDetails

	Lines []QuotationExportLine

	// Totals
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal

	Terms string
}

// QuotationExportLine is one priced row of the document.
type QuotationExportLine struct {
	SINo        int
	Category    string
	Name        string
	Description string
	Qty         int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// BuildQuotationExportData assembles export data from a quotation. The stored
// total is used as is; subtotal and discount are derived from the lines.
// An empty reference is rendered as a draft.
func BuildQuotationExportData(q *Quotation, settings Settings) *QuotationExportData {
	totals := q.Totals()

	ref := q.ReferenceNumber
	if strings.TrimSpace(ref) == "" {
		ref = NewDraftReference()
	}

	created := q.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	terms := q.Terms
	if strings.TrimSpace(terms) == "" {
		terms = settings.DefaultTerms
	}

	data := &QuotationExportData{
		CompanyName:     settings.CompanyName,
		CompanyAddress:  settings.CompanyAddress,
		CompanyEmail:    settings.CompanyEmail,
		ReferenceNumber: ref,
		Date:            created.Format("02 Jan 2006"),
		Vendor:          string(q.Vendor),
		Draft:           IsDraftReference(ref),
		Customer:        q.Customer,
		Subtotal:        totals.Subtotal,
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  totals.Subtotal.Sub(q.Total),
		Total:           q.Total,
		Terms:           terms,
	}

	for i, s := range q.Lines {
		desc := s.Item.Description
		if s.CustomDescription != "" {
			desc = s.CustomDescription
		}
		data.Lines = append(data.Lines, QuotationExportLine{
			SINo:        i + 1,
			Category:    s.Item.Category,
			Name:        s.Item.Name,
			Description: desc,
			Qty:         s.Quantity,
			UnitPrice:   effectivePrice(s),
			LineTotal:   CalcLineTotal(s),
		})
	}
	return data
}

// ExportFilename returns the download name for a quotation document,
// e.g. Quotation_PASHA_2024-003.pdf.
func ExportFilename(data *QuotationExportData, ext string) string {
	name := data.ReferenceNumber
	if data.Draft {
		name = data.Customer.Name
		if strings.TrimSpace(name) == "" {
			name = "Draft"
		}
	}
	return fmt.Sprintf("Quotation_%s_%s.%s", data.Vendor, sanitizeFilename(name), ext)
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
}
