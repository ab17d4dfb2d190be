// Package templates renders the HTML pages of the quotation back office.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuotationListItem is one row of the saved quotations table.
type QuotationListItem struct {
	ID              string
	ReferenceNumber string
	Vendor          string
	ClientName      string
	Country         string
	Total           string
	CreatedDate     string
}

// QuotationListData holds everything the quotations page shows.
type QuotationListData struct {
	Quotations []QuotationListItem
	TotalCount int
}

// QuotationListContent renders the table fragment swapped in by HTMX.
func QuotationListContent(data QuotationListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var err error
		write := func(format string, args ...any) {
			if err == nil {
				_, err = fmt.Fprintf(w, format, args...)
			}
		}

		write(`<div id="quotation-list">`)
		write(`<p class="count">%d quotation(s)</p>`, data.TotalCount)
		if len(data.Quotations) == 0 {
			write(`<p class="empty">No quotations yet</p></div>`)
			return err
		}

		write(`<table><thead><tr><th>Ref #</th><th>Date</th><th>Vendor</th><th>Client</th><th>Country</th><th>Total</th><th></th></tr></thead><tbody>`)
		for _, q := range data.Quotations {
			id := templ.EscapeString(q.ID)
			write(`<tr id="quotation-%s">`, id)
			write(`<td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td>`,
				templ.EscapeString(q.ReferenceNumber),
				templ.EscapeString(q.CreatedDate),
				templ.EscapeString(q.Vendor),
				templ.EscapeString(q.ClientName),
				templ.EscapeString(q.Country),
				templ.EscapeString(q.Total))
			write(`<td><a href="/api/quotations/%s/export/pdf">PDF</a> <a href="/api/quotations/%s/export/excel">Excel</a> `, id, id)
			write(`<button hx-delete="/quotations/%s" hx-confirm="Delete quotation %s?">Delete</button></td></tr>`,
				id, templ.EscapeString(q.ReferenceNumber))
		}
		write(`</tbody></table></div>`)
		return err
	})
}

// QuotationListPage renders the full quotations page.
func QuotationListPage(data QuotationListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Quotations</title>`+
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script></head><body><h1>Quotations</h1>`); err != nil {
			return err
		}
		if err := QuotationListContent(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
