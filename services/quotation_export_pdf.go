package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfMuted   = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfInk     = &props.Color{Red: 30, Green: 58, Blue: 138}
	pdfWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfStripe  = &props.Color{Red: 248, Green: 249, Blue: 250}
	pdfSummary = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// GenerateQuotationPDF renders a quotation document with maroto/v2 and
// returns the PDF bytes.
func GenerateQuotationPDF(data *QuotationExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuotationHeader(m, data)
	addQuotationClient(m, data)
	addQuotationLines(m, data)
	addQuotationTotals(m, data)
	addQuotationTerms(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuotationHeader adds the company block, the title and the reference.
func addQuotationHeader(m core.Maroto, data *QuotationExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("QUOTATION - %s", data.Vendor), props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: pdfInk,
				}),
			),
		),
	)

	contact := joinNonEmpty([]string{data.CompanyAddress, data.CompanyEmail}, " | ")
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: pdfMuted,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Ref #: %s", data.ReferenceNumber), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addQuotationClient adds customer details on the left and the date on the right.
func addQuotationClient(m core.Maroto, data *QuotationExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: pdfMuted,
	}
	valueStyle := props.Text{Size: 8, Align: align.Left}
	rightLabel := labelStyle
	rightLabel.Align = align.Right
	rightValue := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("CLIENT", labelStyle)),
			col.New(6).Add(text.New("DETAILS", rightLabel)),
		),
	)

	c := data.Customer
	name := c.Name
	if name == "" {
		name = "-"
	}
	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(name, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left})),
			col.New(3).Add(text.New("Date:", rightLabel)),
			col.New(3).Add(text.New(data.Date, rightValue)),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(joinNonEmpty([]string{c.Email, c.Phone}, " | "), valueStyle)),
			col.New(3).Add(text.New("Vendor:", rightLabel)),
			col.New(3).Add(text.New(data.Vendor, rightValue)),
		),
	)

	if c.Country != "" {
		m.AddRows(
			row.New(7).Add(col.New(12).Add(text.New(c.Country, valueStyle))),
		)
	}

	m.AddRows(row.New(3))
}

// addQuotationLines adds the line table with striped rows.
func addQuotationLines(m core.Maroto, data *QuotationExportData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: pdfWhite,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := &props.Cell{BackgroundColor: pdfInk}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Category", headerTextLeft)).WithStyle(headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(headerCell),
		),
	)

	bodyText := props.Text{Size: 7, Align: align.Center}
	bodyLeft := props.Text{Size: 7, Align: align.Left}
	bodyRight := props.Text{Size: 7, Align: align.Right}

	for i, line := range data.Lines {
		desc := line.Name
		if line.Description != "" {
			desc = line.Name + "\n" + line.Description
		}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", line.SINo), bodyText)),
			col.New(2).Add(text.New(line.Category, bodyLeft)),
			col.New(4).Add(text.New(desc, bodyLeft)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", line.Qty), bodyRight)),
			col.New(2).Add(text.New(FormatEUR(line.UnitPrice), bodyRight)),
			col.New(2).Add(text.New(FormatEUR(line.LineTotal), bodyRight)),
		}
		if i%2 == 1 {
			stripe := &props.Cell{BackgroundColor: pdfStripe}
			for j := range cols {
				cols[j] = cols[j].WithStyle(stripe)
			}
		}

		height := 7.0
		if strings.Contains(desc, "\n") {
			height = 10
		}
		m.AddRows(row.New(height).Add(cols...))
	}

	m.AddRows(row.New(2))
}

// addQuotationTotals adds the subtotal, discount and net total rows.
func addQuotationTotals(m core.Maroto, data *QuotationExportData) {
	summaryCell := &props.Cell{BackgroundColor: pdfSummary}
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Subtotal", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatEUR(data.Subtotal), valueStyle)).WithStyle(summaryCell),
		),
	)

	if data.DiscountPercent.IsPositive() {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New("Discount "+FormatPercent(data.DiscountPercent), labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New("-"+FormatEUR(data.DiscountAmount), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	netCell := &props.Cell{BackgroundColor: pdfInk}
	netStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("NET TOTAL", netStyle)).WithStyle(netCell),
			col.New(3).Add(text.New(FormatEUR(data.Total), netStyle)).WithStyle(netCell),
		),
	)

	m.AddRows(row.New(4))
}

// addQuotationTerms adds the conditions block.
func addQuotationTerms(m core.Maroto, data *QuotationExportData) {
	if strings.TrimSpace(data.Terms) == "" {
		return
	}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("CONDITIONS", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 33, Green: 37, Blue: 41},
			})),
		),
	)
	for _, line := range strings.Split(data.Terms, "\n") {
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New(line, props.Text{Size: 8, Align: align.Left}))),
		)
	}
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
