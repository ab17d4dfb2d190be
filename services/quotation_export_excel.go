package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuotationExcel renders a quotation as an XLSX workbook with a
// single sheet named after the reference.
func GenerateQuotationExcel(data *QuotationExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.ReferenceNumber
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Quotation"
	}

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 18, 50, 8, 16, 16}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#1E3A8A"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Rows 1-4: title, reference, client and date.
	header := []struct {
		cell  string
		value string
		style int
	}{
		{"A1", fmt.Sprintf("QUOTATION - %s", data.Vendor), titleStyle},
		{"A2", "Ref: " + data.ReferenceNumber, subtitleStyle},
		{"A3", "Client: " + joinNonEmpty([]string{data.Customer.Name, data.Customer.Email, data.Customer.Country}, " | "), subtitleStyle},
		{"A4", "Date: " + data.Date, subtitleStyle},
	}
	for i, h := range header {
		r := fmt.Sprintf("%d", i+1)
		if err := f.MergeCell(sheetName, h.cell, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge %s: %w", h.cell, err)
		}
		f.SetCellValue(sheetName, h.cell, sanitizeExcelCell(h.value))
		f.SetCellStyle(sheetName, h.cell, lastCol+r, h.style)
	}

	headers := []string{"#", "Category", "Description", "Qty", "Unit Price", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	row := 7
	for _, line := range data.Lines {
		rowStr := fmt.Sprintf("%d", row)
		desc := line.Name
		if line.Description != "" {
			desc += " - " + line.Description
		}
		f.SetCellValue(sheetName, "A"+rowStr, line.SINo)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(line.Category))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(desc))
		f.SetCellValue(sheetName, "D"+rowStr, line.Qty)
		f.SetCellValue(sheetName, "E"+rowStr, FormatEUR(line.UnitPrice))
		f.SetCellValue(sheetName, "F"+rowStr, FormatEUR(line.LineTotal))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, lineStyle)
		row++
	}

	row++
	summary := []struct{ label, value string }{
		{"Subtotal:", FormatEUR(data.Subtotal)},
	}
	if data.DiscountPercent.IsPositive() {
		summary = append(summary, struct{ label, value string }{
			fmt.Sprintf("Discount (%s):", FormatPercent(data.DiscountPercent)), "-" + FormatEUR(data.DiscountAmount),
		})
	}
	summary = append(summary, struct{ label, value string }{"Net Total:", FormatEUR(data.Total)})

	for _, s := range summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+rowStr, s.label)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+rowStr, s.value)
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryValueStyle)
		row++
	}

	if data.Terms != "" {
		row++
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge terms: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell("Conditions: "+data.Terms))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prefixes values Excel would read as a formula with a
// single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
