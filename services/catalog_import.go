package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ValidationError is a problem with one row of an imported price list.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// catalogSheetColumns are the recognised price list headers, in template order.
var catalogSheetColumns = []string{"category", "id", "name", "description", "price"}

// ImportCatalogSheet builds a catalog from a vendor price list in CSV or
// XLSX form. Rows keep their file order; categories appear in the order
// they are first seen. Row problems are collected instead of aborting, and
// no catalog is returned while any remain.
func ImportCatalogSheet(r io.Reader, fileName string) (*Catalog, []ValidationError, error) {
	var headers []string
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		headers, rows, err = parseCSV(r)
	case ".xlsx":
		headers, rows, err = parseExcel(r)
	default:
		return nil, nil, fmt.Errorf("unsupported price list format %q, use .csv or .xlsx", filepath.Ext(fileName))
	}
	if err != nil {
		return nil, nil, err
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "id", "name", "price"} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("price list is missing the %q column", required)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var errs []ValidationError
	catalog := &Catalog{}
	categoryPos := map[string]int{}
	seen := map[string]int{}

	for i, row := range rows {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		category := strings.ToUpper(cell(row, "category"))
		id := cell(row, "id")
		name := cell(row, "name")
		rawPrice := strings.TrimPrefix(strings.ReplaceAll(cell(row, "price"), ",", ""), "€")

		rowErrs := len(errs)
		if category == "" {
			errs = append(errs, ValidationError{Row: rowNum, Field: "category", Message: "Category is required"})
		}
		if id == "" {
			errs = append(errs, ValidationError{Row: rowNum, Field: "id", Message: "Id is required"})
		} else if first, dup := seen[id]; dup {
			errs = append(errs, ValidationError{Row: rowNum, Field: "id", Message: fmt.Sprintf("Duplicate id, first used on row %d", first)})
		}
		if name == "" {
			errs = append(errs, ValidationError{Row: rowNum, Field: "name", Message: "Name is required"})
		}
		price, perr := decimal.NewFromString(strings.TrimSpace(rawPrice))
		switch {
		case perr != nil:
			errs = append(errs, ValidationError{Row: rowNum, Field: "price", Message: "Price must be a number"})
		case price.IsNegative():
			errs = append(errs, ValidationError{Row: rowNum, Field: "price", Message: "Price cannot be negative"})
		}
		if len(errs) > rowErrs {
			continue
		}
		seen[id] = rowNum

		pos, ok := categoryPos[category]
		if !ok {
			pos = len(catalog.Categories)
			categoryPos[category] = pos
			catalog.Categories = append(catalog.Categories, CatalogCategory{Name: category})
		}
		catalog.Categories[pos].Items = append(catalog.Categories[pos].Items, CatalogItem{
			ID:          id,
			Name:        name,
			Description: cell(row, "description"),
			UnitPrice:   price,
		})
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	if err := catalog.index(); err != nil {
		return nil, nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil, nil
}

// MarshalCatalog encodes a catalog in the layout LoadCatalogLibrary reads.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	type item struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
	}
	type category struct {
		Name  string `json:"name"`
		Items []item `json:"items"`
	}
	doc := struct {
		Categories []category `json:"categories"`
	}{}
	for _, cat := range c.Categories {
		out := category{Name: cat.Name, Items: []item{}}
		for _, it := range cat.Items {
			out.Items = append(out.Items, item{ID: it.ID, Name: it.Name, Description: it.Description, Price: it.UnitPrice})
		}
		doc.Categories = append(doc.Categories, out)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// GenerateCatalogTemplate returns an empty XLSX price list with the
// expected header row.
func GenerateCatalogTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Price List"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E3A8A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	widths := []float64{18, 14, 36, 50, 12}
	for i, h := range catalogSheetColumns {
		c := string(rune('A' + i))
		f.SetCellValue(sheet, c+"1", h)
		f.SetColWidth(sheet, c, c, widths[i])
	}
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateErrorReport writes import problems to a one-sheet workbook.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 16)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}

func parseCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return all[0], all[1:], nil
}

func parseExcel(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
