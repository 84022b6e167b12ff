// Package importer reads catalog content from spreadsheets and writes the
// import template.
package importer

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// SheetName is the sheet the template writes and the parser prefers.
const SheetName = "Contents"

const headerRow = 1

// Columns in template order. Header matching is case-insensitive.
var Columns = []string{
	"type", "name", "tagline", "overview", "description", "toolUrl",
	"logo", "bannerImage", "images", "categories", "planType", "price",
	"rating", "usersCount", "companyName", "authorBy", "status",
	"features", "useCases", "toolPros", "toolCons",
}

var requiredColumns = []string{"type", "name", "tagline", "overview"}

// listSeparator splits multi-value cells.
const listSeparator = "|"

// Row is one parsed spreadsheet row.
type Row struct {
	Number  int
	Request models.ContentRequest
}

// ImportError reports why a row was skipped.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type columnMap map[string]int

func (m columnMap) cell(cells []string, column string) string {
	i, ok := m[strings.ToLower(column)]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func mapColumns(header []string) columnMap {
	m := make(columnMap, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, seen := m[key]; !seen {
			m[key] = i
		}
	}
	return m
}

func (m columnMap) missing() []string {
	var out []string
	for _, c := range requiredColumns {
		if _, ok := m[strings.ToLower(c)]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func openRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(SheetName); idx < 0 {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Parse reads every data row. Rows that cannot be converted are reported
// as ImportErrors; a missing required column fails the whole file.
func Parse(r io.Reader) ([]Row, []ImportError, error) {
	rows, err := openRows(r)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < headerRow {
		return []Row{}, nil, nil
	}

	cols := mapColumns(rows[headerRow-1])
	if missing := cols.missing(); len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	parsed := make([]Row, 0, len(rows)-headerRow)
	var errs []ImportError
	for i, cells := range rows[headerRow:] {
		number := i + headerRow + 1
		if isBlank(cells) {
			continue
		}
		req, convErr := toRequest(cols, cells)
		if convErr != nil {
			errs = append(errs, ImportError{Row: number, Error: convErr.Error()})
			continue
		}
		parsed = append(parsed, Row{Number: number, Request: req})
	}
	return parsed, errs, nil
}

func isBlank(cells []string) bool {
	return !slices.ContainsFunc(cells, func(c string) bool { return strings.TrimSpace(c) != "" })
}

func toRequest(cols columnMap, cells []string) (models.ContentRequest, error) {
	get := func(c string) string { return cols.cell(cells, c) }
	list := func(c string) models.StringArray {
		v := get(c)
		if v == "" {
			return nil
		}
		return models.StringArray(strings.Split(v, listSeparator))
	}

	req := models.ContentRequest{
		Type:        models.ContentType(get("type")),
		Name:        get("name"),
		Tagline:     get("tagline"),
		Overview:    get("overview"),
		Description: get("description"),
		ToolURL:     get("toolUrl"),
		Logo:        get("logo"),
		BannerImage: get("bannerImage"),
		Images:      list("images"),
		Categories:  list("categories"),
		PlanType:    models.PlanType(strings.ToLower(get("planType"))),
		Price:       get("price"),
		CompanyName: get("companyName"),
		AuthorBy:    get("authorBy"),
		Status:      models.Status(get("status")),
		Features:    list("features"),
		UseCases:    list("useCases"),
		ToolPros:    list("toolPros"),
		ToolCons:    list("toolCons"),
	}

	if v := get("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("rating %q is not a number", v)
		}
		req.Rating = rating
	}
	if v := get("usersCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("usersCount %q is not an integer", v)
		}
		req.UsersCount = n
	}
	return req, nil
}
