// Package spreadsheet reads and writes keyword workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"keywordapi/internal/models"
	"keywordapi/internal/service"
)

// SheetName is the worksheet written by WriteKeywords.
const SheetName = "Keywords"

// Column headers understood by ParseKeywords. Header matching ignores case
// and surrounding whitespace; unknown columns are ignored.
const (
	colPrefix              = "prefix"
	colMainKeyword         = "main_keyword"
	colSuffix              = "suffix"
	colFullKeyword         = "full_keyword"
	colSubnicheID          = "subniche_id"
	colNicheID             = "niche_id"
	colScanPlatform        = "scan_platform"
	colStatus              = "status"
	colStatusRun           = "status_run"
	colFavorite            = "favorite"
	colTotalLinksScanned   = "total_links_scanned"
	colTotalLinksNew       = "total_links_new"
	colTotalLinksDuplicate = "total_links_duplicate"
)

// exportHeaders is the column order of exported workbooks.
var exportHeaders = []string{
	"id",
	colPrefix,
	colMainKeyword,
	colSuffix,
	colFullKeyword,
	colSubnicheID,
	colNicheID,
	"domain_name",
	"niche_name",
	"subniche_name",
	colScanPlatform,
	colStatus,
	colStatusRun,
	colFavorite,
	colTotalLinksScanned,
	colTotalLinksNew,
	colTotalLinksDuplicate,
}

// Defaults supplies a parent for rows that name none.
type Defaults struct {
	SubnicheID *uuid.UUID
	NicheID    *uuid.UUID
}

// ParseResult holds the rows ready for creation and the rows rejected while
// parsing. Row numbers are 1-based worksheet rows.
type ParseResult struct {
	Rows   []models.KeywordImportRow
	Errors []models.ImportError
}

// columnMap maps a header name to its 0-based column index.
type columnMap map[string]int

func buildColumnMap(header []string) columnMap {
	cols := make(columnMap, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := cols[key]; !seen && key != "" {
			cols[key] = i
		}
	}
	return cols
}

func (m columnMap) has(name string) bool {
	_, ok := m[name]
	return ok
}

// cell returns the trimmed value of column name in row, or "".
func (m columnMap) cell(row []string, name string) string {
	i, ok := m[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func validateRequiredColumns(cols columnMap) error {
	if !cols.has(colMainKeyword) && !cols.has(colFullKeyword) {
		return fmt.Errorf("missing required column: %s or %s", colMainKeyword, colFullKeyword)
	}
	return nil
}

// openRows returns every row of the first worksheet.
func openRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

// ParseKeywords reads a workbook whose first row is a header. Blank rows are
// skipped. A malformed cell rejects its row without stopping the parse.
func ParseKeywords(r io.Reader, defaults Defaults) (*ParseResult, error) {
	rows, err := openRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook is empty")
	}

	cols := buildColumnMap(rows[0])
	if err := validateRequiredColumns(cols); err != nil {
		return nil, err
	}

	result := &ParseResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}
		in, err := parseRow(cols, row, defaults)
		if err != nil {
			result.Errors = append(result.Errors, models.ImportError{Row: rowNum, Error: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, models.KeywordImportRow{Row: rowNum, Input: in})
	}
	return result, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseRow(cols columnMap, row []string, defaults Defaults) (models.KeywordCreate, error) {
	in := models.KeywordCreate{
		Prefix:       optional(cols.cell(row, colPrefix)),
		MainKeyword:  cols.cell(row, colMainKeyword),
		Suffix:       optional(cols.cell(row, colSuffix)),
		FullKeyword:  cols.cell(row, colFullKeyword),
		ScanPlatform: cols.cell(row, colScanPlatform),
		Status:       cols.cell(row, colStatus),
		StatusRun:    optional(cols.cell(row, colStatusRun)),
	}

	var err error
	if in.SubnicheID, err = parseUUID(colSubnicheID, cols.cell(row, colSubnicheID)); err != nil {
		return in, err
	}
	if in.NicheID, err = parseUUID(colNicheID, cols.cell(row, colNicheID)); err != nil {
		return in, err
	}
	if in.SubnicheID == nil && in.NicheID == nil {
		in.SubnicheID, in.NicheID = defaults.SubnicheID, defaults.NicheID
	}

	if v := cols.cell(row, colFavorite); v != "" {
		if in.Favorite, err = parseBool(v); err != nil {
			return in, fmt.Errorf("%s: %w", colFavorite, err)
		}
	}
	counters := []struct {
		name string
		dst  *int
	}{
		{colTotalLinksScanned, &in.TotalLinksScanned},
		{colTotalLinksNew, &in.TotalLinksNew},
		{colTotalLinksDuplicate, &in.TotalLinksDuplicate},
	}
	for _, c := range counters {
		v := cols.cell(row, c.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("%s must be an integer", c.name)
		}
		*c.dst = n
	}
	return in, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseUUID(field, s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a UUID", field)
	}
	return &id, nil
}

// parseBool accepts true/false, 1/0 and yes/no.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("must be true or false, got %q", s)
}

// WriteKeywords writes items as a single-sheet workbook.
func WriteKeywords(w io.Writer, items []service.KeywordResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, k := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			k.ID.String(),
			deref(k.Prefix),
			k.MainKeyword,
			deref(k.Suffix),
			k.FullKeyword,
			uuidString(k.SubnicheID),
			uuidString(k.NicheID),
			k.DomainName,
			k.NicheName,
			k.SubnicheName,
			k.ScanPlatform,
			k.Status,
			deref(k.StatusRun),
			k.Favorite,
			k.TotalLinksScanned,
			k.TotalLinksNew,
			k.TotalLinksDuplicate,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
