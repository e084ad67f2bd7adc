// Package importer loads project assignments from spreadsheets.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers recognized in an import sheet.
const (
	ColProjectName    = "Project Name"
	ColResource       = "Resource"
	ColClientCountry  = "Client Country"
	ColServiceLine    = "Service Line"
	ColAvailableLocal = "Resource available in Kenya"
	ColActivity       = "Activity"
	ColPartnersNeeded = "Bulgaria/Tunisia/Thailand Partners needed (Y/N)"
	ColStartDate      = "Start Date"
	ColEndDate        = "End Date"
	ColHours          = "Hours"
	ColPriority       = "Priority"
	ColStatus         = "Status"
	ColImpact         = "Impact"
	ColComments       = "Comments"
)

var RequiredColumns = []string{ColProjectName, ColStartDate, ColEndDate}

var Columns = []string{
	ColProjectName, ColResource, ColClientCountry, ColServiceLine, ColAvailableLocal,
	ColActivity, ColPartnersNeeded, ColStartDate, ColEndDate, ColHours,
	ColPriority, ColStatus, ColImpact, ColComments,
}

// RawRow is one data row keyed by column header. Line is the 1-based sheet
// row, so the first data row is line 2.
type RawRow struct {
	Line  int
	Cells map[string]string
}

// Get returns the trimmed cell under col, or "" when absent.
func (r RawRow) Get(col string) string {
	return strings.TrimSpace(r.Cells[col])
}

// MissingColumnsError rejects a sheet whose header lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ParseWorkbook reads the named sheet (the first one when sheet is empty) of
// an .xlsx file. Header names are matched case-insensitively; unknown
// columns are ignored and fully blank rows are dropped.
func ParseWorkbook(r io.Reader, sheet string) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	// Raw values keep dates as serial numbers instead of locale formatted text.
	sheetRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(sheetRows) == 0 {
		return nil, &MissingColumnsError{Columns: RequiredColumns}
	}

	colIndex := parseHeaderIndex(sheetRows[0])
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var rows []RawRow
	for i := 1; i < len(sheetRows); i++ {
		cells := make(map[string]string, len(colIndex))
		blank := true
		for col, idx := range colIndex {
			if idx >= len(sheetRows[i]) {
				continue
			}
			v := strings.TrimSpace(sheetRows[i][idx])
			if v != "" {
				blank = false
			}
			cells[col] = v
		}
		if blank {
			continue
		}
		rows = append(rows, RawRow{Line: i + 1, Cells: cells})
	}
	return rows, nil
}

func parseHeaderIndex(header []string) map[string]int {
	known := make(map[string]string, len(Columns))
	for _, col := range Columns {
		known[strings.ToLower(col)] = col
	}

	idx := make(map[string]int)
	for i, h := range header {
		col, ok := known[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := idx[col]; !dup {
			idx[col] = i
		}
	}
	return idx
}
