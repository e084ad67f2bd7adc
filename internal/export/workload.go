// Package export renders reports as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/workload"
)

const WorkloadSheet = "Workload Summary"

var workloadHeader = []any{"Team Member", "Email", "Role", "Assigned Hours", "Underutilized"}

// WorkloadWorkbook writes rows to a single-sheet .xlsx document.
func WorkloadWorkbook(rows []workload.Row) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(WorkloadSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	f.SetColWidth(WorkloadSheet, "A", "C", 24)
	f.SetColWidth(WorkloadSheet, "D", "E", 16)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(WorkloadSheet, "A1", &workloadHeader); err != nil {
		return nil, err
	}
	f.SetCellStyle(WorkloadSheet, "A1", "E1", headerStyle)

	for i, r := range rows {
		flag := models.No
		if r.Underutilized {
			flag = models.Yes
		}
		values := []any{r.Name, r.Email, r.Role, r.AssignedHours, flag}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(WorkloadSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
