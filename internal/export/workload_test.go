package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/emilianohg/staffboard/internal/export"
	"github.com/emilianohg/staffboard/internal/workload"
)

func TestWorkloadWorkbook(t *testing.T) {
	buf, err := export.WorkloadWorkbook([]workload.Row{
		{PersonID: 1, Name: "Amina", Email: "amina@example.com", Role: "DBA", AssignedHours: 4, Underutilized: true},
		{PersonID: 2, Name: "Baraka", Email: "baraka@example.com", AssignedHours: 40},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.WorkloadSheet}, f.GetSheetList())

	rows, err := f.GetRows(export.WorkloadSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Team Member", "Email", "Role", "Assigned Hours", "Underutilized"}, rows[0])
	assert.Equal(t, []string{"Amina", "amina@example.com", "DBA", "4", "Yes"}, rows[1])
	assert.Equal(t, []string{"Baraka", "baraka@example.com", "", "40", "No"}, rows[2])
}

func TestWorkloadWorkbook_Empty(t *testing.T) {
	buf, err := export.WorkloadWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.WorkloadSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
