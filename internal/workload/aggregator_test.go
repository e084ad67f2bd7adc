package workload_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/staffboard/internal/logger"
	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/testutil"
	"github.com/emilianohg/staffboard/internal/workload"
)

func assignment(t *testing.T, name string, personID *int64, hours int) *models.Assignment {
	t.Helper()
	return &models.Assignment{
		ProjectName:            name,
		PersonID:               personID,
		ResourceAvailableLocal: models.No,
		PartnersNeeded:         models.No,
		StartDate:              testutil.Date(t, "2025-03-03"),
		EndDate:                testutil.Date(t, "2025-03-14"),
		Hours:                  hours,
		Priority:               models.PriorityMedium,
		Status:                 models.StatusNotStarted,
		Impact:                 models.ImpactOnTrack,
	}
}

// TestRecompute_EditAndDeleteScenario walks a person through two assignments,
// an edit and a delete, recomputing after each step.
func TestRecompute_EditAndDeleteScenario(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	assignments := repository.NewAssignmentRepo(conn)
	agg := workload.New(conn, logger.Discard())

	p, err := people.Create("P", "p@example.com", "")
	require.NoError(t, err)

	first, err := assignments.Create(assignment(t, "First", &p.ID, 10))
	require.NoError(t, err)
	second, err := assignments.Create(assignment(t, "Second", &p.ID, 15))
	require.NoError(t, err)

	hours, err := agg.Recompute(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, hours)

	second.Hours = 5
	require.NoError(t, assignments.Update(second))
	hours, err = agg.Recompute(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, hours)

	require.NoError(t, assignments.Delete(first.ID))
	hours, err = agg.Recompute(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, hours)
}

func TestRecompute_NoAssignmentsIsZero(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	agg := workload.New(conn, logger.Discard())

	p, err := people.Create("Idle", "idle@example.com", "")
	require.NoError(t, err)

	hours, err := agg.Recompute(p.ID)
	require.NoError(t, err)
	assert.Zero(t, hours)

	all, err := agg.RecomputeAll()
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{p.ID: 0}, all)
}

func TestSync_UpdatesOnlyGivenPeopleAndSkipsNil(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	assignments := repository.NewAssignmentRepo(conn)
	agg := workload.New(conn, logger.Discard())

	a, err := people.Create("A", "a@example.com", "")
	require.NoError(t, err)
	b, err := people.Create("B", "b@example.com", "")
	require.NoError(t, err)

	_, err = assignments.Create(assignment(t, "For A", &a.ID, 30))
	require.NoError(t, err)
	_, err = assignments.Create(assignment(t, "For B", &b.ID, 12))
	require.NoError(t, err)

	require.NoError(t, agg.Sync(&a.ID, nil, &a.ID))

	gotA, err := people.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, gotA.AssignedHours)

	gotB, err := people.GetByID(b.ID)
	require.NoError(t, err)
	assert.Zero(t, gotB.AssignedHours, "B was not part of the sync")

	require.NoError(t, agg.SyncAll())
	gotB, err = people.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, gotB.AssignedHours)
}

func TestCheckAndReconcile_RepairsDrift(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	assignments := repository.NewAssignmentRepo(conn)

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	agg := workload.New(conn, log)

	p, err := people.Create("Drifter", "d@example.com", "")
	require.NoError(t, err)
	_, err = assignments.Create(assignment(t, "Study", &p.ID, 24))
	require.NoError(t, err)

	drifts, err := agg.Check()
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, p.ID, drifts[0].PersonID)
	assert.Equal(t, 0, drifts[0].Cached)
	assert.Equal(t, 24, drifts[0].Actual)

	result, err := agg.Reconcile()
	require.NoError(t, err)
	assert.True(t, result.Repaired)
	assert.Len(t, result.Drifts, 1)
	assert.Contains(t, logs.String(), "assigned hours drifted")

	drifts, err = agg.Check()
	require.NoError(t, err)
	assert.Empty(t, drifts)

	result, err = agg.Reconcile()
	require.NoError(t, err)
	assert.False(t, result.Repaired)
}

func TestSummary_FlagsUnderutilized(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	assignments := repository.NewAssignmentRepo(conn)
	agg := workload.New(conn, logger.Discard())

	busy, err := people.Create("Busy", "busy@example.com", "Scripting")
	require.NoError(t, err)
	_, err = people.Create("Almost", "almost@example.com", "Analysis")
	require.NoError(t, err)

	_, err = assignments.Create(assignment(t, "Big", &busy.ID, 40))
	require.NoError(t, err)

	rows, err := agg.Summary(8)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Almost", rows[0].Name)
	assert.Equal(t, 0, rows[0].AssignedHours)
	assert.True(t, rows[0].Underutilized)

	assert.Equal(t, "Busy", rows[1].Name)
	assert.Equal(t, 40, rows[1].AssignedHours)
	assert.False(t, rows[1].Underutilized)

	assert.Equal(t, 40, workload.TotalHours(rows))
}
