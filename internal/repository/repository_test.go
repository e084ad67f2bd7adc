package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/testutil"
)

func newAssignment(t *testing.T, name string, personID *int64, hours int) *models.Assignment {
	t.Helper()
	return &models.Assignment{
		ProjectName:            name,
		PersonID:               personID,
		ClientCountry:          "Kenya",
		ServiceLine:            "MSU",
		ResourceAvailableLocal: models.Yes,
		Activity:               "Scripting",
		PartnersNeeded:         models.No,
		StartDate:              testutil.Date(t, "2025-03-03"),
		EndDate:                testutil.Date(t, "2025-03-07"),
		Hours:                  hours,
		Priority:               models.PriorityMedium,
		Status:                 models.StatusNotStarted,
		Impact:                 models.ImpactOnTrack,
	}
}

func TestPersonRepo_CRUD(t *testing.T) {
	conn := testutil.NewDB(t)
	repo := repository.NewPersonRepo(conn)

	p, err := repo.Create("Amina", "amina@example.com", "Analysis")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Amina", p.Name)
	assert.Zero(t, p.AssignedHours)

	byEmail, err := repo.GetByEmail("amina@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, p.ID, byEmail.ID)

	require.NoError(t, repo.Update(p.ID, "Amina O.", "amina@example.com", "DBA"))
	require.NoError(t, repo.SetAssignedHours(p.ID, 12))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amina O.", got.Name)
	assert.Equal(t, "DBA", got.Role)
	assert.Equal(t, 12, got.AssignedHours)

	require.NoError(t, repo.Delete(p.ID))
	missing, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPersonRepo_DuplicateEmailRejected(t *testing.T) {
	conn := testutil.NewDB(t)
	repo := repository.NewPersonRepo(conn)

	_, err := repo.Create("A", "same@example.com", "")
	require.NoError(t, err)
	_, err = repo.Create("B", "same@example.com", "")
	assert.Error(t, err)
}

func TestPersonRepo_NameIndexAndRoles(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	assignments := repository.NewAssignmentRepo(conn)

	first, err := people.Create("Otieno", "o1@example.com", "")
	require.NoError(t, err)
	_, err = people.Create("Otieno", "o2@example.com", "")
	require.NoError(t, err)

	index, err := people.NameIndex()
	require.NoError(t, err)
	assert.Equal(t, first.ID, index["Otieno"])

	a := newAssignment(t, "Census", nil, 8)
	a.Activity = "Validation"
	_, err = assignments.Create(a)
	require.NoError(t, err)
	_, err = assignments.Create(newAssignment(t, "Panel", nil, 8))
	require.NoError(t, err)

	roles, err := people.Roles()
	require.NoError(t, err)
	assert.Equal(t, []string{"Scripting", "Validation"}, roles)
}

func TestAssignmentRepo_CRUDAndSums(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	repo := repository.NewAssignmentRepo(conn)

	p, err := people.Create("Wanjiru", "w@example.com", "")
	require.NoError(t, err)
	idle, err := people.Create("Idle", "idle@example.com", "")
	require.NoError(t, err)

	a, err := repo.Create(newAssignment(t, "Tracker", &p.ID, 10))
	require.NoError(t, err)
	require.NotNil(t, a.PersonID)
	assert.Equal(t, p.ID, *a.PersonID)
	assert.Equal(t, "Wanjiru", a.PersonName)
	require.NotNil(t, a.StartDate)
	assert.Equal(t, "2025-03-03", a.StartDate.Format("2006-01-02"))

	_, err = repo.Create(newAssignment(t, "Omnibus", &p.ID, 15))
	require.NoError(t, err)
	_, err = repo.Create(newAssignment(t, "Unowned", nil, 99))
	require.NoError(t, err)

	sum, err := repo.SumHours(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, sum)

	totals, err := repo.SumHoursByPerson()
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{p.ID: 25, idle.ID: 0}, totals)

	a.Hours = 4
	require.NoError(t, repo.Update(a))
	sum, err = repo.SumHours(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 19, sum)

	changed, err := repo.Unassign(p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	count, err := repo.CountByPerson(p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Delete(a.ID))
	gone, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAssignmentRepo_RejectsZeroHours(t *testing.T) {
	conn := testutil.NewDB(t)
	repo := repository.NewAssignmentRepo(conn)

	_, err := repo.Create(newAssignment(t, "Broken", nil, 0))
	assert.Error(t, err)
}

func TestAssignmentRepo_ListFiltersAndStats(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	repo := repository.NewAssignmentRepo(conn)

	p, err := people.Create("Kamau", "k@example.com", "")
	require.NoError(t, err)

	done := newAssignment(t, "Closed study", &p.ID, 16)
	done.Status = models.StatusCompleted
	done.StartDate = testutil.Date(t, "2025-05-01")
	done.EndDate = testutil.Date(t, "2025-05-09")
	_, err = repo.Create(done)
	require.NoError(t, err)

	ug := newAssignment(t, "Uganda tracker", nil, 24)
	ug.ClientCountry = "Uganda"
	ug.Activity = "Analysis"
	_, err = repo.Create(ug)
	require.NoError(t, err)

	all, err := repo.List(repository.AssignmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCountry, err := repo.List(repository.AssignmentFilter{ClientCountry: "Uganda"})
	require.NoError(t, err)
	require.Len(t, byCountry, 1)
	assert.Equal(t, "Uganda tracker", byCountry[0].ProjectName)

	byPerson, err := repo.List(repository.AssignmentFilter{PersonID: &p.ID})
	require.NoError(t, err)
	require.Len(t, byPerson, 1)

	window, err := repo.List(repository.AssignmentFilter{
		From: testutil.Date(t, "2025-04-01"),
		To:   testutil.Date(t, "2025-05-31"),
	})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "Closed study", window[0].ProjectName)

	now := time.Date(2025, time.May, 12, 9, 0, 0, 0, time.UTC)
	stats, err := repo.Stats(repository.AssignmentFilter{}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 40, stats.TotalHours)
	assert.Equal(t, 1, stats.UniqueResources)
	assert.Equal(t, 1, stats.CompletedLast7Days)
}

func TestLeaveRepo_UpsertAndOverview(t *testing.T) {
	conn := testutil.NewDB(t)
	people := repository.NewPersonRepo(conn)
	repo := repository.NewLeaveRepo(conn)

	a, err := people.Create("Achieng", "a@example.com", "PM")
	require.NoError(t, err)
	_, err = people.Create("Baraka", "b@example.com", "DBA")
	require.NoError(t, err)

	none, err := repo.GetByPersonID(a.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, repo.Upsert(models.LeaveBalance{PersonID: a.ID, PreviousYearBalance: 2, CurrentYearAllocated: 21, CurrentYearTaken: 5}))
	require.NoError(t, repo.Upsert(models.LeaveBalance{PersonID: a.ID, PreviousYearBalance: 2, CurrentYearAllocated: 21, CurrentYearTaken: 7.5}))

	lb, err := repo.GetByPersonID(a.ID)
	require.NoError(t, err)
	require.NotNil(t, lb)
	assert.Equal(t, 7.5, lb.CurrentYearTaken)

	overview, err := repo.GetAllWithPeople()
	require.NoError(t, err)
	require.Len(t, overview, 2)
	assert.Equal(t, "Achieng", overview[0].Name)
	require.NotNil(t, overview[0].Balance)
	assert.Equal(t, 21.0, overview[0].Balance.CurrentYearAllocated)
	assert.Nil(t, overview[1].Balance)

	// Balance goes with the person
	require.NoError(t, people.Delete(a.ID))
	lb, err = repo.GetByPersonID(a.ID)
	require.NoError(t, err)
	assert.Nil(t, lb)
}
