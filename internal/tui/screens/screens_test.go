package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/staffboard/internal/logger"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/service"
	"github.com/emilianohg/staffboard/internal/testutil"
)

func newServices(t *testing.T) *service.Services {
	t.Helper()
	return service.New(testutil.NewDB(t), logger.Discard(), 8)
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestForm_ResetAndNavigation(t *testing.T) {
	f := NewForm("Name", "Email", "Role")
	f.Reset("Amina")

	assert.Equal(t, "Amina", f.Value(0))
	assert.Equal(t, "", f.Value(1))

	f.Update(keyTab)
	f.Update(typeText("amina@example.com"))
	assert.Equal(t, "amina@example.com", f.Value(1))

	// shift+tab from the first field wraps to the last
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(typeText("Analyst"))
	assert.Equal(t, "Analyst", f.Value(2))
}

func TestTeam_AddThroughForm(t *testing.T) {
	svc := newServices(t)
	team := NewTeam(svc)
	team.Update(team.loadData())

	team.Update(typeText("a"))
	require.Equal(t, teamModeAdd, team.mode)

	team.Update(typeText("Amina Otieno"))
	team.Update(keyTab)
	team.Update(typeText("amina@example.com"))

	cmd := team.Update(keyEnter)
	require.NotNil(t, cmd)
	team.Update(cmd())

	assert.Equal(t, teamModeList, team.mode)
	require.Len(t, team.people, 1)
	assert.Equal(t, "Amina Otieno", team.people[0].Name)
	assert.Contains(t, team.View(), "Added team member: Amina Otieno")
}

func TestTeam_InvalidEmailStaysInForm(t *testing.T) {
	svc := newServices(t)
	team := NewTeam(svc)
	team.Update(team.loadData())

	team.Update(typeText("a"))
	team.Update(typeText("Amina"))
	team.Update(keyTab)
	team.Update(typeText("not-an-email"))
	team.Update(keyEnter)

	assert.Equal(t, teamModeAdd, team.mode)
	assert.Contains(t, team.View(), "Error:")

	people, err := svc.Team.List()
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestTeam_DeleteLeavesProjectsUnassigned(t *testing.T) {
	svc := newServices(t)
	p, err := svc.Team.Create(service.PersonInput{Name: "Amina", Email: "amina@example.com"})
	require.NoError(t, err)
	_, err = svc.Assignments.Create(service.AssignmentInput{
		ProjectName: "Alpha",
		PersonID:    &p.ID,
		StartDate:   testutil.Date(t, "2025-03-03"),
		EndDate:     testutil.Date(t, "2025-03-07"),
	})
	require.NoError(t, err)

	team := NewTeam(svc)
	team.Update(team.loadData())
	team.Update(typeText("d"))
	require.Equal(t, teamModeDelete, team.mode)

	cmd := team.Update(typeText("y"))
	require.NotNil(t, cmd)
	team.Update(cmd())

	assert.Empty(t, team.people)
	assert.Contains(t, team.message, "1 assignment(s) left unassigned")

	assignments, err := svc.Assignments.List(repository.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Nil(t, assignments[0].PersonID)
}

func TestProjects_CreateForFilteredPerson(t *testing.T) {
	svc := newServices(t)
	p, err := svc.Team.Create(service.PersonInput{Name: "Amina", Email: "amina@example.com"})
	require.NoError(t, err)

	projects := NewProjects(svc)
	projects.SetPersonFilter(&p.ID)
	projects.Update(projects.loadData())

	projects.Update(typeText("a"))
	require.Equal(t, projectsModeAdd, projects.mode)
	projects.form.Reset("Alpha", "2025-03-03", "2025-03-07")

	cmd := projects.Update(keyEnter)
	require.NotNil(t, cmd)
	projects.Update(cmd())

	require.Len(t, projects.assignments, 1)
	assert.Equal(t, 40, projects.assignments[0].Hours)

	got, err := svc.Team.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.AssignedHours)
}

func TestProjects_UnfilteredCreateAsksForResource(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Team.Create(service.PersonInput{Name: "Amina", Email: "amina@example.com"})
	require.NoError(t, err)
	bo, err := svc.Team.Create(service.PersonInput{Name: "Bo", Email: "bo@example.com"})
	require.NoError(t, err)

	projects := NewProjects(svc)
	projects.Update(projects.loadData())

	projects.Update(typeText("a"))
	projects.form.Reset("Alpha", "2025-03-03", "2025-03-03", "6")
	projects.Update(keyEnter)
	require.Equal(t, projectsModeAssign, projects.mode)

	// roster is ordered by name: Amina, Bo
	projects.Update(tea.KeyMsg{Type: tea.KeyDown})
	cmd := projects.Update(keyEnter)
	require.NotNil(t, cmd)
	projects.Update(cmd())

	require.Len(t, projects.assignments, 1)
	assert.Equal(t, bo.ID, *projects.assignments[0].PersonID)
	assert.Equal(t, 6, projects.assignments[0].Hours)
}

func TestLeave_UndefinedPercentages(t *testing.T) {
	svc := newServices(t)
	p, err := svc.Team.Create(service.PersonInput{Name: "Amina", Email: "amina@example.com"})
	require.NoError(t, err)
	_, err = svc.Leave.Set(p.ID, service.LeaveInput{PreviousYearBalance: 3})
	require.NoError(t, err)

	leave := NewLeave(svc)
	leave.Update(leave.loadData())

	view := leave.View()
	assert.Contains(t, view, "Amina")
	assert.Contains(t, view, "n/a")
}

func TestLeave_SetThroughForm(t *testing.T) {
	svc := newServices(t)
	p, err := svc.Team.Create(service.PersonInput{Name: "Amina", Email: "amina@example.com"})
	require.NoError(t, err)

	leave := NewLeave(svc)
	leave.Update(leave.loadData())
	leave.Update(typeText("s"))
	require.True(t, leave.editing)

	leave.form.Reset("2", "20", "5")
	cmd := leave.Update(keyEnter)
	require.NotNil(t, cmd)
	leave.Update(cmd())

	lb, err := svc.Leave.Get(p.ID)
	require.NoError(t, err)
	require.NotNil(t, lb)
	assert.Equal(t, 20.0, lb.CurrentYearAllocated)
	assert.Contains(t, leave.View(), "taken 5 (25%)")
}
