package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/staffboard/internal/calendar"
	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/service"
)

type projectsMode int

const (
	projectsModeList projectsMode = iota
	projectsModeAdd
	projectsModeEdit
	projectsModeDelete
	projectsModeAssign
)

const (
	fieldProjectName = iota
	fieldStartDate
	fieldEndDate
	fieldHours
	fieldActivity
	fieldClientCountry
	fieldServiceLine
	fieldPriority
	fieldStatus
	fieldImpact
	fieldComments
)

type Projects struct {
	svc    *service.Services
	width  int
	height int

	assignments  []models.Assignment
	people       []models.Person
	personFilter *int64
	cursor       int
	personCursor int
	mode         projectsMode
	form         *Form
	pending      *service.AssignmentInput
	pendingID    int64
	loading      bool
	err          error
	message      string
}

func NewProjects(svc *service.Services) *Projects {
	return &Projects{
		svc: svc,
		form: NewForm(
			"Project name",
			"Start date (YYYY-MM-DD)",
			"End date (YYYY-MM-DD)",
			"Hours (blank: working days x hours per day)",
			"Activity",
			"Client country",
			"Service line",
			"Priority ("+strings.Join(models.Priorities, "/")+")",
			"Status ("+strings.Join(models.Statuses, "/")+")",
			"Impact ("+strings.Join(models.Impacts, "/")+")",
			"Comments",
		),
	}
}

func (p *Projects) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *Projects) SetPersonFilter(personID *int64) {
	p.personFilter = personID
}

type projectsDataMsg struct {
	assignments []models.Assignment
	people      []models.Person
	err         error
}

func (p *Projects) Init() tea.Cmd {
	p.loading = true
	p.mode = projectsModeList
	p.message = ""
	return p.loadData
}

func (p *Projects) loadData() tea.Msg {
	assignments, err := p.svc.Assignments.List(repository.AssignmentFilter{PersonID: p.personFilter})
	if err != nil {
		return projectsDataMsg{err: err}
	}

	people, err := p.svc.Team.List()
	if err != nil {
		return projectsDataMsg{err: err}
	}

	return projectsDataMsg{assignments: assignments, people: people}
}

func (p *Projects) Update(msg tea.Msg) tea.Cmd {
	// In input mode, pass messages to the form first
	if p.mode == projectsModeAdd || p.mode == projectsModeEdit {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return p.submitForm()
			case "esc":
				p.mode = projectsModeList
				p.form.Blur()
				return nil
			}
		}
		return p.form.Update(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.loading = false
		p.err = msg.err
		p.assignments = msg.assignments
		p.people = msg.people
		if p.cursor >= len(p.assignments) {
			p.cursor = max(0, len(p.assignments)-1)
		}
		return nil

	case RefreshMsg:
		return p.Init()

	case tea.KeyMsg:
		switch p.mode {
		case projectsModeList:
			return p.handleListKey(msg)
		case projectsModeDelete:
			return p.handleDeleteKey(msg)
		case projectsModeAssign:
			return p.handleAssignKey(msg)
		}
	}

	return nil
}

func (p *Projects) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.assignments)-1 {
			p.cursor++
		}
	case "a":
		p.mode = projectsModeAdd
		today := time.Now().Format(calendar.DateLayout)
		return p.form.Reset("", today, today)
	case "e":
		if len(p.assignments) > 0 {
			a := p.assignments[p.cursor]
			p.mode = projectsModeEdit
			return p.form.Reset(
				a.ProjectName,
				calendar.FormatDate(a.StartDate),
				calendar.FormatDate(a.EndDate),
				strconv.Itoa(a.Hours),
				a.Activity,
				a.ClientCountry,
				a.ServiceLine,
				a.Priority,
				a.Status,
				a.Impact,
				a.Comments,
			)
		}
	case "d":
		if len(p.assignments) > 0 {
			p.mode = projectsModeDelete
		}
	case "m":
		if len(p.assignments) > 0 && len(p.people) > 0 {
			a := p.assignments[p.cursor]
			in := service.InputFromAssignment(&a)
			p.pending = &in
			p.pendingID = a.ID
			p.personCursor = 0
			p.mode = projectsModeAssign
		}
	case "q", "esc":
		if p.personFilter != nil {
			return Navigate("team")
		}
		return Navigate("dashboard")
	}
	return nil
}

// readForm turns the form into an input; the resource is left to the caller.
func (p *Projects) readForm() (*service.AssignmentInput, error) {
	start, err := calendar.ParseDate(p.form.Value(fieldStartDate))
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseDate(p.form.Value(fieldEndDate))
	if err != nil {
		return nil, err
	}

	hours := 0
	if v := p.form.Value(fieldHours); v != "" {
		hours, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("hours must be a whole number, got %q", v)
		}
	}

	return &service.AssignmentInput{
		ProjectName:   p.form.Value(fieldProjectName),
		StartDate:     &start,
		EndDate:       &end,
		Hours:         hours,
		Activity:      p.form.Value(fieldActivity),
		ClientCountry: p.form.Value(fieldClientCountry),
		ServiceLine:   p.form.Value(fieldServiceLine),
		Priority:      p.form.Value(fieldPriority),
		Status:        p.form.Value(fieldStatus),
		Impact:        p.form.Value(fieldImpact),
		Comments:      p.form.Value(fieldComments),
	}, nil
}

func (p *Projects) submitForm() tea.Cmd {
	in, err := p.readForm()
	if err != nil {
		p.err = err
		return nil
	}

	if p.mode == projectsModeEdit {
		current := p.assignments[p.cursor]
		in.PersonID = current.PersonID
		in.ResourceAvailableLocal = current.ResourceAvailableLocal
		in.PartnersNeeded = current.PartnersNeeded
		p.pendingID = current.ID
	} else {
		in.PersonID = p.personFilter
		p.pendingID = 0
	}
	p.form.Blur()

	if in.PersonID == nil {
		if len(p.people) == 0 {
			p.err = fmt.Errorf("add a team member before creating projects")
			p.mode = projectsModeList
			return nil
		}
		p.pending = in
		p.personCursor = 0
		p.mode = projectsModeAssign
		return nil
	}

	p.pending = in
	return p.commitPending()
}

// commitPending creates or updates the pending input depending on pendingID.
func (p *Projects) commitPending() tea.Cmd {
	in := *p.pending
	p.pending = nil
	p.mode = projectsModeList

	if p.pendingID == 0 {
		a, err := p.svc.Assignments.Create(in)
		if err != nil {
			p.err = err
			return nil
		}
		p.message = fmt.Sprintf("Created project: %s (%dh)", a.ProjectName, a.Hours)
	} else {
		a, err := p.svc.Assignments.Update(p.pendingID, in)
		if err != nil {
			p.err = err
			return nil
		}
		p.message = fmt.Sprintf("Updated project: %s", a.ProjectName)
	}
	return p.loadData
}

func (p *Projects) handleAssignKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if p.personCursor > 0 {
			p.personCursor--
		}
	case "down", "j":
		if p.personCursor < len(p.people)-1 {
			p.personCursor++
		}
	case "enter":
		id := p.people[p.personCursor].ID
		p.pending.PersonID = &id
		return p.commitPending()
	case "esc":
		p.pending = nil
		p.mode = projectsModeList
	}
	return nil
}

func (p *Projects) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		a := p.assignments[p.cursor]
		if err := p.svc.Assignments.Delete(a.ID); err != nil {
			p.err = err
		} else {
			p.message = fmt.Sprintf("Deleted project: %s", a.ProjectName)
		}
		p.mode = projectsModeList
		return p.loadData

	case "n", "N", "esc":
		p.mode = projectsModeList
	}
	return nil
}

func (p *Projects) View() string {
	var b strings.Builder

	title := "PROJECTS"
	if p.personFilter != nil {
		for _, person := range p.people {
			if person.ID == *p.personFilter {
				title = fmt.Sprintf("PROJECTS - %s", person.Name)
				break
			}
		}
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if p.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if p.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", p.err)))
		b.WriteString("\n\n")
		p.err = nil
	}

	if p.message != "" {
		b.WriteString(SuccessStyle.Render(p.message))
		b.WriteString("\n\n")
	}

	if p.mode == projectsModeAdd || p.mode == projectsModeEdit {
		if p.mode == projectsModeAdd {
			b.WriteString("New project:\n\n")
		} else {
			b.WriteString("Edit project:\n\n")
		}
		b.WriteString(p.form.View())
		b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	if p.mode == projectsModeDelete && len(p.assignments) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete project '%s'? (y/n)",
			p.assignments[p.cursor].ProjectName,
		)))
		b.WriteString("\n")
		return b.String()
	}

	if p.mode == projectsModeAssign {
		b.WriteString("Assign to:\n\n")
		for i, person := range p.people {
			b.WriteString(cursorLine(i == p.personCursor, fmt.Sprintf("%s (%dh)", person.Name, person.AssignedHours)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[enter] Select  [esc] Cancel"))
		return b.String()
	}

	if len(p.assignments) == 0 {
		b.WriteString(DimStyle.Render("No projects yet."))
		b.WriteString("\n\n")
	} else {
		for i, a := range p.assignments {
			resource := "(unassigned)"
			if a.PersonName != "" {
				resource = a.PersonName
			}
			line := fmt.Sprintf("%s - %s, %s to %s, %dh [%s]",
				a.ProjectName,
				resource,
				calendar.FormatDate(a.StartDate),
				calendar.FormatDate(a.EndDate),
				a.Hours,
				a.Status,
			)
			b.WriteString(cursorLine(i == p.cursor, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Edit  [d] Delete  [m] Reassign  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
