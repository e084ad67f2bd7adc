package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/service"
)

type teamMode int

const (
	teamModeList teamMode = iota
	teamModeAdd
	teamModeEdit
	teamModeDelete
)

const (
	teamFieldName = iota
	teamFieldEmail
	teamFieldRole
)

type Team struct {
	svc    *service.Services
	width  int
	height int

	people  []models.Person
	roles   []string
	cursor  int
	mode    teamMode
	form    *Form
	loading bool
	err     error
	message string
}

func NewTeam(svc *service.Services) *Team {
	return &Team{
		svc:  svc,
		form: NewForm("Name", "Email", "Role"),
	}
}

func (t *Team) SetSize(width, height int) {
	t.width = width
	t.height = height
}

type teamDataMsg struct {
	people []models.Person
	roles  []string
	err    error
}

func (t *Team) Init() tea.Cmd {
	t.loading = true
	t.mode = teamModeList
	t.message = ""
	return t.loadData
}

func (t *Team) loadData() tea.Msg {
	people, err := t.svc.Team.List()
	if err != nil {
		return teamDataMsg{err: err}
	}
	roles, err := t.svc.Team.Roles()
	if err != nil {
		return teamDataMsg{err: err}
	}
	return teamDataMsg{people: people, roles: roles}
}

func (t *Team) Update(msg tea.Msg) tea.Cmd {
	if t.mode == teamModeAdd || t.mode == teamModeEdit {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return t.save()
			case "esc":
				t.mode = teamModeList
				t.form.Blur()
				return nil
			}
		}
		return t.form.Update(msg)
	}

	switch msg := msg.(type) {
	case teamDataMsg:
		t.loading = false
		t.err = msg.err
		t.people = msg.people
		t.roles = msg.roles
		if t.cursor >= len(t.people) {
			t.cursor = max(0, len(t.people)-1)
		}
		return nil

	case RefreshMsg:
		return t.Init()

	case tea.KeyMsg:
		switch t.mode {
		case teamModeList:
			return t.handleListKey(msg)
		case teamModeDelete:
			return t.handleDeleteKey(msg)
		}
	}

	return nil
}

func (t *Team) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(t.people)-1 {
			t.cursor++
		}
	case "a":
		t.mode = teamModeAdd
		return t.form.Reset()
	case "e":
		if len(t.people) > 0 {
			p := t.people[t.cursor]
			t.mode = teamModeEdit
			return t.form.Reset(p.Name, p.Email, p.Role)
		}
	case "d":
		if len(t.people) > 0 {
			t.mode = teamModeDelete
		}
	case "enter":
		if len(t.people) > 0 {
			return NavigateWithPerson("projects", t.people[t.cursor].ID)
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	return nil
}

func (t *Team) save() tea.Cmd {
	in := service.PersonInput{
		Name:  t.form.Value(teamFieldName),
		Email: t.form.Value(teamFieldEmail),
		Role:  t.form.Value(teamFieldRole),
	}

	if t.mode == teamModeAdd {
		p, err := t.svc.Team.Create(in)
		if err != nil {
			t.err = err
			return nil
		}
		t.message = fmt.Sprintf("Added team member: %s", p.Name)
	} else {
		p, err := t.svc.Team.Update(t.people[t.cursor].ID, in)
		if err != nil {
			t.err = err
			return nil
		}
		t.message = fmt.Sprintf("Updated team member: %s", p.Name)
	}

	t.mode = teamModeList
	t.form.Blur()
	return t.loadData
}

func (t *Team) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		p := t.people[t.cursor]
		released, err := t.svc.Team.Delete(p.ID, true)
		if err != nil {
			t.err = err
		} else {
			t.message = fmt.Sprintf("Deleted %s; %d assignment(s) left unassigned", p.Name, released)
		}
		t.mode = teamModeList
		return t.loadData

	case "n", "N", "esc":
		t.mode = teamModeList
	}
	return nil
}

func (t *Team) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("TEAM"))
	b.WriteString("\n\n")

	if t.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if t.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", t.err)))
		b.WriteString("\n\n")
		t.err = nil
	}

	if t.message != "" {
		b.WriteString(SuccessStyle.Render(t.message))
		b.WriteString("\n\n")
	}

	if t.mode == teamModeAdd || t.mode == teamModeEdit {
		if t.mode == teamModeAdd {
			b.WriteString("New team member:\n\n")
		} else {
			b.WriteString("Edit team member:\n\n")
		}
		b.WriteString(t.form.View())
		if len(t.roles) > 0 {
			b.WriteString("\n")
			b.WriteString(DimStyle.Render("Known roles: " + strings.Join(t.roles, ", ")))
			b.WriteString("\n")
		}
		b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	if t.mode == teamModeDelete && len(t.people) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete '%s'? Their projects will be kept without a resource. (y/n)",
			t.people[t.cursor].Name,
		)))
		b.WriteString("\n")
		return b.String()
	}

	if len(t.people) == 0 {
		b.WriteString(DimStyle.Render("No team members yet."))
		b.WriteString("\n\n")
	} else {
		for i, p := range t.people {
			line := fmt.Sprintf("%s <%s> %s - %dh", p.Name, p.Email, p.Role, p.AssignedHours)
			b.WriteString(cursorLine(i == t.cursor, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Edit  [d] Delete  [enter] View projects  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
