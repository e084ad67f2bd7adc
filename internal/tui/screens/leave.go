package screens

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/staffboard/internal/models"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/service"
)

type Leave struct {
	svc    *service.Services
	width  int
	height int

	entries []repository.PersonLeave
	cursor  int
	editing bool
	form    *Form
	loading bool
	err     error
	message string
}

func NewLeave(svc *service.Services) *Leave {
	return &Leave{
		svc:  svc,
		form: NewForm("Previous year balance (days)", "Current year allocated (days)", "Current year taken (days)"),
	}
}

func (l *Leave) SetSize(width, height int) {
	l.width = width
	l.height = height
}

type leaveDataMsg struct {
	entries []repository.PersonLeave
	err     error
}

func (l *Leave) Init() tea.Cmd {
	l.loading = true
	l.editing = false
	l.message = ""
	return l.loadData
}

func (l *Leave) loadData() tea.Msg {
	entries, err := l.svc.Leave.Overview()
	return leaveDataMsg{entries: entries, err: err}
}

func (l *Leave) Update(msg tea.Msg) tea.Cmd {
	if l.editing {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return l.save()
			case "esc":
				l.editing = false
				l.form.Blur()
				return nil
			}
		}
		return l.form.Update(msg)
	}

	switch msg := msg.(type) {
	case leaveDataMsg:
		l.loading = false
		l.err = msg.err
		l.entries = msg.entries
		if l.cursor >= len(l.entries) {
			l.cursor = max(0, len(l.entries)-1)
		}
		return nil

	case RefreshMsg:
		return l.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.entries)-1 {
				l.cursor++
			}
		case "s", "enter":
			if len(l.entries) > 0 {
				l.editing = true
				var lb models.LeaveBalance
				if b := l.entries[l.cursor].Balance; b != nil {
					lb = *b
				}
				return l.form.Reset(days(lb.PreviousYearBalance), days(lb.CurrentYearAllocated), days(lb.CurrentYearTaken))
			}
		case "q", "esc":
			return Navigate("dashboard")
		}
	}

	return nil
}

func days(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (l *Leave) save() tea.Cmd {
	var values [3]float64
	for i := range values {
		raw := l.form.Value(i)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			l.err = fmt.Errorf("%q is not a number of days", raw)
			return nil
		}
		values[i] = v
	}

	person := l.entries[l.cursor]
	_, err := l.svc.Leave.Set(person.ID, service.LeaveInput{
		PreviousYearBalance:  values[0],
		CurrentYearAllocated: values[1],
		CurrentYearTaken:     values[2],
	})
	if err != nil {
		l.err = err
		return nil
	}

	l.message = fmt.Sprintf("Saved leave balance for %s", person.Name)
	l.editing = false
	l.form.Blur()
	return l.loadData
}

func percent(pct int, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", pct)
}

func (l *Leave) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("LEAVE"))
	b.WriteString("\n\n")

	if l.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if l.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", l.err)))
		b.WriteString("\n\n")
		l.err = nil
	}

	if l.message != "" {
		b.WriteString(SuccessStyle.Render(l.message))
		b.WriteString("\n\n")
	}

	if l.editing {
		b.WriteString(fmt.Sprintf("Leave balance for %s:\n\n", l.entries[l.cursor].Name))
		b.WriteString(l.form.View())
		b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	if len(l.entries) == 0 {
		b.WriteString(DimStyle.Render("No team members yet."))
		b.WriteString("\n\n")
	} else {
		for i, e := range l.entries {
			line := fmt.Sprintf("%s - no balance recorded", e.Name)
			if lb := e.Balance; lb != nil {
				line = fmt.Sprintf("%s - prev %s, allocated %s, taken %s (%s), balance %s (%s)",
					e.Name,
					days(lb.PreviousYearBalance),
					days(lb.CurrentYearAllocated),
					days(lb.CurrentYearTaken),
					percent(lb.PercentTaken()),
					days(lb.CurrentYearBalance()),
					percent(lb.PercentBalance()),
				)
			}
			b.WriteString(cursorLine(i == l.cursor, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[s] Set balance  [q] Back"))
	return b.String()
}
