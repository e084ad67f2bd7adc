package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NavigateMsg is sent when navigation to another screen is requested
type NavigateMsg struct {
	Screen   string
	PersonID *int64
}

func Navigate(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}

func NavigateWithPerson(screen string, personID int64) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen, PersonID: &personID}
	}
}

// RefreshMsg is sent when data should be refreshed
type RefreshMsg struct{}

func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// Form is a vertical stack of labelled text inputs. Tab and the arrow keys
// move between fields.
type Form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func NewForm(labels ...string) *Form {
	f := &Form{labels: labels}
	for _, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 200
		ti.Width = 40
		f.inputs = append(f.inputs, ti)
	}
	return f
}

// Reset fills the fields with values (missing ones are cleared) and focuses
// the first field.
func (f *Form) Reset(values ...string) tea.Cmd {
	for i := range f.inputs {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		f.inputs[i].SetValue(v)
		f.inputs[i].Blur()
	}
	f.focus = 0
	return f.inputs[0].Focus()
}

func (f *Form) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *Form) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *Form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.move(1)
		case "shift+tab", "up":
			return f.move(-1)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) View() string {
	var b strings.Builder
	for i, label := range f.labels {
		style := DimStyle
		if i == f.focus {
			style = SelectedStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

func cursorLine(selected bool, line string) string {
	if selected {
		return SelectedStyle.Render("> " + line)
	}
	return NormalStyle.Render("  " + line)
}

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)
