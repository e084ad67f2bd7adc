package screens

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/staffboard/internal/config"
	"github.com/emilianohg/staffboard/internal/export"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/service"
	"github.com/emilianohg/staffboard/internal/workload"
)

type Dashboard struct {
	svc    *service.Services
	cfg    *config.Config
	width  int
	height int

	rows     []workload.Row
	stats    *repository.AssignmentStats
	repaired int
	loading  bool
	err      error
	message  string
}

func NewDashboard(svc *service.Services, cfg *config.Config) *Dashboard {
	return &Dashboard{
		svc:     svc,
		cfg:     cfg,
		loading: true,
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

type dashboardDataMsg struct {
	rows     []workload.Row
	stats    *repository.AssignmentStats
	repaired int
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	return d.loadData
}

// loadData repairs any cached-hours drift before reading the summary.
func (d *Dashboard) loadData() tea.Msg {
	result, err := d.svc.Workload.Reconcile()
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	rows, err := d.svc.Workload.Summary(d.cfg.UnderutilizedThreshold)
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	stats, err := d.svc.Assignments.Stats(repository.AssignmentFilter{}, time.Now())
	if err != nil {
		return dashboardDataMsg{err: err}
	}

	return dashboardDataMsg{rows: rows, stats: stats, repaired: len(result.Drifts)}
}

func (d *Dashboard) exportWorkload() tea.Msg {
	buf, err := export.WorkloadWorkbook(d.rows)
	if err != nil {
		return exportDoneMsg{err: err}
	}

	if err := os.MkdirAll(d.cfg.ExportsOutput, 0755); err != nil {
		return exportDoneMsg{err: err}
	}
	path := filepath.Join(d.cfg.ExportsOutput, fmt.Sprintf("workload-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return exportDoneMsg{err: err}
	}
	return exportDoneMsg{path: path}
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.err = msg.err
		d.rows = msg.rows
		d.stats = msg.stats
		d.repaired = msg.repaired
		return nil

	case exportDoneMsg:
		d.err = msg.err
		if msg.err == nil {
			d.message = fmt.Sprintf("Workload exported to %s", msg.path)
		}
		return nil

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			return Navigate("team")
		case "p":
			return Navigate("projects")
		case "l":
			return Navigate("leave")
		case "x":
			if len(d.rows) > 0 {
				return d.exportWorkload
			}
		case "r":
			d.message = ""
			return d.Init()
		}
	}

	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("STAFFBOARD"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Team Workload"))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", d.err)))
		b.WriteString("\n\n")
	}

	if d.message != "" {
		b.WriteString(SuccessStyle.Render(d.message))
		b.WriteString("\n\n")
	}

	if d.stats != nil {
		statsContent := fmt.Sprintf(
			"Projects: %d\nTotal hours: %d\nResources: %d\nCompleted (last 7 days): %d",
			d.stats.TotalProjects,
			d.stats.TotalHours,
			d.stats.UniqueResources,
			d.stats.CompletedLast7Days,
		)
		b.WriteString(BoxStyle.Render(statsContent))
		b.WriteString("\n\n")
	}

	if d.repaired > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Recomputed assigned hours for %d team member(s).", d.repaired)))
		b.WriteString("\n\n")
	}

	if len(d.rows) > 0 {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Workload (under %dh flagged)", d.cfg.UnderutilizedThreshold)))
		b.WriteString("\n")
		for _, r := range d.rows {
			line := fmt.Sprintf("  %-24s %-20s %5dh", r.Name, r.Role, r.AssignedHours)
			if r.Underutilized {
				b.WriteString(WarningStyle.Render(line + "  underutilized"))
			} else {
				b.WriteString(NormalStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString(DimStyle.Render(fmt.Sprintf("  Total: %dh", workload.TotalHours(d.rows))))
		b.WriteString("\n")
	} else {
		b.WriteString(DimStyle.Render("No team members yet. Press 't' to add one."))
		b.WriteString("\n")
	}

	help := "[t] Team  [p] Projects  [l] Leave  [x] Export workload  [r] Refresh  [q] Quit"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
