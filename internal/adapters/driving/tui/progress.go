package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dairyghg/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dairyghg/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dairyghg/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// Ensure ProgressModel implements the interface.
var _ tea.Model = (*ProgressModel)(nil)

// recentLimit is how many finished farms the view lists.
const recentLimit = 5

// ProgressModel is the Bubbletea model of a batch run.
type ProgressModel struct {
	total    int
	counts   domain.BatchSummary
	recent   []domain.BatchEntry
	bar      progress.Model
	help     help.Model
	keys     *keymap.KeyMap
	styles   *styles.Styles
	cancel   func()
	finished bool
	err      error
}

// NewProgressModel creates a model for a run over total farms.
// cancel is called when the user quits before the run finishes.
func NewProgressModel(total int, cancel func()) *ProgressModel {
	return &ProgressModel{
		total:  total,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:   help.New(),
		keys:   keymap.DefaultKeyMap(),
		styles: styles.DefaultStyles(),
		cancel: cancel,
	}
}

// Init implements tea.Model.
func (m *ProgressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.finished {
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-10, 10), 60)
		return m, nil

	case messages.EntryDone:
		m.record(msg.Entry)
		return m, nil

	case messages.RunFinished:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m *ProgressModel) record(e domain.BatchEntry) {
	m.counts.Processed++
	switch e.State {
	case domain.EntrySucceeded:
		m.counts.Succeeded++
		if e.Total != nil {
			m.counts.TotalCO2eqKg += *e.Total
		}
	case domain.EntryFailed:
		m.counts.Failed++
	case domain.EntrySkipped:
		m.counts.Skipped++
	}

	m.recent = append(m.recent, e)
	if len(m.recent) > recentLimit {
		m.recent = m.recent[len(m.recent)-recentLimit:]
	}
}

// Percent returns the finished share of farms in [0, 1].
func (m *ProgressModel) Percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.counts.Processed) / float64(m.total)
}

// Counts returns the running tally.
func (m *ProgressModel) Counts() domain.BatchSummary {
	return m.counts
}

// View implements tea.Model.
func (m *ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Assessing farms"))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.Percent()))
	fmt.Fprintf(&b, "  %d/%d\n\n", m.counts.Processed, m.total)

	fmt.Fprintf(&b, "%s  %s  %s\n",
		m.styles.Success.Render(fmt.Sprintf("succeeded %d", m.counts.Succeeded)),
		m.styles.Error.Render(fmt.Sprintf("failed %d", m.counts.Failed)),
		m.styles.Warning.Render(fmt.Sprintf("skipped %d", m.counts.Skipped)),
	)

	for _, e := range m.recent {
		line := fmt.Sprintf("  %-20s %s", e.FarmID, e.State)
		if e.Error != "" {
			line += "  " + e.Error
		}
		b.WriteString(m.styles.State(e.State).Render(line))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("run stopped: " + m.err.Error()))
		b.WriteString("\n")
	}
	if !m.finished {
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
		b.WriteString("\n")
	}
	return b.String()
}
