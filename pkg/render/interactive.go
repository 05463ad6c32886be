package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	drawille "github.com/chriskim06/drawille-go"

	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/series"
)

var (
	styleFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	styleHelp = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Quit   key.Binding
	Totals key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Totals: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle totals"),
	),
}

// InteractiveRenderer shows the chart full-screen until the user quits.
type InteractiveRenderer struct {
	Out io.Writer
	In  io.Reader
}

// Render runs the view and blocks until it exits or ctx is cancelled.
func (r *InteractiveRenderer) Render(ctx context.Context, s *series.Series, cfg plot.Configuration) error {
	m := newViewModel(prepare(s, cfg), cfg)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if r.Out != nil {
		opts = append(opts, tea.WithOutput(r.Out))
	}
	if r.In != nil {
		opts = append(opts, tea.WithInput(r.In))
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("interactive view: %w", err)
	}
	return nil
}

type viewModel struct {
	data       chartData
	cfg        plot.Configuration
	width      int
	height     int
	showTotals bool
	quitting   bool
}

func newViewModel(d chartData, cfg plot.Configuration) viewModel {
	return viewModel{
		data:       d,
		cfg:        cfg,
		width:      DefaultTextWidth,
		height:     DefaultTextHeight,
		showTotals: cfg.ShowTotals,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Totals):
			// Only a configured secondary axis can be shown.
			if m.cfg.HasSecondaryAxis() {
				m.showTotals = !m.showTotals
			}
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	if m.quitting {
		return ""
	}

	// Border takes two columns and two rows; help takes one row.
	inner := textChart(m.data, m.cfg, textLayout{
		width:      m.width - 2,
		height:     m.height - 3,
		showTotals: m.showTotals,
		colors:     []drawille.Color{drawille.Red},
	})

	help := []string{fmt.Sprintf("%s %s", keys.Quit.Help().Key, keys.Quit.Help().Desc)}
	if m.cfg.HasSecondaryAxis() {
		help = append(help, fmt.Sprintf("%s %s", keys.Totals.Help().Key, keys.Totals.Help().Desc))
	}

	return styleFrame.Render(strings.TrimRight(inner, "\n")) + "\n" + styleHelp.Render(strings.Join(help, " • "))
}
