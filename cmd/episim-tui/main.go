// episim-tui runs the same experiments as episim with a live terminal
// view: one progress bar per topology while trial batches execute, then
// a summary table of outbreak statistics.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/episim/pkg/config"
	"github.com/dd0wney/episim/pkg/logging"
	"github.com/dd0wney/episim/pkg/trials"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1).
			MarginLeft(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Width(28).
			MarginLeft(2)

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2).
			MarginTop(1)
)

type progressMsg struct {
	label     string
	completed int
	total     int
}

type doneMsg struct {
	results []*trials.Result
	err     error
}

type model struct {
	name     string
	labels   []string
	fraction map[string]float64
	bar      progress.Model
	results  []*trials.Result
	err      error
	finished bool
}

func newModel(exp *config.Experiment) model {
	labels := make([]string, 0, len(exp.Networks))
	fraction := make(map[string]float64)
	for _, net := range exp.Networks {
		label := net.Config.Label()
		labels = append(labels, label)
		fraction[label] = 0
	}
	return model{
		name:     exp.Name,
		labels:   labels,
		fraction: fraction,
		bar:      progress.New(progress.WithDefaultGradient()),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if m.finished {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 36
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
	case progressMsg:
		if msg.total > 0 {
			m.fraction[msg.label] = float64(msg.completed) / float64(msg.total)
		}
	case doneMsg:
		m.results = msg.results
		m.err = msg.err
		m.finished = true
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("episim: " + m.name))
	b.WriteString("\n\n")

	for _, label := range m.labels {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(m.bar.ViewAs(m.fraction[label]))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("experiment failed: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.finished {
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(summaryTable(m.results)))
		b.WriteString("\n")
	}

	if m.finished {
		b.WriteString(helpStyle.Render("press any key to exit"))
	} else {
		b.WriteString(helpStyle.Render("q to abort"))
	}
	b.WriteString("\n")
	return b.String()
}

func summaryTable(results []*trials.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-28s %12s %12s %12s\n", "topology", "final size", "peak", "duration")
	for _, res := range results {
		fmt.Fprintf(&b, "%-28s %7.1f±%-4.0f %7.1f±%-4.0f %7.1f±%-4.0f\n",
			res.Label,
			res.FinalSizeMean, res.FinalSizeStd,
			res.PeakMean, res.PeakStd,
			res.DurationMean, res.DurationStd)
	}

	// Outbreak size modes tell the bimodality story at a glance.
	for _, res := range results {
		sizes := make([]int, 0, len(res.FinalSizes))
		for size := range res.FinalSizes {
			sizes = append(sizes, size)
		}
		sort.Ints(sizes)
		if len(sizes) > 0 {
			fmt.Fprintf(&b, "\n%-28s outbreak sizes %d..%d across %d trials",
				res.Label, sizes[0], sizes[len(sizes)-1], res.Trials)
		}
	}
	return b.String()
}

func main() {
	configPath := flag.String("config", "experiment.yaml", "path to the experiment YAML")
	flag.Parse()

	exp, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load experiment: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(exp))

	go func() {
		opts := exp.Options()
		// The TUI owns the terminal; keep engine logs out of it.
		opts.Logger = logging.NopLogger{}
		results, err := trials.RunComparison(exp.Networks, exp.Epidemic, opts,
			func(label string, completed, total int) {
				p.Send(progressMsg{label: label, completed: completed, total: total})
			})
		p.Send(doneMsg{results: results, err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}
