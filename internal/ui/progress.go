// Package ui renders analysis progress in the terminal.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"semcore/internal/driver"
)

type fileRow struct {
	path   string
	stage  driver.Stage
	status driver.Status
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	index   map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event

type doneMsg struct{}

// NewProgressModel shows one row per file, updated from events until the
// channel closes.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows = append(m.rows, fileRow{path: f, status: driver.StatusQueued})
		m.index[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd { return tea.Batch(m.spinner.Tick, m.next()) }

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(10, msg.Width-4)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	if ev.Stage != 0 {
		m.rows[i].stage = ev.Stage
	}
	m.rows[i].status = ev.Status
	return m.bar.SetPercent(m.fraction())
}

// fraction weights unfinished files by how far their stage got.
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	var sum float64
	for _, r := range m.rows {
		switch {
		case finished(r.status):
			sum++
		case r.stage == driver.StageBind:
			sum += 0.5
		case r.stage == driver.StageParse:
			sum += 0.2
		}
	}
	return sum / float64(len(m.rows))
}

func finished(s driver.Status) bool {
	return s == driver.StatusDone || s == driver.StatusCached || s == driver.StatusError
}

func (m *progressModel) View() string {
	var b strings.Builder
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(20, m.width-16)
	for _, r := range m.rows {
		label := statusLabel(r)
		fmt.Fprintf(&b, "  %s %s\n", statusStyle(r.status).Render(fmt.Sprintf("%10s", label)), truncate(r.path, nameWidth))
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func statusLabel(r fileRow) string {
	switch r.status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusWorking:
		return r.stage.String()
	case driver.StatusDone:
		return "done"
	case driver.StatusCached:
		return "cached"
	case driver.StatusError:
		return "errors"
	}
	return ""
}

func statusStyle(s driver.Status) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch s {
	case driver.StatusDone:
		return st.Foreground(lipgloss.Color("2"))
	case driver.StatusCached:
		return st.Foreground(lipgloss.Color("4"))
	case driver.StatusError:
		return st.Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return st.Foreground(lipgloss.Color("6"))
	}
	return st.Foreground(lipgloss.Color("7"))
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Run shows progress while work runs. work receives an observer that
// feeds the view; Run returns once both work and the view have finished.
func Run(ctx context.Context, out io.Writer, title string, files []string, work func(context.Context, driver.Observer) error) error {
	events := make(chan driver.Event, 256)
	errc := make(chan error, 1)
	go func() {
		err := work(ctx, func(ev driver.Event) { events <- ev })
		close(events)
		errc <- err
	}()
	_, uiErr := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithContext(ctx)).Run()
	// The view may quit early; keep work from blocking on it.
	go func() {
		for range events {
		}
	}()
	err := <-errc
	if err == nil {
		err = uiErr
	}
	return err
}
