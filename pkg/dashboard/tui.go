package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/render"
	"github.com/dkoosis/trendline/pkg/series"
)

// ErrNoData is returned when the index mode has no history to show.
var ErrNoData = errors.New("dashboard: index history is empty")

// Mode selects the dataset the dashboard shows.
type Mode string

const (
	ModeSample Mode = "sample"
	ModeIndex  Mode = "index"
)

// Options configures a dashboard session.
type Options struct {
	Mode Mode
	// Index is the full history shown in ModeIndex.
	Index          series.TimeSeries
	Period         series.Period
	MovingAverages []analysis.MovingAverage
	// Style overrides the sample chart's cosmetics.
	Style  chart.Style
	Theme  *DashboardTheme
	Render render.Theme
	// Input and Output default to the process terminal when nil.
	Input  io.Reader
	Output io.Writer
}

// Run launches the interactive dashboard and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	teaOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		teaOpts = append(teaOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		teaOpts = append(teaOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(m, teaOpts...)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// frameMsg advances the reveal animation. gen drops ticks from an
// animation that has since been restarted.
type frameMsg struct {
	gen int
	at  time.Time
}

type model struct {
	opts   Options
	theme  *CompiledTheme
	rtheme render.Theme
	term   *render.Terminal
	keys   keyMap
	help   help.Model
	now    func() time.Time

	period  series.Period
	enabled map[analysis.MovingAverage]bool
	spec    *chart.Spec
	summary *pattern.Summary
	err     error

	gen       int
	started   time.Time
	progress  float64
	animating bool

	cursor     int
	showCursor bool
	width      int
	height     int
}

func newModel(opts Options) (model, error) {
	if opts.Mode == "" {
		opts.Mode = ModeSample
	}
	if opts.Mode != ModeSample && opts.Mode != ModeIndex {
		return model{}, fmt.Errorf("dashboard: unknown mode %q", opts.Mode)
	}
	if opts.Mode == ModeIndex && opts.Index.Len() == 0 {
		return model{}, ErrNoData
	}
	if opts.Period == "" {
		opts.Period = series.DefaultPeriod
	}
	rtheme := opts.Render
	if rtheme.Name == "" {
		rtheme = render.DefaultTheme()
	}
	theme := MergeWithDefaults(opts.Theme).Compile()

	m := model{
		opts:    opts,
		theme:   theme,
		rtheme:  rtheme,
		term:    render.NewTerminal(rtheme, 80),
		keys:    newKeyMap().withAnalytics(opts.Mode == ModeIndex),
		help:    help.New(),
		now:     time.Now,
		period:  opts.Period,
		enabled: make(map[analysis.MovingAverage]bool),
	}
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.MutedColor())
	m.help.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.MutedColor())
	for _, ma := range opts.MovingAverages {
		m.enabled[ma] = true
	}
	m.rebuild()
	m.started = m.now()
	m.animating = true
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second/time.Duration(m.theme.FPS), func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// replay restarts the reveal animation from the beginning.
func (m *model) replay() tea.Cmd {
	m.gen++
	m.started = m.now()
	m.progress = 0
	m.animating = true
	return m.tick()
}

// rebuild recomputes the chart and metrics for the current selection.
func (m *model) rebuild() {
	m.err = nil
	var patterns []pattern.Pattern
	switch m.opts.Mode {
	case ModeIndex:
		var mas []analysis.MovingAverage
		for _, ma := range analysis.MovingAverages() {
			if m.enabled[ma] {
				mas = append(mas, ma)
			}
		}
		var err error
		patterns, err = pattern.FromIndex(m.opts.Index, m.period, mas)
		if err != nil {
			m.err = err
			return
		}
	default:
		patterns = pattern.FromSample()
	}

	m.summary = nil
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.LineChart:
			m.spec = v.Chart
		case *pattern.Summary:
			if m.summary == nil {
				m.summary = v
			}
		}
	}
	if m.opts.Mode == ModeSample {
		m.opts.Style.Apply(m.spec)
	}
	m.cursor = max(0, min(m.points()-1, m.cursor))
}

func (m model) points() int {
	if m.spec == nil {
		return 0
	}
	return len(m.spec.Categories)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.term = render.NewTerminal(m.rtheme, max(20, m.width-4))
		m.help.Width = m.width
		return m, nil
	case frameMsg:
		if msg.gen != m.gen || !m.animating || m.spec == nil {
			return m, nil
		}
		p, done := m.spec.Animation.Progress(msg.at.Sub(m.started))
		m.progress = p
		if done {
			m.animating = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		if m.showCursor {
			m.cursor = max(0, m.cursor-1)
		}
		m.showCursor = true
	case key.Matches(msg, m.keys.Right):
		if m.showCursor {
			m.cursor = max(0, min(m.points()-1, m.cursor+1))
		}
		m.showCursor = true
	case key.Matches(msg, m.keys.Hide):
		m.showCursor = false
	case key.Matches(msg, m.keys.Period):
		m.period = m.period.Next()
		m.rebuild()
		return m, m.replay()
	case key.Matches(msg, m.keys.MA4):
		m.enabled[analysis.MA4Month] = !m.enabled[analysis.MA4Month]
		m.rebuild()
		return m, m.replay()
	case key.Matches(msg, m.keys.MA1Y):
		m.enabled[analysis.MA1Year] = !m.enabled[analysis.MA1Year]
		m.rebuild()
		return m, m.replay()
	case key.Matches(msg, m.keys.Replay):
		return m, m.replay()
	}
	return m, nil
}

// chrome is the number of rows the view spends outside the plot area.
const chrome = 18

func (m model) View() string {
	if m.width == 0 {
		return "Loading dashboard..."
	}

	titleText := strings.TrimSpace(m.theme.TitleIcon + " " + m.theme.TitleText)
	if m.opts.Mode == ModeIndex {
		titleText += " · " + m.period.Display()
	} else {
		titleText += " · Sample"
	}
	parts := []string{m.theme.TitleStyle.Width(m.width).Render(titleText)}

	if m.opts.Mode == ModeIndex {
		parts = append(parts, m.selectorsView())
	}

	if m.spec != nil {
		rows := m.height - chrome
		if m.showCursor {
			rows -= len(m.spec.Lines) + 3
		}
		body := m.term.RenderChart(m.spec, render.FrameOptions{
			Height:     max(6, rows),
			Progress:   m.progress,
			Cursor:     m.cursor,
			ShowCursor: m.showCursor,
		})
		parts = append(parts, m.theme.ChartBoxStyle.Render(strings.TrimRight(body, "\n")))
	}

	if cards := m.cardsView(); cards != "" {
		parts = append(parts, cards)
	}
	if m.err != nil {
		parts = append(parts, m.theme.ErrorStyle.Render("error: "+m.err.Error()))
	}
	parts = append(parts, m.theme.StatusBarStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) selectorsView() string {
	var items []string
	for _, p := range series.Periods() {
		if p == m.period {
			items = append(items, m.theme.SelectorStyle.Render("["+p.Display()+"]"))
		} else {
			items = append(items, m.theme.SelectorOffStyle.Render(" "+p.Display()+" "))
		}
	}
	items = append(items, " ")
	for _, ma := range analysis.MovingAverages() {
		if m.enabled[ma] {
			items = append(items, m.theme.SelectorStyle.Render(m.theme.Icons.Toggle+" "+ma.Display()))
		} else {
			items = append(items, m.theme.SelectorOffStyle.Render("○ "+ma.Display()))
		}
	}
	return strings.Join(items, " ")
}

func (m model) cardsView() string {
	if m.summary == nil {
		return ""
	}
	cards := make([]string, 0, len(m.summary.Metrics))
	for _, item := range m.summary.Metrics {
		value := m.theme.CardValueStyle.Render(item.Value)
		if item.Delta != "" {
			icon, style := m.trend(item.Tone)
			value += " " + style.Render(icon+" "+item.Delta)
		}
		cards = append(cards, m.theme.CardStyle.Render(m.theme.CardLabelStyle.Render(item.Label)+"\n"+value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m model) trend(tone pattern.Tone) (string, lipgloss.Style) {
	switch tone {
	case pattern.ToneUp:
		return m.theme.Icons.Up, m.theme.UpStyle
	case pattern.ToneDown:
		return m.theme.Icons.Down, m.theme.DownStyle
	default:
		return m.theme.Icons.Flat, m.theme.FlatStyle
	}
}
