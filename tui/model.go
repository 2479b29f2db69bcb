// Package tui runs the animation in a terminal.
//
// The bubbletea program is the single thread the engine needs: a tea.Tick
// message advances a scheduler.Manual, which fires the engine's frame and
// resize timers inside Update. Mouse motion drives parallax, clicks fire
// bursts, focus loss counts as the pointer leaving.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/config"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/engine"
	"github.com/katalvlaran/consentflow/metrics"
	"github.com/katalvlaran/consentflow/scheduler"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C4EFE8")).
			Background(lipgloss.Color("#101D55")).
			Padding(0, 1)

	policyStyles = map[core.Policy]lipgloss.Style{
		core.PolicyGranted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#18B6A4")),
		core.PolicyMixed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		core.PolicyDenied:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E2725B")),
	}

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9DE4DB")).Italic(true)
)

// Default terminal size before the first WindowSizeMsg.
const (
	defaultCols = 80
	defaultRows = 24
)

type tickMsg time.Time

// ReloadMsg carries a configuration reload into the program.
type ReloadMsg struct {
	Config config.Config
	Err    error
}

// Model is the bubbletea model hosting one engine.Instance.
type Model struct {
	inst    *engine.Instance
	host    *engine.BasicHost
	sched   *scheduler.Manual
	painter *CellPainter
	logger  *zap.Logger

	interval time.Duration
	last     time.Time
	cols     int
	rows     int

	keys     keyMap
	help     help.Model
	showHelp bool
	notice   string
}

// New builds and starts the instance described by cfg.
func New(cfg config.Config, logger *zap.Logger, reg *metrics.Registry) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		sched:    scheduler.NewManual(),
		painter:  NewCellPainter(),
		logger:   logger,
		interval: scheduler.FrameInterval(cfg.FPS),
		cols:     defaultCols,
		rows:     defaultRows,
		keys:     defaultKeys(),
		help:     help.New(),
	}
	w, h := m.surface()
	m.host = engine.NewBasicHost(engine.Bounds{Width: w, Height: h}, m.painter, m.sched)

	opts := append(cfg.EngineOptions(logger), engine.WithMetrics(reg))
	inst, err := engine.New(m.host, opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	if err := inst.Start(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	m.inst = inst

	return m, nil
}

// NewProgram wraps m in a full-screen program with mouse and focus
// reporting, cancelled with ctx.
func NewProgram(ctx context.Context, m *Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
}

// Instance exposes the hosted engine.
func (m *Model) Instance() *engine.Instance { return m.inst }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.sched.Step(dt)
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.help.Width = msg.Width
		w, h := m.surface()
		m.host.Resize(w, h)

	case tea.MouseMsg:
		x := (float64(msg.X) + 0.5) * CellWidth
		y := (float64(msg.Y) + 0.5) * CellHeight
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerDown, X: x, Y: y})
		case msg.Action == tea.MouseActionMotion:
			m.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerMove, X: x, Y: y})
		}

	case tea.BlurMsg:
		m.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerLeave})

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case ReloadMsg:
		m.applyReload(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.inst.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Granted):
		m.inst.SetPolicy(core.PolicyGranted)
	case key.Matches(msg, m.keys.Mixed):
		m.inst.SetPolicy(core.PolicyMixed)
	case key.Matches(msg, m.keys.Denied):
		m.inst.SetPolicy(core.PolicyDenied)
	case key.Matches(msg, m.keys.Cycle):
		m.inst.SetPolicy(nextPolicy(m.inst.Policy()))
	case key.Matches(msg, m.keys.Denser):
		m.inst.SetDensity(m.inst.Snapshot().Density.Denser())
	case key.Matches(msg, m.keys.Sparser):
		m.inst.SetDensity(m.inst.Snapshot().Density.Sparser())
	case key.Matches(msg, m.keys.Reseed):
		m.inst.SetSeed(m.inst.Snapshot().Seed + 1)
	case key.Matches(msg, m.keys.Motion):
		m.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventReducedMotion, Enabled: !m.inst.Snapshot().Static})
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		w, h := m.surface()
		m.host.Resize(w, h)
	}
	m.notice = ""

	return nil
}

// nextPolicy cycles granted → mixed → denied → granted.
func nextPolicy(p core.Policy) core.Policy {
	for i, q := range core.Policies {
		if q == p {
			return core.Policies[(i+1)%len(core.Policies)]
		}
	}
	return core.DefaultPolicy
}

func (m *Model) applyReload(msg ReloadMsg) {
	if msg.Err != nil {
		m.notice = "config reload failed: " + msg.Err.Error()
		return
	}
	cfg := msg.Config
	m.inst.SetPolicy(cfg.Policy())
	m.inst.SetDensity(cfg.DensityTier())
	m.inst.SetSeed(cfg.Seed)
	if cfg.ReducedMotion != m.inst.Snapshot().Static {
		m.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventReducedMotion, Enabled: cfg.ReducedMotion})
	}
	m.notice = "config reloaded"
}

// chromeRows is the number of terminal rows used by status and help.
func (m *Model) chromeRows() int {
	if m.showHelp {
		return 1 + len(m.keys.FullHelp()[0])
	}
	return 2
}

// surface converts the terminal size into canvas pixels.
func (m *Model) surface() (float64, float64) {
	rows := m.rows - m.chromeRows()
	if rows < 0 {
		rows = 0
	}
	return float64(m.cols) * CellWidth, float64(rows) * CellHeight
}

// View implements tea.Model.
func (m *Model) View() string {
	s := m.inst.Snapshot()
	var sb strings.Builder
	if cols, _ := m.painter.Size(); cols > 0 {
		sb.WriteString(m.painter.Render())
		sb.WriteByte('\n')
	}

	mode := "animated"
	switch {
	case s.Fallback:
		mode = "fallback"
	case s.Static:
		mode = "static"
	}
	line := fmt.Sprintf("consent %s │ %s │ %s │ signals %d/%d │ routes %d (%d blocked) │ seed %d",
		policyStyles[s.Policy].Render(s.Policy.String()), s.Density, mode,
		s.Signals, s.MaxSignals, s.Routes, s.BlockedRoutes, s.Seed)
	sb.WriteString(statusStyle.Render(line))
	if m.notice != "" {
		sb.WriteString(" " + noticeStyle.Render(m.notice))
	}
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}
