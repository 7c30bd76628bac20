package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/copter"
	"github.com/vovakirdan/tui-copter/internal/core"
)

const (
	// DefaultHold is how long one thrust key event keeps thrust on.
	// Terminals report key repeats but never key releases, so a held key
	// looks like a stream of presses that must bridge the repeat interval.
	DefaultHold = 200 * time.Millisecond

	// restartGrace ignores taps right after a crash so a key still held
	// from the run does not skip the game over screen.
	restartGrace = 600 * time.Millisecond

	noticeTTL = 2 * time.Second
)

// HistoryRecorder stores finished runs.
type HistoryRecorder interface {
	SaveScore(mode string, score int, distance float64) (int64, error)
}

// Options configures the host around a simulator.
type Options struct {
	Runtime       core.RuntimeConfig
	Mode          string                  // preset name shown in the HUD and stored with runs
	Preset        config.DifficultyPreset // reapplied to hot-reloaded configs
	Recorder      HistoryRecorder         // optional run history
	Watcher       *config.Watcher         // optional config hot reload
	Logger        *log.Logger
	Hold          time.Duration
	ScreenshotDir string
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	sim    *copter.Simulator
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	opts   Options
	logger *log.Logger

	holdUntil time.Time // keyboard thrust expires at this host time
	mouseHeld bool
	crashedAt time.Time
	lastNow   time.Time

	notice      string
	noticeUntil time.Time
	quitting    bool
}

// NewModel wraps sim in a Bubble Tea model.
func NewModel(sim *copter.Simulator, opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultRuntimeConfig().TickRate
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(config.UserDir(), "screenshots")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		sim:    sim,
		screen: core.NewScreen(opts.Runtime.ScreenW, core.Max(opts.Runtime.ScreenH-1, 1)),
		keys:   DefaultKeyMap(),
		help:   h,
		opts:   opts,
		logger: logger,
	}
}

// Init starts the frame loop and, if configured, the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Runtime.TickRate), waitForConfig(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case configReloadedMsg:
		return m.handleReload(msg.cfg)

	case configErrorMsg:
		m.logger.Warn("config reload rejected", "error", msg.err)
		m.setNotice("config error, keeping current")
		return m, waitForConfig(m.opts.Watcher)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionThrust:
		if m.tap() {
			m.sim.Press()
			m.holdUntil = m.now().Add(m.opts.Hold)
		}
	case core.ActionConfirm:
		m.tap()
	case core.ActionRestart:
		if m.sim.State().Status == copter.StatusGameOver {
			m.tap()
		}
	case core.ActionPause:
		if m.sim.TogglePause() {
			m.sim.Release()
			m.holdUntil = time.Time{}
			m.mouseHeld = false
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch mouseAction(msg) {
	case core.ActionThrust:
		if m.tap() {
			m.sim.Press()
			m.mouseHeld = true
		}
	case core.ActionRelease:
		m.mouseHeld = false
		if !m.now().Before(m.holdUntil) {
			m.sim.Release()
		}
	}
	return m, nil
}

// tap advances the state machine on a start/continue input. It reports
// whether the input should also count as thrust, which is only while a run
// is in progress and not paused.
func (m *Model) tap() bool {
	switch m.sim.State().Status {
	case copter.StatusStart:
		if err := m.sim.Start(); err != nil {
			m.logger.Error("start failed", "error", err)
		}
		return false
	case copter.StatusGameOver:
		if m.now().Sub(m.crashedAt) < restartGrace {
			return false
		}
		if err := m.sim.Restart(); err != nil {
			m.logger.Error("restart failed", "error", err)
		}
		return false
	default:
		return !m.sim.Paused()
	}
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.lastNow = now
	if !m.mouseHeld && !now.Before(m.holdUntil) {
		m.sim.Release()
	}

	res := m.sim.Frame(now)
	if res.Crashed {
		m.crashedAt = now
		m.mouseHeld = false
		m.holdUntil = time.Time{}
		m.recordRun(res.Score)
	}
	if m.notice != "" && now.After(m.noticeUntil) {
		m.notice = ""
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// recordRun appends a finished run to the history, once per crash.
func (m *Model) recordRun(score int) {
	if m.opts.Recorder == nil || score <= 0 {
		return
	}
	distance := m.sim.Snapshot().Distance
	if _, err := m.opts.Recorder.SaveScore(m.opts.Mode, score, distance); err != nil {
		m.logger.Warn("could not record run", "error", err)
	}
}

func (m Model) handleReload(cfg config.Config) (tea.Model, tea.Cmd) {
	config.ApplyPreset(&cfg, m.opts.Preset)
	if err := m.sim.SetConfig(cfg); err != nil {
		m.logger.Warn("reloaded config rejected", "error", err)
		m.setNotice("config error, keeping current")
	} else {
		m.logger.Info("config reloaded")
		m.setNotice("config reloaded, applies next run")
	}
	return m, waitForConfig(m.opts.Watcher)
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = m.now().Add(noticeTTL)
}

// now is the host time of the latest frame, falling back to the wall clock
// before the first tick.
func (m *Model) now() time.Time {
	if m.lastNow.IsZero() {
		return time.Now()
	}
	return m.lastNow
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.draw()

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("copter_%s.txt", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setNotice("screenshot saved")
}

func (m Model) draw() {
	Draw(m.screen, m.sim.Snapshot(), Labels{Mode: m.opts.Mode, Notice: m.notice})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()

	snap := m.sim.Snapshot()
	keys := m.keys.forStatus(snap.Status, snap.Paused)
	return RenderScreen(m.screen) + "\n" + m.help.View(keys)
}

type configReloadedMsg struct{ cfg config.Config }

type configErrorMsg struct{ err error }

// waitForConfig delivers the watcher's next result as a message.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return configReloadedMsg{cfg: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}

// Run starts the Bubble Tea program around sim.
func Run(sim *copter.Simulator, opts Options) error {
	p := tea.NewProgram(
		NewModel(sim, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
