package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/copter"
	"github.com/vovakirdan/tui-copter/internal/core"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

type harness struct {
	t       *testing.T
	m       Model
	sim     *copter.Simulator
	history *storage.Memory
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scoring.DistanceUnit = 10

	sim, err := copter.New(cfg, copter.WithSeed(1))
	if err != nil {
		t.Fatalf("copter.New() failed: %v", err)
	}
	history := storage.NewMemory()
	m := NewModel(sim, Options{
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
		Mode:          "normal",
		Recorder:      history,
		ScreenshotDir: t.TempDir(),
	})
	return &harness{t: t, m: m, sim: sim, history: history, now: time.Unix(1_000_000, 0)}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// tick advances host time by d and delivers one frame.
func (h *harness) tick(d time.Duration) {
	h.now = h.now.Add(d)
	h.send(TickMsg(h.now))
}

func (h *harness) space() {
	h.send(tea.KeyMsg{Type: tea.KeySpace})
}

func (h *harness) status() copter.Status {
	return h.sim.State().Status
}

// crash lets the body fall until the run ends.
func (h *harness) crash() {
	h.t.Helper()
	for i := 0; i < 2000 && h.status() == copter.StatusPlaying; i++ {
		h.tick(16 * time.Millisecond)
	}
	if h.status() != copter.StatusGameOver {
		h.t.Fatal("run never ended")
	}
}

func TestTapStartsThenThrusts(t *testing.T) {
	h := newHarness(t)
	h.tick(0)

	h.space()
	if h.status() != copter.StatusPlaying {
		t.Fatalf("status = %v, expected PLAYING", h.status())
	}
	if h.sim.Thrusting() {
		t.Error("the starting tap must not also thrust")
	}

	h.space()
	if !h.sim.Thrusting() {
		t.Error("space while playing should thrust")
	}
}

func TestEnterStarts(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.status() != copter.StatusPlaying {
		t.Errorf("status = %v, expected PLAYING", h.status())
	}
}

func TestKeyHoldWindow(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.space()
	h.tick(16 * time.Millisecond)

	h.space()
	h.tick(DefaultHold / 2)
	if !h.sim.Thrusting() {
		t.Fatal("thrust should last for the hold window")
	}

	// A key repeat inside the window extends it.
	h.space()
	h.tick(DefaultHold * 3 / 4)
	if !h.sim.Thrusting() {
		t.Fatal("key repeat should extend thrust")
	}

	h.tick(DefaultHold)
	if h.sim.Thrusting() {
		t.Error("thrust should drop once key events stop")
	}
}

func TestMouseHoldsUntilRelease(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	h.send(press)
	if h.status() != copter.StatusPlaying {
		t.Fatalf("mouse tap should start, status %v", h.status())
	}
	h.send(release)

	h.send(press)
	for i := 0; i < 30; i++ {
		h.tick(16 * time.Millisecond)
	}
	if !h.sim.Thrusting() {
		t.Fatal("held mouse button should keep thrust on")
	}

	h.send(release)
	if h.sim.Thrusting() {
		t.Error("mouse release should drop thrust")
	}
}

func TestCrashRecordsRunOnce(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.space()
	h.crash()

	for i := 0; i < 10; i++ {
		h.tick(16 * time.Millisecond)
	}

	runs, _ := h.history.TopScores("", 10)
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	last := h.sim.State().LastScore
	if runs[0].Score != last || runs[0].Mode != "normal" || runs[0].Distance <= 0 {
		t.Errorf("recorded %+v, expected score %d in normal", runs[0], last)
	}
}

func TestRestartGrace(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.space()
	h.crash()

	h.space()
	if h.status() != copter.StatusGameOver {
		t.Fatal("a tap right after the crash should be ignored")
	}

	h.tick(restartGrace)
	h.space()
	if h.status() != copter.StatusStart {
		t.Fatalf("status = %v, expected START", h.status())
	}
	h.space()
	if h.status() != copter.StatusPlaying || h.sim.State().Score != 0 {
		t.Errorf("second run: %+v", h.sim.State())
	}
}

func TestRestartKeyOnlyAfterCrash(t *testing.T) {
	h := newHarness(t)
	h.send(runeKey('r'))
	if h.status() != copter.StatusStart {
		t.Error("r should do nothing on the title screen")
	}
}

func TestPauseKey(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.space()
	h.space()

	h.send(runeKey('p'))
	if !h.sim.Paused() {
		t.Fatal("p should pause")
	}
	if h.sim.Thrusting() {
		t.Error("pausing should drop thrust")
	}
	if !strings.Contains(h.m.View(), "PAUSED") {
		t.Error("view should show the pause box")
	}

	h.space()
	if h.sim.Thrusting() {
		t.Error("thrust should be ignored while paused")
	}

	h.send(runeKey('p'))
	if h.sim.Paused() {
		t.Error("p should resume")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if h.m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestScreenshot(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(h.m.opts.ScreenshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 screenshot, found %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(h.m.opts.ScreenshotDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "SCORE") {
		t.Error("screenshot should contain the HUD")
	}
	if h.m.notice != "screenshot saved" {
		t.Errorf("notice = %q", h.m.notice)
	}
}

func TestWindowResize(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	if h.m.screen.Width() != 120 || h.m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", h.m.screen.Width(), h.m.screen.Height())
	}
}

func TestConfigReloadIsStaged(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.space()

	next := config.DefaultConfig()
	next.Physics.Gravity = 2000
	h.send(configReloadedMsg{cfg: next})

	if h.sim.Config().Physics.Gravity != config.DefaultConfig().Physics.Gravity {
		t.Error("reload must not change the running game")
	}
	if !strings.Contains(h.m.notice, "reloaded") {
		t.Errorf("notice = %q", h.m.notice)
	}

	h.crash()
	h.tick(restartGrace)
	h.space()
	h.space()
	if h.sim.Config().Physics.Gravity != 2000 {
		t.Errorf("reloaded config not applied on the next run, gravity %v", h.sim.Config().Physics.Gravity)
	}
}

func TestConfigReloadRejected(t *testing.T) {
	h := newHarness(t)
	bad := config.DefaultConfig()
	bad.Obstacles.GapMin = bad.Obstacles.GapMax + 1
	h.send(configReloadedMsg{cfg: bad})

	if !strings.Contains(h.m.notice, "config error") {
		t.Errorf("notice = %q", h.m.notice)
	}

	h.send(configErrorMsg{err: os.ErrNotExist})
	if !strings.Contains(h.m.notice, "config error") {
		t.Errorf("notice = %q", h.m.notice)
	}
}

func TestNoticeExpires(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.m.setNotice("hello")

	h.tick(noticeTTL + time.Millisecond)
	if h.m.notice != "" {
		t.Errorf("notice should expire, still %q", h.m.notice)
	}
}

func TestViewHasHelp(t *testing.T) {
	h := newHarness(t)
	view := h.m.View()
	if !strings.Contains(view, "start") || !strings.Contains(view, "quit") {
		t.Errorf("help footer missing from view:\n%s", view)
	}
}
