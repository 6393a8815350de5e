package overlay

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/snowfetti/internal/config"
	"github.com/san-kum/snowfetti/internal/render"
	"github.com/san-kum/snowfetti/internal/viz"
)

type recordingHost struct {
	msgs []tea.Msg
	view string
}

func (h *recordingHost) Init() tea.Cmd { return nil }
func (h *recordingHost) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	h.msgs = append(h.msgs, msg)
	return h, nil
}
func (h *recordingHost) View() string { return h.view }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Amount = 50
	cfg.Seed = 1
	return cfg
}

func TestDecorateMountsLoop(t *testing.T) {
	m, err := Decorate(&recordingHost{}, testConfig(), WithViewport(40, 10))
	if err != nil {
		t.Fatalf("decorate failed: %v", err)
	}
	if !m.Loop().Running() {
		t.Fatal("expected mounted loop")
	}
	if m.Loop().Particles().Len() != 50 {
		t.Errorf("expected 50 particles, got %d", m.Loop().Particles().Len())
	}
	w, h := m.Loop().Size()
	if w != 80 || h != 40 {
		t.Errorf("expected 80x40 pixel surface, got %dx%d", w, h)
	}
	if m.Init() == nil {
		t.Error("expected an init command")
	}
}

func TestDecorateRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Profile = []string{"rain"}
	if _, err := Decorate(&recordingHost{}, cfg); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestFrameMsgDrawsAndTicks(t *testing.T) {
	m, err := Decorate(&recordingHost{}, testConfig(), WithViewport(40, 10))
	if err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(FrameMsg{})
	if cmd == nil {
		t.Error("expected next tick while mounted")
	}
	if m.Loop().Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", m.Loop().Frames())
	}
	if m.Canvas().Lit() == 0 {
		t.Error("expected particles on the canvas")
	}
}

func TestCtrlCStopsLoop(t *testing.T) {
	host := &recordingHost{}
	m, err := Decorate(host, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.Loop().Running() {
		t.Error("expected loop stopped")
	}

	_, cmd = m.Update(FrameMsg{})
	if cmd != nil {
		t.Error("no tick expected after stop")
	}
	if m.Loop().Frames() != 0 {
		t.Errorf("expected no frames drawn, got %d", m.Loop().Frames())
	}
	if len(host.msgs) != 0 {
		t.Error("ctrl+c must not reach the host")
	}
}

func TestKeysForwardToHost(t *testing.T) {
	host := &recordingHost{}
	m, err := Decorate(host, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if len(host.msgs) != 1 {
		t.Errorf("expected key forwarded, got %d msgs", len(host.msgs))
	}
}

func TestWindowSizeResizes(t *testing.T) {
	host := &recordingHost{}
	m, err := Decorate(host, testConfig(), WithViewport(40, 10))
	if err != nil {
		t.Fatal(err)
	}
	before := m.Loop().Particles().Items[0]

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	w, h := m.Loop().Size()
	if w != 200 || h != 120 {
		t.Errorf("expected 200x120 surface, got %dx%d", w, h)
	}
	if m.Canvas().Width != 100 || m.Canvas().Height != 30 {
		t.Errorf("expected 100x30 canvas, got %dx%d", m.Canvas().Width, m.Canvas().Height)
	}
	after := m.Loop().Particles().Items[0]
	if before.X != after.X || before.Y != after.Y {
		t.Error("resize must not move particles")
	}
	if len(host.msgs) != 1 {
		t.Error("window size should reach the host")
	}
}

func TestFixedSurfaceSize(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 64, 32
	m, err := Decorate(&recordingHost{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	w, h := m.Loop().Size()
	if w != 64 || h != 32 {
		t.Errorf("expected fixed 64x32 surface, got %dx%d", w, h)
	}
}

func TestMouseSetsDrift(t *testing.T) {
	host := &recordingHost{}
	m, err := Decorate(host, testConfig(), WithViewport(40, 10))
	if err != nil {
		t.Fatal(err)
	}

	m.Update(tea.MouseMsg{X: 40, Action: tea.MouseActionMotion})
	if m.Loop().Drift() != 1 {
		t.Errorf("expected drift 1 at right edge, got %f", m.Loop().Drift())
	}
	m.Update(tea.MouseMsg{X: 20, Action: tea.MouseActionMotion})
	if m.Loop().Drift() != 0 {
		t.Errorf("expected drift 0 at centre, got %f", m.Loop().Drift())
	}
	m.Update(tea.MouseMsg{X: 10, Action: tea.MouseActionMotion})
	if math.Abs(m.Loop().Drift()+0.5) > 1e-9 {
		t.Errorf("expected drift -0.5, got %f", m.Loop().Drift())
	}
	if len(host.msgs) != 3 {
		t.Errorf("component mount passes pointer input through, got %d msgs", len(host.msgs))
	}
}

func TestRawMountConsumesPointer(t *testing.T) {
	host := &recordingHost{}
	cfg := config.GetMount("raw")
	cfg.Seed = 1
	m, err := Decorate(host, cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tea.MouseMsg{X: 1, Action: tea.MouseActionMotion})
	if len(host.msgs) != 0 {
		t.Error("raw mount should keep pointer input")
	}
}

func TestViewCompositesHost(t *testing.T) {
	host := &recordingHost{view: "hello"}
	cfg := testConfig()
	cfg.Amount = 0
	m, err := Decorate(host, cfg, WithViewport(8, 2))
	if err != nil {
		t.Fatal(err)
	}
	m.Update(FrameMsg{})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 2 || lines[0] != "hello" {
		t.Errorf("expected untouched host view, got %q", lines)
	}
}

func litCanvas() *viz.Canvas {
	c := viz.NewCanvas(8, 1, viz.DefaultTheme)
	c.Set(2, 0) // column 1
	c.Set(14, 0)
	return c
}

func TestCompositeAbove(t *testing.T) {
	got := Composite("hello", litCanvas(), true)
	if got != "h⠁llo  ⠁" {
		t.Errorf("unexpected composite %q", got)
	}
}

func TestCompositeBelow(t *testing.T) {
	got := Composite("hello", litCanvas(), false)
	if got != "hello  ⠁" {
		t.Errorf("unexpected composite %q", got)
	}

	got = Composite("h llo", litCanvas(), false)
	if got != "h⠁llo  ⠁" {
		t.Errorf("expected blank host cell filled, got %q", got)
	}
}

func TestCompositeWideRunes(t *testing.T) {
	got := Composite("日本", litCanvas(), true)
	if got != " ⠁本   ⠁" {
		t.Errorf("unexpected composite above wide runes %q", got)
	}

	got = Composite("日本", litCanvas(), false)
	if got != "日本   ⠁" {
		t.Errorf("unexpected composite below wide runes %q", got)
	}

	got = Composite("日 x", litCanvas(), false)
	if got != "日 x   ⠁" {
		t.Errorf("expected column 1 inside the wide rune to stay host text, got %q", got)
	}
}

func TestCompositeExtraRows(t *testing.T) {
	c := viz.NewCanvas(2, 3, viz.DefaultTheme)
	c.Set(0, 8)
	got := Composite("ab", c, true)
	if got != "ab\n\n⠁" {
		t.Errorf("unexpected composite %q", got)
	}
}

var _ render.Observer = (*countingObserver)(nil)

type countingObserver struct{ frames int }

func (c *countingObserver) OnFrame(render.FrameStats) { c.frames++ }

func TestObserverWiredThrough(t *testing.T) {
	obs := &countingObserver{}
	m, err := Decorate(&recordingHost{}, testConfig(), WithObserver(obs))
	if err != nil {
		t.Fatal(err)
	}
	m.Update(FrameMsg{})
	m.Update(FrameMsg{})
	if obs.frames != 2 {
		t.Errorf("expected 2 observed frames, got %d", obs.frames)
	}
}
