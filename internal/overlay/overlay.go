// Package overlay mounts a particle loop over a Bubble Tea host model.
//
// The decorator owns the drawing surface and the frame queue. Every FrameMsg
// flushes the queue, which runs exactly the frame the loop requested last
// time; the host keeps receiving its own messages unchanged.
package overlay

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/snowfetti/internal/config"
	"github.com/san-kum/snowfetti/internal/render"
	"github.com/san-kum/snowfetti/internal/viz"
)

// Viewport used until the first WindowSizeMsg arrives.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// FrameMsg is one display refresh.
type FrameMsg time.Time

type Model struct {
	host      tea.Model
	cfg       config.Config
	canvas    *viz.Canvas
	queue     *render.FrameQueue
	loop      *render.Loop
	logger    *slog.Logger
	observers []render.Observer
	cols      int
	rows      int
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithObserver(o render.Observer) Option {
	return func(m *Model) { m.observers = append(m.observers, o) }
}

// WithViewport sets the terminal size the overlay starts with.
func WithViewport(cols, rows int) Option {
	return func(m *Model) {
		if cols > 0 && rows > 0 {
			m.cols, m.rows = cols, rows
		}
	}
}

// Decorate wraps host with a particle overlay and starts the loop. The loop
// only advances once the returned model's Init command runs.
func Decorate(host tea.Model, cfg *config.Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Model{
		host:   host,
		cfg:    *cfg,
		queue:  render.NewFrameQueue(),
		logger: slog.New(slog.DiscardHandler),
		cols:   DefaultCols,
		rows:   DefaultRows,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.canvas = viz.NewCanvas(m.cols, m.rows, m.cfg.ThemeOrDefault())

	rc, err := m.cfg.RenderConfig()
	if err != nil {
		return nil, err
	}
	rc.Width, rc.Height = m.surfaceSize()

	loopOpts := []render.LoopOption{render.WithLogger(m.logger)}
	for _, o := range m.observers {
		loopOpts = append(loopOpts, render.WithObserver(o))
	}
	m.loop, err = render.Mount(m.canvas, m.queue, rc, loopOpts...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.host.Init(), m.tick())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.queue.Flush()
		if !m.loop.Running() {
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.forward(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.loop.SetDrift(m.driftAt(msg.X))
		}
		if !m.cfg.PassThrough() {
			return m, nil
		}
		return m.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		return m.forward(msg)
	}

	return m.forward(msg)
}

func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.host, cmd = m.host.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	return Composite(m.host.View(), m.canvas, m.cfg.Styles.ZIndex >= 0)
}

// Close unmounts the loop. It is safe to call more than once.
func (m *Model) Close() {
	m.loop.Stop()
}

func (m *Model) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	m.cols, m.rows = cols, rows
	w, h := m.surfaceSize()
	if err := m.loop.Resize(w, h); err != nil {
		m.logger.Warn("resize ignored", "cols", cols, "rows", rows, "err", err)
	}
}

// surfaceSize is the configured pixel size, or the viewport's.
func (m *Model) surfaceSize() (w, h int) {
	w, h = m.cfg.Width, m.cfg.Height
	if w == 0 {
		w = m.cols * 2
	}
	if h == 0 {
		h = m.rows * 4
	}
	return w, h
}

// driftAt maps the pointer column to a drift in [-DriftScale, DriftScale],
// zero at the centre.
func (m *Model) driftAt(x int) float64 {
	half := float64(m.cols) / 2
	if half < 1 {
		return 0
	}
	d := (float64(x) - half) / half
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return d * m.cfg.DriftScale
}

func (m *Model) Loop() *render.Loop         { return m.loop }
func (m *Model) Canvas() *viz.Canvas        { return m.canvas }
func (m *Model) Host() tea.Model            { return m.host }
func (m *Model) Viewport() (cols, rows int) { return m.cols, m.rows }
