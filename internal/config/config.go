package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/snowfetti/internal/particle"
	"github.com/san-kum/snowfetti/internal/render"
	"github.com/san-kum/snowfetti/internal/viz"
)

const (
	DefaultAmount     = 800
	DefaultFPS        = 60
	DefaultDriftScale = 1.0
	DefaultMount      = "component"
	MaxFPS            = 240
)

// Pointer event modes for Styles.PointerEvents.
const (
	PointerNone = "none"
	PointerAuto = "auto"
)

type Config struct {
	Mount   string   `yaml:"mount"`
	Profile []string `yaml:"profile"`
	Amount  int      `yaml:"amount"`
	// Width and Height are surface pixels; zero follows the viewport.
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Drift      float64 `yaml:"drift"`
	DriftScale float64 `yaml:"drift_scale"`
	Seed       int64   `yaml:"seed"`
	Theme      string  `yaml:"theme"`
	Styles     Styles  `yaml:"styles"`
}

// Styles control overlay placement. They never affect particle motion.
type Styles struct {
	// ZIndex >= 0 draws particles over host text; negative only fills blank
	// host cells.
	ZIndex        int    `yaml:"z_index"`
	PointerEvents string `yaml:"pointer_events"`
	Background    string `yaml:"background"`
}

func DefaultConfig() *Config {
	cfg := *Mounts[DefaultMount]
	cfg.Profile = append([]string(nil), cfg.Profile...)
	return &cfg
}

// ErrUnknownMount is returned for a mount name with no preset.
var ErrUnknownMount = errors.New("config: unknown mount")

// Load reads a YAML config layered over the default mount preset.
func Load(path string) (*Config, error) {
	return LoadOver(path, nil)
}

// LoadOver reads a YAML config layered over base, or over the default preset
// when base is nil. A mount key in the file swaps base for that preset
// before the rest of the file is applied.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Mount string `yaml:"mount"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case head.Mount != "":
		if cfg = GetMount(head.Mount); cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownMount, head.Mount, ListMounts())
		}
	case base != nil:
		c := *base
		c.Profile = append([]string(nil), base.Profile...)
		cfg = &c
	default:
		cfg = DefaultConfig()
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Mount != "" {
		if _, ok := Mounts[c.Mount]; !ok {
			return fmt.Errorf("%w: %s (available: %v)", ErrUnknownMount, c.Mount, ListMounts())
		}
	}
	if _, err := particle.ParseProfile(c.Profile); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("fps out of range 1-%d (got %d)", MaxFPS, c.FPS)
	}
	if c.Theme != "" {
		if _, ok := viz.LookupTheme(c.Theme); !ok {
			return fmt.Errorf("unknown theme: %s (available: %v)", c.Theme, viz.ThemeNames())
		}
	}
	switch c.Styles.PointerEvents {
	case "", PointerNone, PointerAuto:
	default:
		return fmt.Errorf("pointer_events must be %q or %q, got %q", PointerNone, PointerAuto, c.Styles.PointerEvents)
	}
	return nil
}

// ThemeOrDefault resolves the configured theme.
func (c *Config) ThemeOrDefault() viz.Theme {
	t := viz.GetTheme(c.Theme)
	if c.Styles.Background != "" && c.Styles.Background != "transparent" {
		t.Background = c.Styles.Background
	}
	return t
}

// RenderConfig converts the config into what render.Mount needs. A negative
// amount is passed through and yields no particles.
func (c *Config) RenderConfig() (render.Config, error) {
	profile, err := particle.ParseProfile(c.Profile)
	if err != nil {
		return render.Config{}, err
	}
	theme := c.ThemeOrDefault()
	return render.Config{
		Profile:   profile,
		Amount:    c.Amount,
		Width:     c.Width,
		Height:    c.Height,
		Drift:     c.Drift,
		Seed:      c.Seed,
		Palette:   theme.Confetti,
		SnowColor: theme.Snow,
	}, nil
}

// PassThrough reports whether pointer input goes to the host.
func (c *Config) PassThrough() bool {
	return c.Styles.PointerEvents != PointerAuto
}
