package config

import "sort"

// Mounts are the two ways an overlay gets attached to a host. "component"
// is a framework-managed overlay drawn above the host; "raw" is a bare
// surface that sits behind host text and takes pointer input itself.
var Mounts = map[string]*Config{
	"component": {
		Mount: "component", Profile: []string{"snow"}, Amount: DefaultAmount,
		FPS: DefaultFPS, DriftScale: DefaultDriftScale, Theme: "classic",
		Styles: Styles{ZIndex: 1000, PointerEvents: PointerNone, Background: "transparent"},
	},
	"raw": {
		Mount: "raw", Profile: []string{"snow"}, Amount: 100,
		FPS: DefaultFPS, DriftScale: DefaultDriftScale, Theme: "classic",
		Styles: Styles{ZIndex: -1, PointerEvents: PointerAuto},
	},
}

// GetMount returns a copy of the named mount preset, or nil.
func GetMount(name string) *Config {
	m, ok := Mounts[name]
	if !ok {
		return nil
	}
	cfg := *m
	cfg.Profile = append([]string(nil), m.Profile...)
	return &cfg
}

func ListMounts() []string {
	names := make([]string, 0, len(Mounts))
	for name := range Mounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
