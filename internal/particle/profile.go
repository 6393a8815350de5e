package particle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a profile names a particle kind that has no
// opacity rule.
var ErrUnknownKind = errors.New("particle: unknown kind")

// Kind is the named visual behavior of a particle collection.
type Kind string

const (
	Snow     Kind = "snow"
	Confetti Kind = "confetti"
)

// OpacityRule updates a particle's opacity for one frame.
type OpacityRule func(p *Particle)

var rules = map[Kind]OpacityRule{
	Snow:     holdOpacity,
	Confetti: oscillateOpacity,
}

// Rule returns the per-frame opacity rule for k. Unknown kinds hold opacity.
func (k Kind) Rule() OpacityRule {
	if r, ok := rules[k]; ok {
		return r
	}
	return holdOpacity
}

// Kinds lists the known kinds in a stable order.
func Kinds() []Kind {
	return []Kind{Snow, Confetti}
}

// Profile is an ordered list of active kinds. Only the first entry selects
// the opacity rule.
type Profile []Kind

// DefaultProfile is used when no profile is configured.
var DefaultProfile = Profile{Snow}

// ParseProfile converts names into a Profile.
func ParseProfile(names []string) (Profile, error) {
	if len(names) == 0 {
		return append(Profile(nil), DefaultProfile...), nil
	}
	p := make(Profile, 0, len(names))
	for _, n := range names {
		k := Kind(strings.ToLower(strings.TrimSpace(n)))
		if _, ok := rules[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, n)
		}
		p = append(p, k)
	}
	return p, nil
}

// Primary returns the kind that drives the frame loop.
func (p Profile) Primary() Kind {
	if len(p) == 0 {
		return DefaultProfile[0]
	}
	return p[0]
}

func (p Profile) Strings() []string {
	out := make([]string, len(p))
	for i, k := range p {
		out[i] = string(k)
	}
	return out
}

func holdOpacity(p *Particle) {
	p.Opacity = p.baseOpacity
}

// oscillateOpacity produces a triangle wave in [0, 1]. A zero DeltaOpacity
// stalls the wave wherever it currently is.
func oscillateOpacity(p *Particle) {
	if p.Opacity <= 0 {
		p.fading = false
	} else if p.Opacity >= 1 {
		p.fading = true
	}

	if p.fading {
		p.Opacity -= p.DeltaOpacity
		if p.Opacity < 0 {
			p.Opacity = 0
		}
		return
	}

	p.Opacity += p.DeltaOpacity
	if p.Opacity > 1 {
		p.Opacity = 1
	}
}
