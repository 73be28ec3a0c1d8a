// Package scenario describes timelines as YAML documents and builds them with
// an anim.Animator.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/util"
	"gopkg.in/yaml.v2"
)

// Version is the document version written by Write.
const Version = "1"

// ErrInvalid is wrapped by every validation and build failure.
var ErrInvalid = errors.New("invalid scenario")

// How a group joins the timeline.
const (
	PlayOn   = "on"
	PlayWith = "with"
	PlayThen = "then"
)

// Scenario represents a complete timeline.
type Scenario struct {
	Version string  `yaml:"version"`
	Groups  []Group `yaml:"groups"`
}

// Group represents one group of targets sharing timing and keyframes.
type Group struct {
	Play         string               `yaml:"play"`
	Targets      []string             `yaml:"targets"`
	DelayMs      int                  `yaml:"delayMs,omitempty"`
	DurationMs   int                  `yaml:"durationMs,omitempty"` // 0 keeps the default duration
	RepeatCount  int                  `yaml:"repeatCount,omitempty"`
	RepeatMode   string               `yaml:"repeatMode,omitempty"`
	Interpolator string               `yaml:"interpolator,omitempty"`
	Presets      []string             `yaml:"presets,omitempty"`
	Tracks       map[string][]float64 `yaml:"tracks,omitempty"` // property name to keyframes
}

// Resolver finds the element a target name refers to.
type Resolver func(name string) (anim.Element, bool)

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Write writes the scenario to a YAML file.
func (s *Scenario) Write(path string) error {
	if s.Version == "" {
		s.Version = Version
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that can be checked without the elements.
func (s *Scenario) Validate() error {
	if s.Version != "" && s.Version != Version {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalid, s.Version)
	}
	if len(s.Groups) == 0 {
		return fmt.Errorf("%w: no groups", ErrInvalid)
	}
	for i, g := range s.Groups {
		if err := g.validate(i == 0); err != nil {
			return fmt.Errorf("%w: group %d: %v", ErrInvalid, i, err)
		}
	}
	return nil
}

func (g *Group) validate(first bool) error {
	switch play := strings.ToLower(g.Play); {
	case first && play != PlayOn:
		return fmt.Errorf("first group must play %q, got %q", PlayOn, g.Play)
	case !first && play != PlayWith && play != PlayThen:
		return fmt.Errorf("play must be %q or %q, got %q", PlayWith, PlayThen, g.Play)
	}
	if g.DelayMs < 0 || g.DurationMs < 0 {
		return errors.New("delayMs and durationMs must not be negative")
	}
	if g.RepeatCount < anim.Infinite {
		return fmt.Errorf("repeatCount must be %d or more, got %d", anim.Infinite, g.RepeatCount)
	}
	if _, err := anim.ParseRepeatMode(g.RepeatMode); err != nil {
		return err
	}
	if g.Interpolator != "" {
		if _, err := util.Easing(g.Interpolator); err != nil {
			return err
		}
	}
	for name, values := range g.Tracks {
		if _, err := anim.ParseProperty(name); err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("track %q has no keyframes", name)
		}
	}
	return nil
}

// Build adds the scenario's groups to a new timeline of a and returns the
// first group. Unknown presets are logged by the group and skipped.
func (s *Scenario) Build(a *anim.Animator, resolve Resolver) (*anim.Group, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var first, last *anim.Group
	for i, sg := range s.Groups {
		targets := make([]anim.Element, 0, len(sg.Targets))
		for _, name := range sg.Targets {
			e, ok := resolve(name)
			if !ok {
				return nil, fmt.Errorf("%w: group %d: unknown target %q", ErrInvalid, i, name)
			}
			targets = append(targets, e)
		}

		var g *anim.Group
		switch strings.ToLower(sg.Play) {
		case PlayOn:
			g = a.PlayOn(targets...)
			first = g
		case PlayWith:
			g = last.PlayWith(targets...)
		default:
			g = last.PlayThen(targets...)
		}
		sg.apply(g)
		last = g
	}
	return first, nil
}

func (sg *Group) apply(g *anim.Group) {
	g.Delay(time.Duration(sg.DelayMs) * time.Millisecond)
	if sg.DurationMs > 0 {
		g.Duration(time.Duration(sg.DurationMs) * time.Millisecond)
	}
	g.RepeatCount(sg.RepeatCount)
	mode, _ := anim.ParseRepeatMode(sg.RepeatMode)
	g.RepeatMode(mode)
	if sg.Interpolator != "" {
		fn, _ := util.Easing(sg.Interpolator)
		g.Interpolator(fn)
	}

	for _, name := range sg.Presets {
		g.Apply(name)
	}
	for name, values := range sg.Tracks {
		p, _ := anim.ParseProperty(name)
		g.Set(nil, p, values...)
	}
}
