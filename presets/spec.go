// Package presets loads named tint setups from YAML. Files ship embedded and
// can be overridden by a copy under ./presets on disk.
package presets

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/shaderblow/filter"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

type PresetSpec struct {
	Name    string       `yaml:"name"`
	Filters []FilterSpec `yaml:"filters"`
}

type FilterSpec struct {
	Name      string     `yaml:"name"`
	Color     *ColorSpec `yaml:"color"`
	Intensity *float32   `yaml:"intensity"`
	Overlay   bool       `yaml:"overlay"`
	Multiply  bool       `yaml:"multiply"`
	Enabled   *bool      `yaml:"enabled,omitempty"`
	Script    string     `yaml:"script,omitempty"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("presets: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("presets: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadPreset(name string) (*PresetSpec, error) {
	spec, err := LoadSpec[PresetSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPresetPath(name), ".yaml")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects presets whose filters would collide in a processor.
func (p *PresetSpec) Validate() error {
	seen := make(map[string]bool, len(p.Filters))
	for i, f := range p.Filters {
		name := f.filterName()
		if seen[name] {
			return fmt.Errorf("presets: %s: filter %d: duplicate name %q", p.Name, i, name)
		}
		seen[name] = true
	}
	return nil
}

// Build creates one filter per spec, in order.
func (p *PresetSpec) Build() []*filter.ColorScaleFilter {
	out := make([]*filter.ColorScaleFilter, 0, len(p.Filters))
	for _, fs := range p.Filters {
		out = append(out, fs.Build())
	}
	return out
}

func (p *PresetSpec) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

func (s FilterSpec) filterName() string {
	if s.Name == "" {
		return filter.ColorScaleName
	}
	return s.Name
}

// Build creates a filter from the spec. Missing fields keep the filter
// defaults.
func (s FilterSpec) Build() *filter.ColorScaleFilter {
	f := filter.NewColorScaleFilter()
	f.SetName(s.Name)
	if s.Color != nil && s.Color.Color != nil {
		f.SetColor(s.Color.Color)
	}
	if s.Intensity != nil {
		f.SetIntensity(*s.Intensity)
	}
	f.SetOverlay(s.Overlay)
	f.SetMultiply(s.Multiply)
	if s.Enabled != nil {
		f.SetEnabled(*s.Enabled)
	}
	return f
}

// FromFilter captures the current state of f as a spec. script names the
// tengo script driving f, or is empty.
func FromFilter(f *filter.ColorScaleFilter, script string) FilterSpec {
	intensity := f.Intensity()
	enabled := f.Enabled()
	return FilterSpec{
		Name:      f.Name(),
		Color:     &ColorSpec{Color: f.Color()},
		Intensity: &intensity,
		Overlay:   f.Overlay(),
		Multiply:  f.Multiply(),
		Enabled:   &enabled,
		Script:    script,
	}
}

// ColorSpec accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type ColorSpec struct {
	color.Color
}

func (c *ColorSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func (c ColorSpec) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

func ParseColor(v string) (color.Color, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "#") {
		if named, ok := colornames.Map[strings.ToLower(v)]; ok {
			return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
		}
	}

	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
