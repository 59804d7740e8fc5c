package presets

import (
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/milk9111/shaderblow/filter"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "00ff0080", want: color.NRGBA{G: 0xff, A: 0x80}},
		{in: "black", want: color.NRGBA{A: 0xff}},
		{in: "MidnightBlue", want: color.NRGBA{R: 0x19, G: 0x19, B: 0x70, A: 0xff}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Fatalf("ParseColor(%q) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

func TestColorSpecYAML(t *testing.T) {
	var doc struct {
		Color *ColorSpec `yaml:"color"`
	}
	if err := yaml.Unmarshal([]byte(`color: "#11223344"`), &doc); err != nil {
		t.Fatal(err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "'#11223344'") && !strings.Contains(string(out), `"#11223344"`) {
		t.Fatalf("marshalled color = %s", out)
	}

	if err := yaml.Unmarshal([]byte("color: [1, 2]"), &doc); err == nil {
		t.Fatalf("sequence color should be rejected")
	}
}

func TestEmbeddedPresets(t *testing.T) {
	names := List()
	want := []string{"fade", "fire", "night", "underwater"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for _, name := range names {
		p, err := LoadPreset(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if p.Name != name {
			t.Fatalf("preset %s has name %q", name, p.Name)
		}
		if len(p.Filters) == 0 {
			t.Fatalf("preset %s has no filters", name)
		}
		for _, fs := range p.Filters {
			if fs.Script == "" {
				continue
			}
			if _, err := LoadScript(fs.Script); err != nil {
				t.Fatalf("preset %s references missing script %s: %v", name, fs.Script, err)
			}
		}
	}
}

func TestNightPresetBuild(t *testing.T) {
	p, err := LoadPreset("presets/night.yaml")
	if err != nil {
		t.Fatal(err)
	}
	fs := p.Build()
	if len(fs) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(fs))
	}
	if fs[0].Name() != "dusk" || !fs[0].Multiply() || fs[0].Overlay() {
		t.Fatalf("dusk filter = %s multiply=%v overlay=%v", fs[0].Name(), fs[0].Multiply(), fs[0].Overlay())
	}
	if fs[0].Intensity() != 0.6 {
		t.Fatalf("dusk intensity = %v", fs[0].Intensity())
	}
	if got := fs[1].Color(); got.A < 0.49 || got.A > 0.51 {
		t.Fatalf("moonlight alpha = %v", got.A)
	}
	if !fs[1].Overlay() {
		t.Fatalf("moonlight should overlay")
	}
}

func TestFilterSpecDefaults(t *testing.T) {
	f := FilterSpec{}.Build()
	if f.Name() != filter.ColorScaleName || f.Color() != filter.Red || f.Intensity() != filter.DefaultIntensity {
		t.Fatalf("empty spec should give filter defaults, got %s %+v %v", f.Name(), f.Color(), f.Intensity())
	}
	if !f.Enabled() {
		t.Fatalf("filters are enabled unless the spec says otherwise")
	}

	off := false
	if (FilterSpec{Enabled: &off}).Build().Enabled() {
		t.Fatalf("enabled: false ignored")
	}
}

func TestFromFilterRoundTrip(t *testing.T) {
	f := filter.NewColorScaleFilterWith(color.NRGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xff}, 0.35)
	f.SetName("custom")
	f.SetMultiply(true)

	p := PresetSpec{Name: "custom", Filters: []FilterSpec{FromFilter(f, "pulse")}}
	data, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var back PresetSpec
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	g := back.Build()[0]
	if g.Name() != "custom" || !g.Multiply() || g.Overlay() || g.Intensity() != 0.35 {
		t.Fatalf("round trip lost fields: %s", data)
	}
	if g.Color() != f.Color() {
		t.Fatalf("color %+v, want %+v", g.Color(), f.Color())
	}
	if back.Filters[0].Script != "pulse" {
		t.Fatalf("script lost in round trip: %s", data)
	}
}

func TestValidateDuplicateNames(t *testing.T) {
	p := PresetSpec{Name: "dup", Filters: []FilterSpec{{}, {}}}
	if err := p.Validate(); err == nil {
		t.Fatalf("two unnamed filters should collide")
	}
}

func TestIsWatched(t *testing.T) {
	cases := map[string]bool{
		"presets/night.yaml":             true,
		"presets/scripts/pulse.tengo":    true,
		"filter/shaders/colorscale.kage": true,
		"README.md":                      false,
		"presets/night.yaml~":            false,
	}
	for path, want := range cases {
		if got := IsWatched(path); got != want {
			t.Fatalf("IsWatched(%q) = %v, want %v", path, got, want)
		}
	}
}
