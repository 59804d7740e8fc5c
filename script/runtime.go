// Package script drives filter parameters from tengo scripts, one update per
// game tick.
package script

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shaderblow/filter"
	"github.com/milk9111/shaderblow/presets"
)

// Target is the part of a tint filter a script may drive.
type Target interface {
	Color() filter.RGBA
	SetColor(color.Color)
	Intensity() float32
	SetIntensity(float32)
	Overlay() bool
	SetOverlay(bool)
	Multiply() bool
	SetMultiply(bool)
	Enabled() bool
	SetEnabled(bool)
}

const dispatchScript = `
if __phase == "update" {
	update(__fx, __state)
}
`

// Runtime is one compiled script with its own persistent state map. Scripts
// must define `update := func(fx, state) { ... }`.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	tick     int
	done     bool
}

// Load compiles the named script from the presets script directory.
func Load(name string) (*Runtime, error) {
	src, err := presets.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return NewRuntime(name, src)
}

func NewRuntime(name string, src []byte) (*Runtime, error) {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__fx", map[string]any{})
	_ = s.Add("__state", map[string]any{})

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	rt := &Runtime{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}

	// Globals only exist after a run, so resolve `update` with a no-op pass.
	if err := rt.run("noop", &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("script: %s does not define update", name)
	}
	return rt, nil
}

func (rt *Runtime) run(phase string, fx *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__fx", fx); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (rt *Runtime) Name() string { return rt.name }

// Tick is the number of completed updates.
func (rt *Runtime) Tick() int { return rt.tick }

// Done reports whether the script called fx.done(). A finished runtime
// ignores further updates.
func (rt *Runtime) Done() bool { return rt.done }

// Reset restarts the script from tick zero with empty state.
func (rt *Runtime) Reset() {
	rt.tick = 0
	rt.done = false
	rt.state = &tengo.Map{Value: map[string]tengo.Object{}}
}

// Update runs the script's update function once against target.
func (rt *Runtime) Update(target Target) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if target == nil || rt.done {
		return nil
	}
	if err := rt.run("update", buildFX(rt, target)); err != nil {
		return fmt.Errorf("script: %s: %w", rt.name, err)
	}
	rt.tick++
	return nil
}

func buildFX(rt *Runtime, target Target) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(rt.tick)}, nil
	}}

	values["done"] = &tengo.UserFunction{Name: "done", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.done = true
		return tengo.UndefinedValue, nil
	}}

	values["get_intensity"] = &tengo.UserFunction{Name: "get_intensity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: float64(target.Intensity())}, nil
	}}

	values["set_intensity"] = &tengo.UserFunction{Name: "set_intensity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, ok := objectAsFloat(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "intensity", Expected: "float", Found: args[0].TypeName()}
		}
		target.SetIntensity(float32(v))
		return tengo.UndefinedValue, nil
	}}

	values["get_color"] = &tengo.UserFunction{Name: "get_color", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c := target.Color()
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: float64(c.R)},
			&tengo.Float{Value: float64(c.G)},
			&tengo.Float{Value: float64(c.B)},
			&tengo.Float{Value: float64(c.A)},
		}}, nil
	}}

	values["set_color"] = &tengo.UserFunction{Name: "set_color", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 1 {
			s := objectAsString(args[0])
			c, err := presets.ParseColor(s)
			if err != nil {
				return nil, err
			}
			target.SetColor(c)
			return tengo.UndefinedValue, nil
		}
		if len(args) < 3 || len(args) > 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		comps := [4]float32{1, 1, 1, 1}
		for i, a := range args {
			v, ok := objectAsFloat(a)
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "component", Expected: "float", Found: a.TypeName()}
			}
			comps[i] = float32(v)
		}
		target.SetColor(filter.RGBA{R: comps[0], G: comps[1], B: comps[2], A: comps[3]})
		return tengo.UndefinedValue, nil
	}}

	values["set_overlay"] = boolSetter("set_overlay", target.SetOverlay)
	values["set_multiply"] = boolSetter("set_multiply", target.SetMultiply)
	values["set_enabled"] = boolSetter("set_enabled", target.SetEnabled)

	values["overlay"] = boolGetter("overlay", target.Overlay)
	values["multiply"] = boolGetter("multiply", target.Multiply)
	values["enabled"] = boolGetter("enabled", target.Enabled)

	return &tengo.ImmutableMap{Value: values}
}

func boolSetter(name string, set func(bool)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		set(!args[0].IsFalsy())
		return tengo.UndefinedValue, nil
	}}
}

func boolGetter(name string, get func() bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if get() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
