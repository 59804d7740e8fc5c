package filter

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

type ParamType int

const (
	ParamColor ParamType = iota
	ParamFloat
	ParamBool
)

func (t ParamType) String() string {
	switch t {
	case ParamColor:
		return "color"
	case ParamFloat:
		return "float"
	case ParamBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Param is one named material parameter.
type Param struct {
	Type  ParamType
	Color RGBA
	Float float32
	Bool  bool
}

// Material binds a compiled shader to a set of named parameters that are
// forwarded to it as uniforms.
type Material struct {
	def    string
	shader *ebiten.Shader
	params map[string]Param
}

// NewMaterial wraps an already compiled shader. shader may be nil, in which
// case the owner is expected to render without it.
func NewMaterial(def string, shader *ebiten.Shader) *Material {
	return &Material{
		def:    def,
		shader: shader,
		params: map[string]Param{},
	}
}

// LoadMaterial loads and compiles def through loader.
func LoadMaterial(loader ShaderLoader, def string) (*Material, error) {
	shader, err := loadShader(loader, def)
	if err != nil {
		return nil, err
	}
	return NewMaterial(def, shader), nil
}

func loadShader(loader ShaderLoader, def string) (*ebiten.Shader, error) {
	if loader == nil {
		return nil, ErrNoLoader
	}
	src, err := loader.LoadShader(def)
	if err != nil {
		return nil, &ShaderError{Def: def, Err: err}
	}
	shader, err := compileShader(src)
	if err != nil {
		return nil, &ShaderError{Def: def, Err: err}
	}
	return shader, nil
}

func (m *Material) Def() string {
	if m == nil {
		return ""
	}
	return m.def
}

func (m *Material) Shader() *ebiten.Shader {
	if m == nil {
		return nil
	}
	return m.shader
}

// replaceShader swaps in a recompiled shader, releasing the previous one.
func (m *Material) replaceShader(s *ebiten.Shader) {
	if m.shader != nil && m.shader != s {
		m.shader.Deallocate()
	}
	m.shader = s
}

func (m *Material) SetColor(name string, c RGBA) {
	m.params[name] = Param{Type: ParamColor, Color: c}
}

func (m *Material) SetFloat(name string, v float32) {
	m.params[name] = Param{Type: ParamFloat, Float: v}
}

func (m *Material) SetBoolean(name string, v bool) {
	m.params[name] = Param{Type: ParamBool, Bool: v}
}

func (m *Material) Param(name string) (Param, bool) {
	if m == nil {
		return Param{}, false
	}
	p, ok := m.params[name]
	return p, ok
}

func (m *Material) Color(name string) (RGBA, bool) {
	p, ok := m.Param(name)
	if !ok || p.Type != ParamColor {
		return RGBA{}, false
	}
	return p.Color, true
}

func (m *Material) Float(name string) (float32, bool) {
	p, ok := m.Param(name)
	if !ok || p.Type != ParamFloat {
		return 0, false
	}
	return p.Float, true
}

func (m *Material) Bool(name string) (bool, bool) {
	p, ok := m.Param(name)
	if !ok || p.Type != ParamBool {
		return false, false
	}
	return p.Bool, true
}

// ParamNames returns the parameter names in sorted order.
func (m *Material) ParamNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.params))
	for name := range m.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Uniforms converts the parameters to the Kage uniform representation.
// Kage has no boolean uniforms, so booleans become 0 or 1.
func (m *Material) Uniforms() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.params))
	for name, p := range m.params {
		switch p.Type {
		case ParamColor:
			out[name] = p.Color.Vec4()
		case ParamFloat:
			out[name] = p.Float
		case ParamBool:
			if p.Bool {
				out[name] = float32(1)
			} else {
				out[name] = float32(0)
			}
		}
	}
	return out
}
