package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shaderblow/common"
	"github.com/milk9111/shaderblow/filter"
	"github.com/milk9111/shaderblow/filter/shaders"
	"github.com/milk9111/shaderblow/presets"
	"github.com/milk9111/shaderblow/script"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

type Game struct {
	loader  shaders.Loader
	proc    *filter.Processor
	filters []*filter.ColorScaleFilter
	scripts map[string]*script.Runtime

	presetNames []string
	presetIdx   int
	current     string
	selected    int

	scene   *physicsScene
	panel   *controlPanel
	watcher *presets.Watcher

	clipboardOK bool
	status      string
}

func NewGame(presetName, scriptName string, watch bool) *Game {
	g := &Game{
		loader:      shaders.NewLoader(),
		presetNames: presets.List(),
		scene:       newPhysicsScene(baseWidth, baseHeight),
	}

	if presetName == "" && len(g.presetNames) > 0 {
		presetName = g.presetNames[0]
	}
	g.presetIdx = -1
	for i, name := range g.presetNames {
		if name == presetName {
			g.presetIdx = i
		}
	}
	if err := g.applyPreset(presetName); err != nil {
		log.Printf("preset %s: %v", presetName, err)
		g.useDefaultFilter()
	}

	if scriptName != "" {
		if rt, err := script.Load(scriptName); err != nil {
			log.Printf("script %s: %v", scriptName, err)
		} else if f := g.selectedFilter(); f != nil {
			g.scripts[f.Name()] = rt
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if watch {
		w, err := presets.NewWatcher("presets", "presets/scripts", shaders.DefaultDir)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.panel = newControlPanel(g)
	return g
}

// applyPreset swaps the whole filter chain for the named preset.
func (g *Game) applyPreset(name string) error {
	spec, err := presets.LoadPreset(name)
	if err != nil {
		return err
	}

	proc := filter.NewProcessor(g.loader)
	built := spec.Build()
	runtimes := map[string]*script.Runtime{}
	for i, f := range built {
		if err := proc.Add(f); err != nil {
			return err
		}
		if s := spec.Filters[i].Script; s != "" {
			rt, err := script.Load(s)
			if err != nil {
				log.Printf("preset %s: %v", spec.Name, err)
				continue
			}
			runtimes[f.Name()] = rt
		}
	}

	g.proc = proc
	g.filters = built
	g.scripts = runtimes
	g.selected = 0
	g.current = name
	g.status = "preset " + spec.Name
	return nil
}

func (g *Game) useDefaultFilter() {
	f := filter.NewColorScaleFilter()
	g.proc = filter.NewProcessor(g.loader)
	_ = g.proc.Add(f)
	g.filters = []*filter.ColorScaleFilter{f}
	g.scripts = map[string]*script.Runtime{}
	g.selected = 0
	g.current = "default"
}

func (g *Game) presetName() string {
	return g.current
}

func (g *Game) selectedFilter() *filter.ColorScaleFilter {
	if g.selected < 0 || g.selected >= len(g.filters) {
		return nil
	}
	return g.filters[g.selected]
}

func (g *Game) selectNext() {
	if len(g.filters) == 0 {
		return
	}
	g.selected = (g.selected + 1) % len(g.filters)
}

func (g *Game) nextPreset() {
	if len(g.presetNames) == 0 {
		return
	}
	g.presetIdx = (g.presetIdx + 1) % len(g.presetNames)
	name := g.presetNames[g.presetIdx]
	if err := g.applyPreset(name); err != nil {
		log.Printf("preset %s: %v", name, err)
	}
}

func (g *Game) nudgeIntensity(delta float32) {
	f := g.selectedFilter()
	if f == nil {
		return
	}
	f.SetIntensity(common.Clamp01(f.Intensity() + delta))
	// A manual change stops any script fighting over the value.
	delete(g.scripts, f.Name())
}

func (g *Game) copyPreset() {
	spec := presets.PresetSpec{Name: g.presetName()}
	for _, f := range g.filters {
		var scriptName string
		if rt, ok := g.scripts[f.Name()]; ok {
			scriptName = rt.Name()
		}
		spec.Filters = append(spec.Filters, presets.FromFilter(f, scriptName))
	}
	data, err := spec.Marshal()
	if err != nil {
		log.Printf("copy preset: %v", err)
		return
	}
	if !g.clipboardOK {
		fmt.Print(string(data))
		g.status = "clipboard unavailable, preset printed to stdout"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "preset copied"
}

func (g *Game) Update() error {
	g.handleKeys()
	g.drainWatcher()

	for _, f := range g.filters {
		rt, ok := g.scripts[f.Name()]
		if !ok {
			continue
		}
		if err := rt.Update(f); err != nil {
			log.Printf("%v", err)
			delete(g.scripts, f.Name())
		}
	}

	g.scene.Update()
	g.panel.sync(g)
	g.panel.ui.Update()
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.scene.Kick()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.selectNext()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.nextPreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyPreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		if f := g.selectedFilter(); f != nil {
			f.SetOverlay(!f.Overlay())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if f := g.selectedFilter(); f != nil {
			f.SetMultiply(!f.Multiply())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.nudgeIntensity(0.05)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.nudgeIntensity(-0.05)
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case presets.IsShaderFile(path):
		for _, f := range g.filters {
			if err := f.Reload(g.loader); err != nil {
				log.Printf("reload %s: %v", path, err)
				return
			}
		}
		g.status = "shader reloaded"
	default:
		if g.current == "default" {
			return
		}
		if err := g.applyPreset(g.current); err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		g.status = "preset reloaded"
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.proc.Draw(screen, g.scene.Draw)
	g.panel.ui.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  %s\nspace: kick  tab: filter  p: preset  o/m: blend  up/down: intensity  c: copy", ebiten.ActualFPS(), g.status))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
