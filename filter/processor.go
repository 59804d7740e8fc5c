package filter

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Processor renders a scene offscreen and runs it through an ordered chain
// of filters before it reaches the screen.
type Processor struct {
	loader  ShaderLoader
	filters []Filter

	width, height int
	ready         map[string]bool
	failed        map[string]string

	scene *ebiten.Image
	ping  *ebiten.Image
	pong  *ebiten.Image
}

func NewProcessor(loader ShaderLoader) *Processor {
	return &Processor{
		loader: loader,
		ready:  map[string]bool{},
		failed: map[string]string{},
	}
}

// Add appends f to the chain. If the processor already knows its frame size
// the filter is initialized right away.
func (p *Processor) Add(f Filter) error {
	if f == nil {
		return fmt.Errorf("filter: add nil filter")
	}
	if p.Filter(f.Name()) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateName, f.Name())
	}
	p.filters = append(p.filters, f)
	if p.width > 0 && p.height > 0 {
		return p.initFilter(f)
	}
	return nil
}

// Remove drops the named filter and reports whether it was present.
func (p *Processor) Remove(name string) bool {
	for i, f := range p.filters {
		if f.Name() != name {
			continue
		}
		p.filters = append(p.filters[:i], p.filters[i+1:]...)
		delete(p.ready, name)
		delete(p.failed, name)
		return true
	}
	return false
}

func (p *Processor) Filter(name string) Filter {
	for _, f := range p.filters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (p *Processor) Filters() []Filter {
	out := make([]Filter, len(p.filters))
	copy(out, p.filters)
	return out
}

func (p *Processor) Size() (int, int) { return p.width, p.height }

// Init sizes the processor and initializes every filter that has not been
// initialized yet. A size change drops the offscreen buffers and
// re-initializes all filters with the new dimensions. The first error is
// returned; the remaining filters are still initialized.
func (p *Processor) Init(w, h int) error {
	if w != p.width || h != p.height {
		p.width, p.height = w, h
		p.releaseBuffers()
		p.ready = map[string]bool{}
		p.failed = map[string]string{}
	}
	var first error
	for _, f := range p.filters {
		if err := p.initFilter(f); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *Processor) initFilter(f Filter) error {
	if p.ready[f.Name()] {
		return nil
	}
	if err := f.Init(p.loader, p.width, p.height); err != nil {
		p.failed[f.Name()] = err.Error()
		return fmt.Errorf("filter: init %s: %w", f.Name(), err)
	}
	p.ready[f.Name()] = true
	delete(p.failed, f.Name())
	return nil
}

// retry initializes filters that failed earlier at the current size. An
// error is logged only when it differs from the last one seen for that
// filter.
func (p *Processor) retry() {
	for _, f := range p.filters {
		if p.ready[f.Name()] {
			continue
		}
		last, seen := p.failed[f.Name()]
		if err := p.initFilter(f); err != nil && (!seen || last != p.failed[f.Name()]) {
			log.Printf("%v", err)
		}
	}
}

// Initialized reports whether the named filter has been through Init.
func (p *Processor) Initialized(name string) bool {
	return p.ready[name]
}

// enabled returns the filters that take part in a frame: switched on and
// successfully initialized.
func (p *Processor) enabled() []Filter {
	out := make([]Filter, 0, len(p.filters))
	for _, f := range p.filters {
		if f.Enabled() && p.ready[f.Name()] {
			out = append(out, f)
		}
	}
	return out
}

// Draw renders scene through the enabled filters into screen. Filters whose
// Init failed are skipped and retried on the next frame.
func (p *Processor) Draw(screen *ebiten.Image, scene func(*ebiten.Image)) {
	if screen == nil || scene == nil {
		return
	}

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	if w != p.width || h != p.height {
		if err := p.Init(w, h); err != nil {
			log.Printf("%v", err)
		}
	} else {
		p.retry()
	}

	active := p.enabled()
	if len(active) == 0 {
		scene(screen)
		return
	}
	p.ensureBuffers()

	p.scene.Clear()
	scene(p.scene)

	src := p.scene
	for i, f := range active {
		var dst *ebiten.Image
		switch passTarget(i, len(active)) {
		case targetScreen:
			dst = screen
		case targetPing:
			dst = p.ping
		default:
			dst = p.pong
		}
		if dst != screen {
			dst.Clear()
		}
		f.Apply(dst, src)
		src = dst
	}
}

const (
	targetScreen = iota
	targetPing
	targetPong
)

// passTarget picks the output buffer for pass i of n. The last pass writes to
// the screen; earlier passes alternate so no pass reads the buffer it writes.
func passTarget(i, n int) int {
	if i == n-1 {
		return targetScreen
	}
	if i%2 == 1 {
		return targetPong
	}
	return targetPing
}

func (p *Processor) ensureBuffers() {
	if p.scene == nil {
		p.scene = ebiten.NewImage(p.width, p.height)
	}
	if p.ping == nil {
		p.ping = ebiten.NewImage(p.width, p.height)
	}
	if p.pong == nil {
		p.pong = ebiten.NewImage(p.width, p.height)
	}
}

func (p *Processor) releaseBuffers() {
	for _, img := range []*ebiten.Image{p.scene, p.ping, p.pong} {
		if img != nil {
			img.Deallocate()
		}
	}
	p.scene, p.ping, p.pong = nil, nil, nil
}
