package main

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

const (
	gravity   = 600.0
	wallWidth = 4.0
	boxCount  = 24
)

var palette = []color.RGBA{
	colornames.Crimson,
	colornames.Gold,
	colornames.Seagreen,
	colornames.Royalblue,
	colornames.Orchid,
	colornames.Lightgrey,
}

type box struct {
	body *cp.Body
	w, h float64
	col  color.RGBA
}

// physicsScene is a box of tumbling crates: something with color and motion
// for the filters to work on.
type physicsScene struct {
	space *cp.Space
	boxes []*box
	w, h  float64
	rng   *rand.Rand
	pixel *ebiten.Image
}

func newPhysicsScene(w, h float64) *physicsScene {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	s := &physicsScene{
		space: space,
		w:     w,
		h:     h,
		rng:   rand.New(rand.NewSource(1)),
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: h}, b: cp.Vector{X: w, Y: h}}, // floor
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}}, // left
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}}, // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(space.StaticBody, seg.a, seg.b, wallWidth)
		shape.SetFriction(0.8)
		shape.SetElasticity(0.4)
		space.AddShape(shape)
	}

	for i := 0; i < boxCount; i++ {
		s.spawn(i)
	}
	return s
}

func (s *physicsScene) spawn(i int) {
	bw := 24 + s.rng.Float64()*40
	bh := 24 + s.rng.Float64()*40
	mass := bw * bh / 400

	body := cp.NewBody(mass, cp.MomentForBox(mass, bw, bh))
	body.SetPosition(cp.Vector{X: 40 + s.rng.Float64()*(s.w-80), Y: -s.rng.Float64() * s.h})
	body.SetAngularVelocity(s.rng.Float64()*4 - 2)
	shape := cp.NewBox(body, bw, bh, 0)
	shape.SetFriction(0.6)
	shape.SetElasticity(0.3)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.boxes = append(s.boxes, &box{body: body, w: bw, h: bh, col: palette[i%len(palette)]})
}

// Kick throws every crate upwards.
func (s *physicsScene) Kick() {
	for _, b := range s.boxes {
		b.body.SetVelocity(s.rng.Float64()*200-100, -400-s.rng.Float64()*300)
	}
}

func (s *physicsScene) Update() {
	s.space.Step(1.0 / 60.0)
	for _, b := range s.boxes {
		if b.body.Position().Y > s.h*2 {
			b.body.SetPosition(cp.Vector{X: s.w / 2, Y: -b.h})
			b.body.SetVelocity(0, 0)
		}
	}
}

func (s *physicsScene) Draw(dst *ebiten.Image) {
	dst.Fill(colornames.Slategray)
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	for _, b := range s.boxes {
		pos := b.body.Position()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(b.w, b.h)
		op.GeoM.Rotate(b.body.Angle())
		op.GeoM.Translate(pos.X, pos.Y)
		op.ColorScale.ScaleWithColor(b.col)
		dst.DrawImage(s.pixel, op)
	}
}
