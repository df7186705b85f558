package main

import (
	"iter"
	"time"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/world"
)

// sceneGame draws a world, turning spinning entities and fading pulsing
// ones.
type sceneGame struct {
	world   *world.World
	anim    animations
	elapsed time.Duration

	// maxSteps stops the game after that many fixed updates; zero runs
	// forever.
	maxSteps int
	steps    int
}

func newSceneGame(s *sceneFile) (*sceneGame, error) {
	w := world.New()
	anim, err := s.populate(w)
	if err != nil {
		return nil, err
	}
	return &sceneGame{world: w, anim: anim}, nil
}

func (g *sceneGame) Init(e *papercut.Engine) error {
	t := e.Tessellator()
	for _, d := range g.world.All() {
		d.Update(t)
	}
	return nil
}

func (g *sceneGame) FixedUpdate(e *papercut.Engine, dt time.Duration) bool {
	g.elapsed += dt
	for ent, rate := range g.anim.spins {
		if tr, _, ok := g.world.Get(ent); ok {
			tr.Rotation += rate * dt.Seconds()
		}
	}
	for ent, p := range g.anim.pulses {
		if _, d, ok := g.world.Get(ent); ok && setFill(d, p.at(g.elapsed.Seconds())) {
			d.Update(e.Tessellator())
		}
	}
	g.steps++
	return g.maxSteps == 0 || g.steps < g.maxSteps
}

func (g *sceneGame) Drawables() iter.Seq2[*papercut.Transform, papercut.Drawable] {
	return g.world.All()
}
