// Package world is a minimal entity store pairing a papercut.Transform with
// a papercut.Drawable.
//
// Entities are generational ids: a despawned entity's slot is reused, but
// its old id never resolves again. All yields pairs in spawn order, which is
// draw order when the world feeds the scene assembler.
//
// A World is not safe for concurrent use.
package world

import (
	"fmt"
	"iter"

	"github.com/gogpu/papercut"
)

// Entity identifies a spawned (transform, drawable) pair. The zero Entity
// is never returned by Spawn.
type Entity struct {
	index      uint32
	generation uint32
}

// IsZero reports whether e is the zero Entity.
func (e Entity) IsZero() bool { return e.generation == 0 }

// String returns "index:generation".
func (e Entity) String() string { return fmt.Sprintf("%d:%d", e.index, e.generation) }

type slot struct {
	generation uint32
	alive      bool
	transform  papercut.Transform
	drawable   papercut.Drawable
}

// World stores entities. Slots are allocated individually so transform
// pointers stay valid while the world grows.
type World struct {
	slots []*slot
	free  []uint32

	// order holds live entities in spawn order.
	order []Entity
}

// New returns an empty world.
func New() *World {
	return &World{}
}

// Spawn adds a (transform, drawable) pair and returns its id.
func (w *World) Spawn(tr papercut.Transform, d papercut.Drawable) Entity {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots)) //nolint:gosec // entity count fits uint32
		w.slots = append(w.slots, &slot{})
	}

	s := w.slots[idx]
	s.generation++
	if s.generation == 0 {
		// Skip zero so a wrapped generation never aliases the zero Entity.
		s.generation = 1
	}
	s.alive = true
	s.transform = tr
	s.drawable = d

	e := Entity{index: idx, generation: s.generation}
	w.order = append(w.order, e)
	return e
}

// Despawn removes e. It reports false if e is not alive.
func (w *World) Despawn(e Entity) bool {
	s := w.lookup(e)
	if s == nil {
		return false
	}
	s.alive = false
	s.drawable = nil
	s.transform = papercut.Transform{}
	w.free = append(w.free, e.index)

	for i, o := range w.order {
		if o == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether e is alive.
func (w *World) Contains(e Entity) bool {
	return w.lookup(e) != nil
}

// Get returns e's transform, which may be modified in place, and drawable.
// The transform pointer stays valid until e is despawned. ok is false if e
// is not alive.
func (w *World) Get(e Entity) (tr *papercut.Transform, d papercut.Drawable, ok bool) {
	s := w.lookup(e)
	if s == nil {
		return nil, nil, false
	}
	return &s.transform, s.drawable, true
}

// SetDrawable replaces e's drawable. It reports false if e is not alive.
func (w *World) SetDrawable(e Entity, d papercut.Drawable) bool {
	s := w.lookup(e)
	if s == nil {
		return false
	}
	s.drawable = d
	return true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// All yields every live entity's transform and drawable in spawn order.
// Transforms may be modified during iteration; spawning or despawning
// during iteration is not allowed.
func (w *World) All() iter.Seq2[*papercut.Transform, papercut.Drawable] {
	return func(yield func(*papercut.Transform, papercut.Drawable) bool) {
		for _, e := range w.order {
			s := w.slots[e.index]
			if !yield(&s.transform, s.drawable) {
				return
			}
		}
	}
}

// Entities yields every live entity in spawn order.
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range w.order {
			if !yield(e) {
				return
			}
		}
	}
}

// Clear despawns every entity.
func (w *World) Clear() {
	for _, e := range w.order {
		s := w.slots[e.index]
		s.alive = false
		s.drawable = nil
		s.transform = papercut.Transform{}
		w.free = append(w.free, e.index)
	}
	w.order = w.order[:0]
}

func (w *World) lookup(e Entity) *slot {
	if e.IsZero() || int(e.index) >= len(w.slots) {
		return nil
	}
	s := w.slots[e.index]
	if !s.alive || s.generation != e.generation {
		return nil
	}
	return s
}
