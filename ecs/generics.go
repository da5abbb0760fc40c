package ecs

import (
	"fmt"

	"github.com/milk9111/warden/ecs/component"
)

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops all of its components.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns live entities in slot order.
func Entities(w *World) []Entity {
	return w.entities.live()
}

func Add[T any](w *World, e Entity, h component.ComponentHandle[T], v *T) error {
	if !h.Valid() {
		return component.ErrInvalidHandle
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	if v == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, h.Name())
	}
	w.store(h.ID(), true).Set(e, v)
	return nil
}

func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	s := w.store(h.ID(), false)
	if s == nil {
		return nil, false
	}
	v, ok := s.Get(e).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return w.store(h.ID(), false).Has(e)
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return w.store(h.ID(), false).Remove(e)
}

// ForEach visits every entity holding h. fn may add or remove components of
// other kinds but must not remove h from entities.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(Entity, *T)) {
	s := w.store(h.ID(), false)
	if s == nil {
		return
	}
	ents := append([]Entity(nil), s.Entities()...)
	for _, e := range ents {
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := Get(w, e, hb); ok {
			fn(e, a, b)
		}
	})
}

// First returns the lowest-slot entity holding h.
func First[T any](w *World, h component.ComponentHandle[T]) (Entity, bool) {
	s := w.store(h.ID(), false)
	if s.Len() == 0 {
		return 0, false
	}
	best := s.Entities()[0]
	for _, e := range s.Entities()[1:] {
		if e.id() < best.id() {
			best = e
		}
	}
	return best, true
}

// Query returns entities holding every listed component kind, ordered by the
// first kind's storage.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if len(ids) == 0 {
		return nil
	}
	base := w.store(ids[0], false)
	if base == nil {
		return nil
	}
	out := make([]Entity, 0, base.Len())
	for _, e := range base.Entities() {
		match := true
		for _, id := range ids[1:] {
			if !w.store(id, false).Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
