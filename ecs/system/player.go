package system

import (
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
)

// PlayerSystem ticks first-person controllers.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (p *PlayerSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.FirstPersonComponent, func(_ ecs.Entity, fp *component.FirstPerson) {
		if fp.Controller == nil {
			return
		}
		fp.Controller.Tick(dt)
	})
}
