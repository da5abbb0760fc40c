package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/milk9111/warden/ai"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
)

type AISystem struct {
	log *zap.Logger
}

func NewAISystem(log *zap.Logger) *AISystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AISystem{log: log}
}

func (s *AISystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	var playerPos common.Vec3
	playerFound := false
	if playerEnt, ok := ecs.First(w, component.PlayerTagComponent); ok {
		if pt, ok := ecs.Get(w, playerEnt, component.TransformComponent); ok {
			playerPos = pt.Position
			playerFound = true
		}
	}

	entities := ecs.Query(w,
		component.AITagComponent.ID(),
		component.AIComponent.ID(),
		component.TransformComponent.ID(),
		component.NavAgentComponent.ID(),
	)
	for _, ent := range entities {
		aiComp, ok := ecs.Get(w, ent, component.AIComponent)
		if !ok {
			continue
		}

		if aiComp.Err != nil {
			continue
		}
		if aiComp.Controller == nil {
			ctrl, err := s.build(w, ent, aiComp)
			if err != nil {
				s.log.Error("ai: build controller", zap.Stringer("entity", ent), zap.Error(err))
				aiComp.Err = err
				continue
			}
			aiComp.Controller = ctrl
		}
		ctrl := aiComp.Controller

		// Consume any one-shot AI interrupt (e.g. from combat)
		if irq, ok := ecs.Get(w, ent, component.AIStateInterruptComponent); ok {
			if irq.State == ai.Dead {
				ctrl.NotifyDeath()
			} else {
				ctrl.Interrupt(irq.State)
			}
			ecs.Remove(w, ent, component.AIStateInterruptComponent)
		}

		if playerFound {
			ctrl.Tick(playerPos, dt)
		} else {
			ctrl.TickUnseen(dt)
		}

		state, ok := ecs.Get(w, ent, component.AIStateComponent)
		if !ok {
			state = &component.AIState{}
			_ = ecs.Add(w, ent, component.AIStateComponent, state)
		}
		state.Current = ctrl.State()
		state.Distance = ctrl.Distance()
		state.Waypoint = ctrl.Waypoint()
		state.Gating = ctrl.Gating()
		state.Fading = ctrl.Fading()
	}
}

func (s *AISystem) build(w *ecs.World, ent ecs.Entity, aiComp *component.AI) (*ai.Controller, error) {
	transform, _ := ecs.Get(w, ent, component.TransformComponent)
	nav, _ := ecs.Get(w, ent, component.NavAgentComponent)

	deps := ai.Deps{
		Nav:  nav,
		Body: body{transform},
	}
	if anim, ok := ecs.Get(w, ent, component.AnimatorComponent); ok {
		deps.Animator = anim
	}
	if audioComp, ok := ecs.Get(w, ent, component.AudioComponent); ok {
		if cue := audioComp.Cue(aiComp.ChaseCue); cue != nil {
			deps.Cue = cue
		}
	}
	if aiComp.Seed != 0 {
		deps.Rand = rand.New(rand.NewSource(aiComp.Seed))
	}

	log := s.log.With(zap.Stringer("entity", ent))
	var ctrl *ai.Controller
	hook := func(from, to ai.State) {
		w.Events().Push(ecs.Event{
			Type: ecs.EventAIStateChanged,
			Data: ecs.AIStateChanged{
				Entity:   ent,
				From:     from.String(),
				To:       to.String(),
				Distance: ctrl.Distance(),
			},
		})
	}

	ctrl, err := ai.New(aiComp.Config, deps, ai.WithLogger(log), ai.WithTransitionHook(hook))
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}

// body adapts a Transform to ai.Body.
type body struct {
	t *component.Transform
}

func (b body) Position() common.Vec3 { return b.t.Position }
func (b body) Heading() float64 { return b.t.Heading() }
func (b body) SetHeading(yaw float64) { b.t.SetHeading(yaw) }
