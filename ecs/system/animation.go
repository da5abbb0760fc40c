package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warden/ai"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
)

const (
	ClipIdle = "idle"
	ClipWalk = "walk"
	ClipRun  = "run"
)

type AnimationSystem struct {
	log *zap.Logger
}

func NewAnimationSystem(log *zap.Logger) *AnimationSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnimationSystem{log: log}
}

func (a *AnimationSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach(w, component.AnimatorComponent, func(e ecs.Entity, anim *component.Animator) {
		clip := blendClip(anim.Floats[ai.ParamSpeed])
		if clip != anim.Clip {
			a.log.Debug("animation: clip", zap.Stringer("entity", e), zap.String("from", anim.Clip), zap.String("to", clip))
			anim.Clip = clip
		}

		for _, trig := range anim.Triggers {
			a.log.Debug("animation: trigger", zap.Stringer("entity", e), zap.String("trigger", trig))
			anim.Last = trig
		}
		anim.Triggers = anim.Triggers[:0]
	})
}

// blendClip maps the Speed blend parameter (0 idle, 0.5 walk, 1 run) to the
// nearest clip.
func blendClip(speed float64) string {
	switch {
	case speed < (ai.SpeedIdle+ai.SpeedWalk)/2:
		return ClipIdle
	case speed < (ai.SpeedWalk+ai.SpeedRun)/2:
		return ClipWalk
	default:
		return ClipRun
	}
}
