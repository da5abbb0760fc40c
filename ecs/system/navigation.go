package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
)

const navEpsilon = 1e-6

// NavigationSystem moves nav agents straight toward their active destination
// on the XZ plane. Each agent is a kinematic body in a gravity-free space.
// A new destination stays pending for one frame before it is followed.
type NavigationSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*cp.Body
}

func NewNavigationSystem() *NavigationSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &NavigationSystem{
		space:  space,
		bodies: map[ecs.Entity]*cp.Body{},
	}
}

func (n *NavigationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	seen := make(map[ecs.Entity]struct{}, len(n.bodies))
	ecs.ForEach2(w, component.NavAgentComponent, component.TransformComponent, func(e ecs.Entity, nav *component.NavAgent, t *component.Transform) {
		seen[e] = struct{}{}
		body := n.bodyFor(e)
		// Other systems may teleport the transform.
		body.SetPosition(toPlane(t.Position))
		body.SetVelocityVector(n.velocity(nav, body.Position(), dt))
	})

	for e, body := range n.bodies {
		if _, ok := seen[e]; ok {
			continue
		}
		n.space.RemoveBody(body)
		delete(n.bodies, e)
	}

	if dt > 0 {
		n.space.Step(dt)
	}

	ecs.ForEach2(w, component.NavAgentComponent, component.TransformComponent, func(e ecs.Entity, nav *component.NavAgent, t *component.Transform) {
		body, ok := n.bodies[e]
		if !ok {
			return
		}
		p := body.Position()
		t.Position.X = p.X
		t.Position.Z = p.Y

		nav.Resolve()
		if dest, ok := nav.Active(); ok {
			nav.Remaining = toPlane(dest).Distance(p)
		} else {
			nav.Remaining = 0
		}
	})
}

// Bodies reports how many agents are simulated.
func (n *NavigationSystem) Bodies() int {
	return len(n.bodies)
}

func (n *NavigationSystem) bodyFor(e ecs.Entity) *cp.Body {
	if body, ok := n.bodies[e]; ok {
		return body
	}
	body := n.space.AddBody(cp.NewKinematicBody())
	n.bodies[e] = body
	return body
}

func (n *NavigationSystem) velocity(nav *component.NavAgent, from cp.Vector, dt float64) cp.Vector {
	if nav.Stopped || nav.Speed <= 0 || dt <= 0 {
		return cp.Vector{}
	}
	dest, ok := nav.Active()
	if !ok {
		return cp.Vector{}
	}
	to := toPlane(dest).Sub(from)
	dist := to.Length()
	if dist < navEpsilon {
		return cp.Vector{}
	}
	// Never overshoot the destination in a single step.
	speed := math.Min(nav.Speed, dist/dt)
	return to.Mult(speed / dist)
}

func toPlane(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}
