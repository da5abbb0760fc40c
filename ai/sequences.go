package ai

import (
	"math"

	"github.com/milk9111/warden/common"
)

// rotationGate holds a patrolling agent until it faces its destination.
type rotationGate struct {
	active bool
	target common.Vec3
}

func (g *rotationGate) begin(target common.Vec3) {
	g.active = true
	g.target = target
}

func (g *rotationGate) cancel() {
	g.active = false
}

func (c *Controller) stepGate(dt float64) {
	if !c.gate.active {
		return
	}
	if c.facing(c.gate.target) {
		c.gate.active = false
		c.anim.SetFloat(ParamSpeed, SpeedWalk)
		c.nav.SetStopped(false)
		return
	}
	c.face(c.gate.target, c.cfg.PatrolTurnRate, dt)
}

// facing reports whether the heading is within tolerance of the bearing to
// target. A target directly above or below counts as faced.
func (c *Controller) facing(target common.Vec3) bool {
	dir := target.Sub(c.body.Position()).Flat()
	if dir.IsZero() {
		return true
	}
	off := math.Abs(common.AngleDiff(c.heading(), common.Yaw(dir)))
	return common.Rad2Deg(off) <= c.cfg.HeadingTolerance
}

// fadeOut ramps a cue linearly to silence and then stops it.
type fadeOut struct {
	active   bool
	start    float64
	elapsed  float64
	duration float64
}

func (f *fadeOut) begin(cue Cue, duration float64) {
	f.active = true
	f.start = cue.Volume()
	f.elapsed = 0
	f.duration = duration
}

func (f *fadeOut) cancel() {
	f.active = false
}

func (f *fadeOut) step(cue Cue, dt float64) {
	if !f.active || cue == nil {
		return
	}
	f.elapsed += dt
	if f.elapsed >= f.duration {
		cue.SetVolume(0)
		cue.Stop()
		f.active = false
		return
	}
	cue.SetVolume(common.Lerp(f.start, 0, f.elapsed/f.duration))
}
