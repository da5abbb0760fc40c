package ai

import "github.com/milk9111/warden/common"

type fakeNav struct {
	dest      common.Vec3
	speed     float64
	stopped   bool
	pending   bool
	remaining float64
	dests     []common.Vec3
}

func (n *fakeNav) SetDestination(p common.Vec3) {
	n.dest = p
	n.dests = append(n.dests, p)
}
func (n *fakeNav) Destination() common.Vec3 { return n.dest }
func (n *fakeNav) SetSpeed(s float64) { n.speed = s }
func (n *fakeNav) SetStopped(s bool) { n.stopped = s }
func (n *fakeNav) PathPending() bool { return n.pending }
func (n *fakeNav) RemainingDistance() float64 { return n.remaining }

type fakeBody struct {
	pos common.Vec3
	yaw float64
}

func (b *fakeBody) Position() common.Vec3 { return b.pos }
func (b *fakeBody) Heading() float64 { return b.yaw }
func (b *fakeBody) SetHeading(yaw float64) { b.yaw = yaw }

type fakeAnimator struct {
	floats   map[string]float64
	triggers []string
}

func (a *fakeAnimator) SetFloat(name string, v float64) {
	if a.floats == nil {
		a.floats = map[string]float64{}
	}
	a.floats[name] = v
}

func (a *fakeAnimator) SetTrigger(name string) {
	a.triggers = append(a.triggers, name)
}

type fakeCue struct {
	playing bool
	volume  float64
	plays   int
	stops   int
	history []float64
}

func (c *fakeCue) Play() {
	c.playing = true
	c.plays++
}

func (c *fakeCue) Stop() {
	c.playing = false
	c.stops++
}

func (c *fakeCue) IsPlaying() bool { return c.playing }
func (c *fakeCue) Volume() float64 { return c.volume }

func (c *fakeCue) SetVolume(v float64) {
	c.volume = v
	c.history = append(c.history, v)
}

// seqRand replays a fixed index sequence.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

type rig struct {
	nav  *fakeNav
	body *fakeBody
	anim *fakeAnimator
	cue  *fakeCue
	rng  *seqRand
}

func newRig() *rig {
	return &rig{
		nav:  &fakeNav{},
		body: &fakeBody{},
		anim: &fakeAnimator{},
		cue:  &fakeCue{volume: 0.8},
		rng:  &seqRand{},
	}
}

func (r *rig) deps() Deps {
	return Deps{Nav: r.nav, Body: r.body, Animator: r.anim, Cue: r.cue, Rand: r.rng}
}

func route() []common.Vec3 {
	return []common.Vec3{{X: 10}, {Z: -10}, {X: -10, Z: 10}}
}

func at(d float64) common.Vec3 {
	return common.Vec3{Z: d}
}
