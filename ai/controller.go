package ai

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/warden/common"
)

// Controller is a single agent's behavior state machine. It is not safe for
// concurrent use; drive it from one per-frame loop.
type Controller struct {
	cfg  Config
	nav  Navigator
	body Body
	anim Animator
	cue  Cue
	rng  Rand
	log  *zap.Logger

	state      State
	started    bool
	player     common.Vec3
	distance   float64
	waypoint   int
	baseVolume float64

	gate rotationGate
	fade fadeOut

	onTransition func(from, to State)
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTransitionHook registers fn to run after every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) {
		c.onTransition = fn
	}
}

func New(cfg Config, deps Deps, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Nav == nil {
		return nil, fmt.Errorf("%w: navigator", ErrMissingDep)
	}
	if deps.Body == nil {
		return nil, fmt.Errorf("%w: body", ErrMissingDep)
	}

	c := &Controller{
		cfg:      cfg,
		nav:      deps.Nav,
		body:     deps.Body,
		anim:     deps.Animator,
		cue:      deps.Cue,
		rng:      deps.Rand,
		log:      zap.NewNop(),
		waypoint: -1,
	}
	c.cfg.Waypoints = append([]common.Vec3(nil), cfg.Waypoints...)
	if c.anim == nil {
		c.anim = nopAnimator{}
	}
	if c.rng == nil {
		c.rng = globalRand{}
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cue != nil {
		c.baseVolume = c.cue.Volume()
	}
	return c, nil
}

func (c *Controller) State() State { return c.state }

// Distance is the player distance measured on the last tick.
func (c *Controller) Distance() float64 { return c.distance }

// Waypoint is the index of the current patrol waypoint, or -1.
func (c *Controller) Waypoint() int { return c.waypoint }

// Gating reports whether the agent is held in place turning to a waypoint.
func (c *Controller) Gating() bool { return c.gate.active }

// Fading reports whether the chase cue is fading out.
func (c *Controller) Fading() bool { return c.fade.active }

// Tick advances the controller by one frame.
func (c *Controller) Tick(player common.Vec3, dt float64) {
	c.tick(player, player.Dist(c.body.Position()), dt)
}

// TickUnseen advances a frame with no player in the world. The player counts
// as infinitely far away.
func (c *Controller) TickUnseen(dt float64) {
	c.tick(c.player, math.Inf(1), dt)
}

func (c *Controller) tick(player common.Vec3, distance, dt float64) {
	if !c.started {
		c.start()
	}

	c.player = player
	c.distance = distance

	if c.state != Dead {
		c.transition(c.nextState(c.distance))
	}

	c.act(dt)
	c.stepGate(dt)
	c.fade.step(c.cue, dt)
}

// NotifyDeath moves the controller to Dead. Nothing leaves Dead.
func (c *Controller) NotifyDeath() {
	c.started = true
	c.transition(Dead)
}

// Interrupt forces entry into s. The distance rules run again on the next
// tick, so this is meant for one-frame states such as Idle and Cutscene.
// Undeclared states are ignored.
func (c *Controller) Interrupt(s State) {
	if !s.Valid() {
		c.log.Debug("ai: ignoring interrupt", zap.Stringer("state", s))
		return
	}
	if c.state == Dead {
		return
	}
	if s == Dead {
		c.NotifyDeath()
		return
	}
	c.started = true
	c.transition(s)
}

func (c *Controller) start() {
	c.started = true
	if len(c.cfg.Waypoints) > 0 {
		c.state = Patrol
		c.enter(Patrol)
		return
	}
	c.state = Idle
	c.enter(Idle)
}

func (c *Controller) nextState(d float64) State {
	switch {
	case d <= c.cfg.AttackRange:
		return Attack
	case d <= c.cfg.ChaseRange:
		return Chase
	default:
		return Patrol
	}
}

func (c *Controller) transition(next State) {
	if next == c.state || c.state == Dead {
		return
	}
	prev := c.state
	c.exit(prev)
	c.state = next
	c.enter(next)

	c.log.Debug("ai: state change",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Float64("distance", c.distance),
	)
	if c.onTransition != nil {
		c.onTransition(prev, next)
	}
}

func (c *Controller) exit(s State) {
	if s == Chase {
		c.beginFade()
	}
}

func (c *Controller) enter(s State) {
	switch s {
	case Idle:
		c.gate.cancel()
		c.nav.SetStopped(true)
		c.anim.SetFloat(ParamSpeed, SpeedIdle)
	case Patrol:
		c.nav.SetStopped(false)
		c.nav.SetSpeed(c.cfg.PatrolSpeed)
		c.anim.SetFloat(ParamSpeed, SpeedWalk)
		c.nextWaypoint()
	case Chase:
		c.gate.cancel()
		c.fade.cancel()
		c.nav.SetStopped(false)
		c.nav.SetSpeed(c.cfg.ChaseSpeed)
		c.anim.SetFloat(ParamSpeed, SpeedRun)
		if c.cue != nil {
			c.cue.SetVolume(c.baseVolume)
			c.cue.Play()
		}
	case Attack:
		c.gate.cancel()
		c.nav.SetStopped(true)
		c.anim.SetTrigger(TriggerAttack)
	case Cutscene:
		c.gate.cancel()
		c.log.Debug("ai: triggering cutscene")
	case Dead:
		c.gate.cancel()
		c.nav.SetStopped(true)
		c.anim.SetTrigger(TriggerDeath)
	}
}

func (c *Controller) act(dt float64) {
	switch c.state {
	case Idle:
		c.nav.SetStopped(true)
		c.anim.SetFloat(ParamSpeed, SpeedIdle)
	case Patrol:
		c.patrol()
	case Chase:
		c.nav.SetStopped(false)
		c.nav.SetDestination(c.player)
		if c.cue != nil && !c.cue.IsPlaying() {
			c.cue.Play()
		}
		c.face(c.player, c.cfg.CombatTurnRate, dt)
	case Attack:
		c.nav.SetStopped(true)
		c.face(c.player, c.cfg.CombatTurnRate, dt)
	case Dead:
		c.nav.SetStopped(true)
	}
}

func (c *Controller) patrol() {
	if c.gate.active || len(c.cfg.Waypoints) == 0 {
		return
	}
	if !c.nav.PathPending() && c.nav.RemainingDistance() < c.cfg.ArrivalDistance {
		c.nextWaypoint()
	}
}

// nextWaypoint picks a random waypoint, requests a path to it and holds the
// agent until it faces the destination.
func (c *Controller) nextWaypoint() {
	n := len(c.cfg.Waypoints)
	if n == 0 {
		c.nav.SetStopped(true)
		c.anim.SetFloat(ParamSpeed, SpeedIdle)
		return
	}

	c.waypoint = c.rng.Intn(n)
	dest := c.cfg.Waypoints[c.waypoint]
	c.nav.SetDestination(dest)
	c.nav.SetStopped(true)
	c.anim.SetFloat(ParamSpeed, SpeedIdle)
	c.gate.begin(dest)

	c.log.Debug("ai: patrolling to waypoint",
		zap.Int("index", c.waypoint),
		zap.Float64("x", dest.X),
		zap.Float64("y", dest.Y),
		zap.Float64("z", dest.Z),
	)
}

func (c *Controller) beginFade() {
	if c.cue == nil || !c.cue.IsPlaying() {
		return
	}
	c.fade.begin(c.cue, c.cfg.FadeDuration)
}

// heading is the agent's facing with the rig offset removed.
func (c *Controller) heading() float64 {
	return common.WrapAngle(c.body.Heading() - common.Deg2Rad(c.cfg.YawOffset))
}

func (c *Controller) setHeading(yaw float64) {
	c.body.SetHeading(common.WrapAngle(yaw + common.Deg2Rad(c.cfg.YawOffset)))
}

// face smooths the heading toward target. rate is the fraction of the
// remaining arc covered per second.
func (c *Controller) face(target common.Vec3, rate, dt float64) {
	dir := target.Sub(c.body.Position()).Flat()
	if dir.IsZero() {
		return
	}
	c.setHeading(common.TurnToward(c.heading(), common.Yaw(dir), dt*rate))
}
