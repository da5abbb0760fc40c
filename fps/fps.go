// Package fps is a first-person character controller: axis-driven walking and
// running on the ground plane, jumping under gravity, mouse look with a
// clamped pitch and footstep audio that follows the locomotion mode.
package fps

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/warden/common"
)

var (
	ErrInvalidConfig = errors.New("fps: invalid config")
	ErrMissingDep    = errors.New("fps: missing dependency")
)

type Config struct {
	WalkingSpeed  float64
	RunningSpeed  float64
	JumpSpeed     float64
	Gravity       float64
	LookSpeed     float64
	LookXLimit    float64 // degrees
	MoveThreshold float64
}

func DefaultConfig() Config {
	return Config{
		WalkingSpeed:  7.5,
		RunningSpeed:  11.5,
		JumpSpeed:     8,
		Gravity:       20,
		LookSpeed:     2,
		LookXLimit:    45,
		MoveThreshold: 0.1,
	}
}

func (c Config) Validate() error {
	if c.WalkingSpeed < 0 || c.RunningSpeed < 0 || c.JumpSpeed < 0 {
		return fmt.Errorf("%w: negative speed", ErrInvalidConfig)
	}
	if c.Gravity < 0 {
		return fmt.Errorf("%w: negative gravity", ErrInvalidConfig)
	}
	if c.LookXLimit < 0 || c.LookXLimit > 90 {
		return fmt.Errorf("%w: look limit %v outside [0, 90]", ErrInvalidConfig, c.LookXLimit)
	}
	return nil
}

// Input is one frame of player intent. Axes are in [-1, 1]; look deltas are
// raw mouse units.
type Input interface {
	Vertical() float64
	Horizontal() float64
	Running() bool
	Jump() bool
	LookX() float64
	LookY() float64
}

// Mover applies a displacement with collision and reports ground contact.
type Mover interface {
	Move(delta common.Vec3)
	Grounded() bool
}

// Body is the rotating part of the character. Heading is yaw in radians.
type Body interface {
	Heading() float64
	SetHeading(yaw float64)
}

// Cue is a footstep loop.
type Cue interface {
	Play()
	Stop()
	IsPlaying() bool
}

type Deps struct {
	Input Input
	Mover Mover
	Body  Body
	Walk  Cue
	Run   Cue
}

type Controller struct {
	cfg   Config
	deps  Deps
	log   *zap.Logger
	move  common.Vec3
	pitch float64
	sound Cue

	// CanMove gates locomotion, jumping and look.
	CanMove bool
}

func New(cfg Config, deps Deps, log *zap.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Input == nil || deps.Mover == nil || deps.Body == nil {
		return nil, fmt.Errorf("%w: input, mover and body are required", ErrMissingDep)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{cfg: cfg, deps: deps, log: log, CanMove: true}, nil
}

// Velocity is the last frame's intended velocity.
func (c *Controller) Velocity() common.Vec3 { return c.move }

// Pitch is the camera pitch in degrees; negative looks up.
func (c *Controller) Pitch() float64 { return c.pitch }

func (c *Controller) Tick(dt float64) {
	in := c.deps.Input
	yaw := c.deps.Body.Heading()
	forward := common.Forward(yaw)
	right := common.Forward(yaw + math.Pi/2)

	running := in.Running()
	speed := c.cfg.WalkingSpeed
	if running {
		speed = c.cfg.RunningSpeed
	}
	var curX, curY float64
	if c.CanMove {
		curX = speed * in.Vertical()
		curY = speed * in.Horizontal()
	}

	vy := c.move.Y
	grounded := c.deps.Mover.Grounded()
	c.move = forward.Scale(curX).Add(right.Scale(curY))
	if in.Jump() && c.CanMove && grounded {
		c.move.Y = c.cfg.JumpSpeed
	} else {
		c.move.Y = vy
	}
	if !grounded {
		c.move.Y -= c.cfg.Gravity * dt
	}

	c.deps.Mover.Move(c.move.Scale(dt))

	if c.CanMove {
		c.pitch = common.Clamp(c.pitch-in.LookY()*c.cfg.LookSpeed, -c.cfg.LookXLimit, c.cfg.LookXLimit)
		c.deps.Body.SetHeading(common.WrapAngle(yaw + common.Deg2Rad(in.LookX()*c.cfg.LookSpeed)))
	}

	c.footsteps(running)
}

func (c *Controller) footsteps(running bool) {
	in := c.deps.Input
	moving := math.Abs(in.Vertical()) > c.cfg.MoveThreshold || math.Abs(in.Horizontal()) > c.cfg.MoveThreshold
	if !moving || !c.CanMove {
		if c.sound != nil && c.sound.IsPlaying() {
			c.sound.Stop()
		}
		return
	}

	next := c.deps.Walk
	if running {
		next = c.deps.Run
	}
	c.play(next)
}

// play switches the footstep loop to next, stopping a different one first.
func (c *Controller) play(next Cue) {
	if c.sound != nil && c.sound != next && c.sound.IsPlaying() {
		c.sound.Stop()
	}
	if next == nil {
		c.sound = nil
		return
	}
	if !next.IsPlaying() {
		next.Play()
		c.log.Debug("fps: footsteps", zap.Bool("running", c.deps.Run == next))
	}
	c.sound = next
}
