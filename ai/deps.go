package ai

import (
	"math/rand"

	"github.com/milk9111/warden/common"
)

// Navigator is the pathfinding agent a controller issues destinations to.
type Navigator interface {
	SetDestination(p common.Vec3)
	Destination() common.Vec3
	SetSpeed(speed float64)
	SetStopped(stopped bool)
	PathPending() bool
	RemainingDistance() float64
}

// Body exposes the controlled agent's transform. Heading is yaw in radians.
type Body interface {
	Position() common.Vec3
	Heading() float64
	SetHeading(yaw float64)
}

// Animator receives animation parameter requests.
type Animator interface {
	SetFloat(name string, v float64)
	SetTrigger(name string)
}

// Cue is a looping audio source. Volume is linear in [0, 1].
type Cue interface {
	Play()
	Stop()
	IsPlaying() bool
	Volume() float64
	SetVolume(v float64)
}

// Rand picks waypoint indices. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Deps are the collaborators a Controller drives. Nav and Body are required.
type Deps struct {
	Nav      Navigator
	Body     Body
	Animator Animator
	Cue      Cue
	Rand     Rand
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

type nopAnimator struct{}

func (nopAnimator) SetFloat(string, float64) {}
func (nopAnimator) SetTrigger(string) {}
