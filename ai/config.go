package ai

import (
	"errors"
	"fmt"

	"github.com/milk9111/warden/common"
)

var (
	ErrUnknownState  = errors.New("ai: unknown state")
	ErrInvalidConfig = errors.New("ai: invalid config")
	ErrMissingDep    = errors.New("ai: missing dependency")
)

// Animation parameter names written to the Animator.
const (
	ParamSpeed    = "Speed"
	TriggerAttack = "Attack"
	TriggerDeath  = "Death"
)

// Locomotion blend values for ParamSpeed.
const (
	SpeedIdle = 0.0
	SpeedWalk = 0.5
	SpeedRun  = 1.0
)

// Config tunes a Controller. Distances are world units, durations seconds,
// angles degrees.
type Config struct {
	Waypoints        []common.Vec3
	PatrolSpeed      float64
	ChaseSpeed       float64
	AttackRange      float64
	ChaseRange       float64
	FadeDuration     float64
	ArrivalDistance  float64
	HeadingTolerance float64
	PatrolTurnRate   float64
	CombatTurnRate   float64
	// YawOffset is added to every heading written to the Body. Use it for
	// rigs whose model forward is not +Z.
	YawOffset float64
}

func DefaultConfig() Config {
	return Config{
		PatrolSpeed:      2,
		ChaseSpeed:       5,
		AttackRange:      2,
		ChaseRange:       10,
		FadeDuration:     1,
		ArrivalDistance:  0.5,
		HeadingTolerance: 1,
		PatrolTurnRate:   5,
		CombatTurnRate:   10,
	}
}

func (c Config) Validate() error {
	switch {
	case c.AttackRange < 0:
		return fmt.Errorf("%w: attack range %v is negative", ErrInvalidConfig, c.AttackRange)
	case c.ChaseRange < c.AttackRange:
		return fmt.Errorf("%w: chase range %v below attack range %v", ErrInvalidConfig, c.ChaseRange, c.AttackRange)
	case c.PatrolSpeed < 0 || c.ChaseSpeed < 0:
		return fmt.Errorf("%w: negative speed", ErrInvalidConfig)
	case c.FadeDuration < 0:
		return fmt.Errorf("%w: fade duration %v is negative", ErrInvalidConfig, c.FadeDuration)
	case c.ArrivalDistance < 0:
		return fmt.Errorf("%w: arrival distance %v is negative", ErrInvalidConfig, c.ArrivalDistance)
	case c.HeadingTolerance <= 0:
		return fmt.Errorf("%w: heading tolerance must be positive", ErrInvalidConfig)
	case c.PatrolTurnRate <= 0 || c.CombatTurnRate <= 0:
		return fmt.Errorf("%w: turn rates must be positive", ErrInvalidConfig)
	}
	return nil
}
