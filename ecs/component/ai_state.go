package component

import "github.com/milk9111/warden/ai"

// AIState mirrors the controller state for systems that only read it.
type AIState struct {
	Current  ai.State
	Distance float64
	Waypoint int
	Gating   bool
	Fading   bool
}

var AIStateComponent = NewComponent[AIState]("ai_state")
