package ai

import (
	"fmt"
	"strings"
)

// State identifies the active behavior of a controller.
type State int

const (
	Idle State = iota
	Patrol
	Chase
	Attack
	Cutscene
	Dead
)

var stateNames = [...]string{
	Idle:     "idle",
	Patrol:   "patrol",
	Chase:    "chase",
	Attack:   "attack",
	Cutscene: "cutscene",
	Dead:     "dead",
}

// States lists every state in declaration order.
func States() []State {
	return []State{Idle, Patrol, Chase, Attack, Cutscene, Dead}
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	return s >= Idle && s <= Dead
}

// ParseState accepts a state name case-insensitively.
func ParseState(name string) (State, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == clean {
			return State(i), nil
		}
	}
	return Idle, fmt.Errorf("%w: %q", ErrUnknownState, name)
}
