package main

// inputStep holds one input for Frames frames.
type inputStep struct {
	Frames   int
	Vertical float64
	Running  bool
}

// patrolWalk starts the player outside chase range, walks it onto the enemy
// and runs back out, then repeats.
var patrolWalk = []inputStep{
	{Frames: 120},
	{Frames: 240, Vertical: 1},
	{Frames: 60},
	{Frames: 240, Vertical: -1, Running: true},
}

// scriptedInput replays a step list as fps.Input. Advance moves to the next
// frame.
type scriptedInput struct {
	steps []inputStep
	step  int
	frame int
}

func newScriptedInput(steps []inputStep) *scriptedInput {
	return &scriptedInput{steps: steps}
}

func (s *scriptedInput) current() inputStep {
	if len(s.steps) == 0 {
		return inputStep{}
	}
	return s.steps[s.step]
}

func (s *scriptedInput) Advance() {
	if len(s.steps) == 0 {
		return
	}
	s.frame++
	if s.frame >= s.steps[s.step].Frames {
		s.frame = 0
		s.step = (s.step + 1) % len(s.steps)
	}
}

func (s *scriptedInput) Vertical() float64 { return s.current().Vertical }
func (s *scriptedInput) Horizontal() float64 { return 0 }
func (s *scriptedInput) Running() bool { return s.current().Running }
func (s *scriptedInput) Jump() bool { return false }
func (s *scriptedInput) LookX() float64 { return 0 }
func (s *scriptedInput) LookY() float64 { return 0 }
