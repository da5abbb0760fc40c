package component

// Animator collects animation parameter requests. Triggers are consumed by
// the animation system each frame, which also picks Clip from the Speed blend
// parameter.
type Animator struct {
	Floats   map[string]float64
	Triggers []string
	Last     string
	Clip     string
}

func (a *Animator) SetFloat(name string, v float64) {
	if a.Floats == nil {
		a.Floats = map[string]float64{}
	}
	a.Floats[name] = v
}

func (a *Animator) SetTrigger(name string) {
	a.Triggers = append(a.Triggers, name)
}

var AnimatorComponent = NewComponent[Animator]("animator")
