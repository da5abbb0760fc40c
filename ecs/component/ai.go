package component

import "github.com/milk9111/warden/ai"

// AI configures an enemy brain. Controller is built by the AI system on the
// first update and rebuilt whenever it is reset to nil.
type AI struct {
	Config ai.Config
	Seed   int64
	// ChaseCue names the Audio clip used as the chase cue.
	ChaseCue   string
	Controller *ai.Controller
	// Err holds the last build failure. The entity is skipped until it is
	// cleared.
	Err error
}

var AIComponent = NewComponent[AI]("ai")
