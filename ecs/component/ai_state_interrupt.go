package component

import "github.com/milk9111/warden/ai"

// AIStateInterrupt is a one-shot request to force an AI into State. The AI
// system consumes and removes it on its next update. ai.Dead kills the agent.
type AIStateInterrupt struct {
	State ai.State
}

var AIStateInterruptComponent = NewComponent[AIStateInterrupt]("ai_state_interrupt")
