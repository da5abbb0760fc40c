package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warden/ecs"
)

// EventLogSystem drains world events, logs them and counts state entries.
// Register it last so it sees every event of the frame.
type EventLogSystem struct {
	log    *zap.Logger
	counts map[string]int
	total  int
}

func NewEventLogSystem(log *zap.Logger) *EventLogSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventLogSystem{log: log, counts: map[string]int{}}
}

func (s *EventLogSystem) Update(w *ecs.World, _ float64) {
	for _, evt := range w.Events().Drain() {
		switch data := evt.Data.(type) {
		case ecs.AIStateChanged:
			s.counts[data.To]++
			s.total++
			s.log.Info("ai: state changed",
				zap.Uint64("frame", w.Frame()),
				zap.Stringer("entity", data.Entity),
				zap.String("from", data.From),
				zap.String("to", data.To),
				zap.Float64("distance", data.Distance),
			)
		default:
			s.log.Debug("event", zap.String("type", evt.Type), zap.Any("data", evt.Data))
		}
	}
}

// Entries returns how many times each state was entered.
func (s *EventLogSystem) Entries() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Transitions is the total number of state changes seen.
func (s *EventLogSystem) Transitions() int {
	return s.total
}
