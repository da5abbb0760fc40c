package fps

import "github.com/milk9111/warden/common"

// PlaneMover moves a position over a flat floor at height Floor.
type PlaneMover struct {
	Pos   *common.Vec3
	Floor float64
}

func (m *PlaneMover) Move(delta common.Vec3) {
	*m.Pos = m.Pos.Add(delta)
	if m.Pos.Y < m.Floor {
		m.Pos.Y = m.Floor
	}
}

func (m *PlaneMover) Grounded() bool {
	return m.Pos.Y <= m.Floor
}
