package component

import "github.com/milk9111/warden/common"

// Transform is an entity's world position and yaw in radians.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

func (t *Transform) Heading() float64 {
	return t.Yaw
}

func (t *Transform) SetHeading(yaw float64) {
	t.Yaw = yaw
}

var TransformComponent = NewComponent[Transform]("transform")
