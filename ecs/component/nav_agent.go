package component

import "github.com/milk9111/warden/common"

// NavAgent is the navigation request state of a moving entity. A new
// destination stays pending until the navigation system resolves it.
type NavAgent struct {
	Speed     float64
	Stopped   bool
	Pending   bool
	Remaining float64
	Radius    float64

	destination common.Vec3
	requested   common.Vec3
	hasDest     bool
}

func (n *NavAgent) SetDestination(p common.Vec3) {
	if n.hasDest && !n.Pending && n.destination == p {
		return
	}
	n.requested = p
	n.Pending = true
}

// Destination returns the latest requested destination.
func (n *NavAgent) Destination() common.Vec3 {
	if n.Pending {
		return n.requested
	}
	return n.destination
}

// Active is the destination currently being followed.
func (n *NavAgent) Active() (common.Vec3, bool) {
	return n.destination, n.hasDest
}

// Resolve promotes a pending request to the active destination.
func (n *NavAgent) Resolve() bool {
	if !n.Pending {
		return false
	}
	n.destination = n.requested
	n.hasDest = true
	n.Pending = false
	return true
}

func (n *NavAgent) SetSpeed(s float64) { n.Speed = s }
func (n *NavAgent) SetStopped(s bool) { n.Stopped = s }
func (n *NavAgent) PathPending() bool { return n.Pending }
func (n *NavAgent) RemainingDistance() float64 { return n.Remaining }

var NavAgentComponent = NewComponent[NavAgent]("nav_agent")
