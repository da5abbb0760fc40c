package component

import "github.com/milk9111/warden/fps"

// FirstPerson binds a movement controller to the player entity.
type FirstPerson struct {
	Controller *fps.Controller
}

var FirstPersonComponent = NewComponent[FirstPerson]("first_person")
