package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]("player_tag")

type AITag struct{}

var AITagComponent = NewComponent[AITag]("ai_tag")
