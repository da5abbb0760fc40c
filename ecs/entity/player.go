package entity

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
	"github.com/milk9111/warden/fps"
	"github.com/milk9111/warden/prefabs"
)

// NewPlayer spawns the player. at overrides the prefab position when set.
func NewPlayer(w *ecs.World, playerSpec *prefabs.PlayerSpec, input fps.Input, at *common.Vec3, load ClipLoader, log *zap.Logger) (ecs.Entity, error) {
	if playerSpec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	audioComp, err := buildAudioComponent(playerSpec.Audio, load)
	if err != nil {
		return 0, fmt.Errorf("player: build audio: %w", err)
	}

	transform := &component.Transform{
		Position: playerSpec.Transform.Position.Vec3(),
		Yaw:      common.Deg2Rad(playerSpec.Transform.Yaw),
	}
	if at != nil {
		transform.Position = *at
	}

	deps := fps.Deps{
		Input: input,
		Mover: &fps.PlaneMover{Pos: &transform.Position, Floor: transform.Position.Y},
		Body:  transform,
	}
	if cue := audioComp.Cue(playerSpec.WalkCue); cue != nil {
		deps.Walk = cue
	}
	if cue := audioComp.Cue(playerSpec.RunCue); cue != nil {
		deps.Run = cue
	}

	ctrl, err := fps.New(playerSpec.FPSConfig(), deps, log)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, transform); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.FirstPersonComponent, &component.FirstPerson{Controller: ctrl}); err != nil {
		return 0, fmt.Errorf("player: add first person: %w", err)
	}

	if audioComp != nil {
		if err := ecs.Add(w, entity, component.AudioComponent, audioComp); err != nil {
			return 0, fmt.Errorf("player: add audio: %w", err)
		}
	}

	return entity, nil
}
