package entity

import (
	"fmt"

	"github.com/milk9111/warden/ai"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
	"github.com/milk9111/warden/prefabs"
)

func NewEnemy(w *ecs.World, enemySpec *prefabs.EnemySpec, load ClipLoader) (ecs.Entity, error) {
	if enemySpec == nil {
		return 0, fmt.Errorf("enemy: nil spec")
	}
	cfg := enemySpec.AIConfig()
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	audioComp, err := buildAudioComponent(enemySpec.Audio, load)
	if err != nil {
		return 0, fmt.Errorf("enemy: build audio: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.AITagComponent, &component.AITag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIComponent, &component.AI{
		Config:   cfg,
		Seed:     enemySpec.Seed,
		ChaseCue: enemySpec.ChaseCue,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIStateComponent, &component.AIState{Waypoint: -1}); err != nil {
		return 0, fmt.Errorf("enemy: add ai state: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, &component.Transform{
		Position: enemySpec.Transform.Position.Vec3(),
		Yaw:      common.Deg2Rad(enemySpec.Transform.Yaw),
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.NavAgentComponent, &component.NavAgent{Stopped: true}); err != nil {
		return 0, fmt.Errorf("enemy: add nav agent: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimatorComponent, &component.Animator{}); err != nil {
		return 0, fmt.Errorf("enemy: add animator: %w", err)
	}

	if audioComp != nil {
		if err := ecs.Add(w, entity, component.AudioComponent, audioComp); err != nil {
			return 0, fmt.Errorf("enemy: add audio: %w", err)
		}
	}

	return entity, nil
}

// ReloadEnemy applies a changed prefab to a live enemy. The controller is
// rebuilt by the AI system on its next update; position is kept. A dead
// enemy stays dead and keeps its controller.
func ReloadEnemy(w *ecs.World, entity ecs.Entity, enemySpec *prefabs.EnemySpec) error {
	if enemySpec == nil {
		return fmt.Errorf("enemy: nil spec")
	}
	aiComp, ok := ecs.Get(w, entity, component.AIComponent)
	if !ok {
		return fmt.Errorf("enemy: reload %s: no ai component", entity)
	}
	cfg := enemySpec.AIConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("enemy: reload: %w", err)
	}

	if aiComp.Controller != nil && aiComp.Controller.State() == ai.Dead {
		return nil
	}

	if audioComp, ok := ecs.Get(w, entity, component.AudioComponent); ok {
		retuneAudio(audioComp, enemySpec.Audio)
		// A fade may have left the old cue silent.
		if cue := audioComp.Cue(aiComp.ChaseCue); cue != nil {
			cue.Reset()
		}
	}

	aiComp.Config = cfg
	aiComp.Seed = enemySpec.Seed
	aiComp.ChaseCue = enemySpec.ChaseCue
	aiComp.Controller = nil
	aiComp.Err = nil
	return nil
}
