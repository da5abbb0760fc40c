package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/warden/ai"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
	"github.com/milk9111/warden/ecs/system"
	"github.com/milk9111/warden/prefabs"
)

type stubPlayer struct {
	file string
}

func (p *stubPlayer) Play() {}
func (p *stubPlayer) Pause() {}
func (p *stubPlayer) Rewind() error { return nil }
func (p *stubPlayer) IsPlaying() bool { return false }
func (p *stubPlayer) Volume() float64 { return 0 }
func (p *stubPlayer) SetVolume(v float64) {}

func stubLoader(file string) (component.AudioPlayer, error) {
	return &stubPlayer{file: file}, nil
}

type stillInput struct{}

func (stillInput) Vertical() float64 { return 0 }
func (stillInput) Horizontal() float64 { return 0 }
func (stillInput) Running() bool { return false }
func (stillInput) Jump() bool { return false }
func (stillInput) LookX() float64 { return 0 }
func (stillInput) LookY() float64 { return 0 }

func TestNewEnemyFromEmbeddedPrefab(t *testing.T) {
	spec, err := prefabs.LoadEnemySpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	e, err := NewEnemy(w, spec, stubLoader)
	require.NoError(t, err)

	for _, id := range []component.ComponentID{
		component.AITagComponent.ID(),
		component.AIComponent.ID(),
		component.AIStateComponent.ID(),
		component.TransformComponent.ID(),
		component.NavAgentComponent.ID(),
		component.AnimatorComponent.ID(),
		component.AudioComponent.ID(),
	} {
		assert.Contains(t, ecs.Query(w, id), e)
	}

	aiComp, _ := ecs.Get(w, e, component.AIComponent)
	assert.Equal(t, spec.AIConfig(), aiComp.Config)
	assert.Equal(t, spec.ChaseCue, aiComp.ChaseCue)
	assert.Nil(t, aiComp.Controller)

	audioComp, _ := ecs.Get(w, e, component.AudioComponent)
	require.NotNil(t, audioComp.Cue(spec.ChaseCue))
	assert.Equal(t, "chase.wav", audioComp.Players[0].(*stubPlayer).file)
}

func TestNewEnemyErrors(t *testing.T) {
	failing := func(string) (component.AudioPlayer, error) { return nil, errors.New("decode") }
	bad := &prefabs.EnemySpec{AttackRange: 8, ChaseRange: 4}
	withAudio := &prefabs.EnemySpec{Audio: []prefabs.AudioSpec{{Name: "chase", File: "chase.wav"}}}

	cases := []struct {
		name string
		spec *prefabs.EnemySpec
		load ClipLoader
		is   error
	}{
		{"nil_spec", nil, nil, nil},
		{"invalid_ranges", bad, nil, ai.ErrInvalidConfig},
		{"audio_load", withAudio, failing, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := NewEnemy(w, c.spec, c.load)
			require.Error(t, err)
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			}
			assert.Empty(t, ecs.Entities(w), "no half-built entity")
		})
	}
}

func TestReloadEnemy(t *testing.T) {
	w := ecs.NewWorld()
	spec := &prefabs.EnemySpec{ChaseCue: "chase", Audio: []prefabs.AudioSpec{{Name: "chase", Volume: 1, Loop: true}}}
	e, err := NewEnemy(w, spec, nil)
	require.NoError(t, err)

	aiComp, _ := ecs.Get(w, e, component.AIComponent)
	nav, _ := ecs.Get(w, e, component.NavAgentComponent)
	ctrl, err := ai.New(aiComp.Config, ai.Deps{Nav: nav, Body: &fixedBody{}})
	require.NoError(t, err)
	aiComp.Controller = ctrl
	aiComp.Err = errors.New("stale")
	audioComp, _ := ecs.Get(w, e, component.AudioComponent)
	audioComp.Cue("chase").Play()
	audioComp.Cue("chase").SetVolume(0.3)

	require.NoError(t, ReloadEnemy(w, e, &prefabs.EnemySpec{ChaseRange: 15, ChaseCue: "chase"}))
	assert.Nil(t, aiComp.Controller)
	assert.Nil(t, aiComp.Err)
	assert.Equal(t, 15.0, aiComp.Config.ChaseRange)
	assert.False(t, audioComp.Cue("chase").IsPlaying())
	assert.Equal(t, 1.0, audioComp.Cue("chase").Volume())

	retuned := &prefabs.EnemySpec{ChaseCue: "chase", Audio: []prefabs.AudioSpec{
		{Name: "chase", Volume: 0.6},
		{Name: "unknown", Volume: 1},
	}}
	require.NoError(t, ReloadEnemy(w, e, retuned))
	assert.Equal(t, 0.6, audioComp.Cue("chase").Volume())
	assert.False(t, audioComp.Loop[0])
	assert.Len(t, audioComp.Names, 1, "reload never adds clips")

	assert.ErrorIs(t, ReloadEnemy(w, e, &prefabs.EnemySpec{ChaseRange: 1, AttackRange: 3}), ai.ErrInvalidConfig)
	assert.Error(t, ReloadEnemy(w, ecs.CreateEntity(w), spec))
}

// guardWorld runs an enemy with a chase cue against a player standing at
// playerAt.
func guardWorld(t *testing.T, playerAt common.Vec3) (*ecs.World, ecs.Entity, *component.Transform, *prefabs.EnemySpec) {
	t.Helper()
	w := ecs.NewWorld()
	spec := &prefabs.EnemySpec{ChaseCue: "chase", Audio: []prefabs.AudioSpec{{Name: "chase", Volume: 0.8, Loop: true}}}
	e, err := NewEnemy(w, spec, nil)
	require.NoError(t, err)

	player := ecs.CreateEntity(w)
	pt := &component.Transform{Position: playerAt}
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent, &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, player, component.TransformComponent, pt))

	w.AddSystem(system.NewAISystem(nil))
	w.AddSystem(system.NewNavigationSystem())
	w.AddSystem(system.NewAudioSystem(nil))
	return w, e, pt, spec
}

func currentState(t *testing.T, w *ecs.World, e ecs.Entity) ai.State {
	t.Helper()
	st, ok := ecs.Get(w, e, component.AIStateComponent)
	require.True(t, ok)
	return st.Current
}

func TestReloadKeepsDeadEnemyDead(t *testing.T) {
	w, e, pt, spec := guardWorld(t, common.Vec3{Z: 5})
	w.Update(0.1)
	require.NoError(t, ecs.Add(w, e, component.AIStateInterruptComponent, &component.AIStateInterrupt{State: ai.Dead}))
	w.Update(0.1)
	require.Equal(t, ai.Dead, currentState(t, w, e))

	aiComp, _ := ecs.Get(w, e, component.AIComponent)
	corpse := aiComp.Controller
	require.NoError(t, ReloadEnemy(w, e, spec))
	assert.Same(t, corpse, aiComp.Controller)

	pt.Position = common.Vec3{Z: 1}
	for i := 0; i < 5; i++ {
		w.Update(0.1)
		assert.Equal(t, ai.Dead, currentState(t, w, e))
	}
}

func TestReloadAfterFadeRestoresChaseVolume(t *testing.T) {
	w, e, pt, spec := guardWorld(t, common.Vec3{Z: 5})
	audioComp, _ := ecs.Get(w, e, component.AudioComponent)
	chase := audioComp.Cue("chase")

	w.Update(0.1)
	require.Equal(t, ai.Chase, currentState(t, w, e))
	require.True(t, chase.IsPlaying())

	pt.Position = common.Vec3{Z: 100}
	for i := 0; i < 20; i++ {
		w.Update(0.1)
	}
	require.Equal(t, ai.Patrol, currentState(t, w, e))
	require.False(t, chase.IsPlaying(), "fade finished")
	require.Zero(t, chase.Volume())

	require.NoError(t, ReloadEnemy(w, e, spec))
	assert.Equal(t, 0.8, chase.Volume())

	et, _ := ecs.Get(w, e, component.TransformComponent)
	pt.Position = et.Position.Add(common.Vec3{Z: 5})
	w.Update(0.1)
	assert.Equal(t, ai.Chase, currentState(t, w, e))
	assert.True(t, chase.IsPlaying())
	assert.InDelta(t, 0.8, chase.Volume(), 1e-9)
}

type fixedBody struct{}

func (fixedBody) Position() common.Vec3 { return common.Vec3{} }
func (fixedBody) Heading() float64 { return 0 }
func (fixedBody) SetHeading(float64) {}

func TestNewPlayer(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	e, err := NewPlayer(w, spec, stillInput{}, nil, nil, nil)
	require.NoError(t, err)

	tr, ok := ecs.Get(w, e, component.TransformComponent)
	require.True(t, ok)
	assert.Equal(t, spec.Transform.Position.Vec3(), tr.Position)
	assert.InDelta(t, common.Deg2Rad(spec.Transform.Yaw), tr.Yaw, 1e-12)

	fp, ok := ecs.Get(w, e, component.FirstPersonComponent)
	require.True(t, ok)
	require.NotNil(t, fp.Controller)

	first, ok := ecs.First(w, component.PlayerTagComponent)
	require.True(t, ok)
	assert.Equal(t, e, first)
}

func TestNewPlayerSpawnOverride(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	at := common.Vec3{X: 3, Z: -4}
	e, err := NewPlayer(w, spec, stillInput{}, &at, nil, nil)
	require.NoError(t, err)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	assert.Equal(t, at, tr.Position)

	_, err = NewPlayer(w, spec, nil, nil, nil, nil)
	assert.Error(t, err, "input is required")
}
