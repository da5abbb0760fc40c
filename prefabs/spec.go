package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/warden/ai"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/fps"
	"github.com/milk9111/warden/lobby"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

type TransformSpec struct {
	Position Vec3Spec `yaml:"position"`
	Yaw      float64  `yaml:"yaw"` // degrees
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

// EnemySpec is enemy.yaml. Zero-valued tuning fields fall back to
// ai.DefaultConfig.
type EnemySpec struct {
	Name             string        `yaml:"name"`
	PatrolSpeed      float64       `yaml:"patrol_speed"`
	ChaseSpeed       float64       `yaml:"chase_speed"`
	AttackRange      float64       `yaml:"attack_range"`
	ChaseRange       float64       `yaml:"chase_range"`
	FadeDuration     float64       `yaml:"fade_duration"`
	ArrivalDistance  float64       `yaml:"arrival_distance"`
	HeadingTolerance float64       `yaml:"heading_tolerance"`
	PatrolTurnRate   float64       `yaml:"patrol_turn_rate"`
	CombatTurnRate   float64       `yaml:"combat_turn_rate"`
	YawOffset        float64       `yaml:"yaw_offset"`
	Seed             int64         `yaml:"seed"`
	ChaseCue         string        `yaml:"chase_cue"`
	Waypoints        []Vec3Spec    `yaml:"waypoints"`
	Transform        TransformSpec `yaml:"transform"`
	Audio            []AudioSpec   `yaml:"audio"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *EnemySpec) AIConfig() ai.Config {
	cfg := ai.DefaultConfig()
	override(&cfg.PatrolSpeed, s.PatrolSpeed)
	override(&cfg.ChaseSpeed, s.ChaseSpeed)
	override(&cfg.AttackRange, s.AttackRange)
	override(&cfg.ChaseRange, s.ChaseRange)
	override(&cfg.FadeDuration, s.FadeDuration)
	override(&cfg.ArrivalDistance, s.ArrivalDistance)
	override(&cfg.HeadingTolerance, s.HeadingTolerance)
	override(&cfg.PatrolTurnRate, s.PatrolTurnRate)
	override(&cfg.CombatTurnRate, s.CombatTurnRate)
	cfg.YawOffset = s.YawOffset
	for _, wp := range s.Waypoints {
		cfg.Waypoints = append(cfg.Waypoints, wp.Vec3())
	}
	return cfg
}

// PlayerSpec is player.yaml.
type PlayerSpec struct {
	Name         string        `yaml:"name"`
	WalkingSpeed float64       `yaml:"walking_speed"`
	RunningSpeed float64       `yaml:"running_speed"`
	JumpSpeed    float64       `yaml:"jump_speed"`
	Gravity      float64       `yaml:"gravity"`
	LookSpeed    float64       `yaml:"look_speed"`
	LookXLimit   float64       `yaml:"look_x_limit"`
	WalkCue      string        `yaml:"walk_cue"`
	RunCue       string        `yaml:"run_cue"`
	Transform    TransformSpec `yaml:"transform"`
	Audio        []AudioSpec   `yaml:"audio"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PlayerSpec) FPSConfig() fps.Config {
	cfg := fps.DefaultConfig()
	override(&cfg.WalkingSpeed, s.WalkingSpeed)
	override(&cfg.RunningSpeed, s.RunningSpeed)
	override(&cfg.JumpSpeed, s.JumpSpeed)
	override(&cfg.Gravity, s.Gravity)
	override(&cfg.LookSpeed, s.LookSpeed)
	override(&cfg.LookXLimit, s.LookXLimit)
	return cfg
}

// RoomSpec is room.yaml.
type RoomSpec struct {
	RoomName        string    `yaml:"room_name"`
	MaxPlayers      int       `yaml:"max_players"`
	MaxRetries      *int      `yaml:"max_retries"`
	MessageDuration string    `yaml:"message_duration"`
	PlayerPrefab    string    `yaml:"player_prefab"`
	SpawnPoint      *Vec3Spec `yaml:"spawn_point"`
}

func LoadRoomSpec() (*RoomSpec, error) {
	spec, err := LoadSpec[RoomSpec]("room.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *RoomSpec) LobbyConfig() (lobby.Config, error) {
	cfg := lobby.DefaultConfig()
	if s.RoomName != "" {
		cfg.RoomName = s.RoomName
	}
	if s.MaxPlayers > 0 {
		cfg.MaxPlayers = s.MaxPlayers
	}
	if s.MaxRetries != nil {
		cfg.MaxRetries = *s.MaxRetries
	}
	if s.MessageDuration != "" {
		d, err := time.ParseDuration(s.MessageDuration)
		if err != nil {
			return cfg, fmt.Errorf("prefabs: room message_duration: %w", err)
		}
		cfg.MessageDuration = d
	}
	cfg.PlayerPrefab = s.PlayerPrefab
	if s.SpawnPoint != nil {
		p := s.SpawnPoint.Vec3()
		cfg.SpawnPoint = &p
	}
	return cfg, cfg.Validate()
}

func override(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
