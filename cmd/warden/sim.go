package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/warden/ai"
	"github.com/milk9111/warden/assets"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
	"github.com/milk9111/warden/ecs/entity"
	"github.com/milk9111/warden/ecs/system"
	"github.com/milk9111/warden/lobby"
	"github.com/milk9111/warden/prefabs"
)

type simOptions struct {
	ticks    int
	dt       float64
	prefabs  string
	audio    bool
	watch    bool
	seed     int64
	killAt   int
	lobby    bool
	realtime bool
}

var simOpts = simOptions{ticks: 1200, dt: 1.0 / 60, killAt: -1}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the enemy AI against a scripted player",
	Long: `sim builds a world with one enemy from enemy.yaml and one player from
player.yaml, then runs a fixed-step loop. State changes are logged as they
happen and a summary is printed at the end.

With --watch, edits to enemy.yaml in the prefab directory are applied to the
running enemy.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res, err := runSim(ctx, simOpts, logger)
		if err != nil {
			return err
		}
		res.print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	f := simCmd.Flags()
	f.IntVar(&simOpts.ticks, "ticks", simOpts.ticks, "Number of frames to simulate")
	f.Float64Var(&simOpts.dt, "dt", simOpts.dt, "Frame time in seconds")
	f.StringVar(&simOpts.prefabs, "prefabs", "", "Prefab directory overriding the embedded defaults")
	f.BoolVar(&simOpts.audio, "audio", false, "Decode clips and play them through the audio device")
	f.BoolVar(&simOpts.watch, "watch", false, "Reload enemy.yaml when it changes")
	f.Int64Var(&simOpts.seed, "seed", 0, "Waypoint seed (0 keeps the prefab seed)")
	f.IntVar(&simOpts.killAt, "kill-at", simOpts.killAt, "Kill the enemy on this frame (-1 never)")
	f.BoolVar(&simOpts.lobby, "lobby", false, "Join a loopback room and spawn the player from room.yaml")
	f.BoolVar(&simOpts.realtime, "realtime", false, "Pace frames to wall-clock time")
}

type simResult struct {
	Run         string
	Frames      int
	Transitions int
	Entries     map[string]int
	Final       ai.State
	Enemy       common.Vec3
	Player      common.Vec3
	Reloads     int
	// Banner is the join banner still on screen when the run ended.
	Banner string
}

func (r *simResult) print(out io.Writer) {
	fmt.Fprintf(out, "run:         %s\n", r.Run)
	fmt.Fprintf(out, "frames:      %d\n", r.Frames)
	fmt.Fprintf(out, "transitions: %d\n", r.Transitions)
	fmt.Fprintf(out, "final state: %s\n", r.Final)
	fmt.Fprintf(out, "enemy:       (%.2f, %.2f, %.2f)\n", r.Enemy.X, r.Enemy.Y, r.Enemy.Z)
	fmt.Fprintf(out, "player:      (%.2f, %.2f, %.2f)\n", r.Player.X, r.Player.Y, r.Player.Z)
	if r.Reloads > 0 {
		fmt.Fprintf(out, "reloads:     %d\n", r.Reloads)
	}
	if r.Banner != "" {
		fmt.Fprintf(out, "banner:      %s\n", r.Banner)
	}
	names := make([]string, 0, len(r.Entries))
	for name := range r.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-9s %d\n", name, r.Entries[name])
	}
}

func runSim(ctx context.Context, opts simOptions, log *zap.Logger) (*simResult, error) {
	if opts.ticks < 0 {
		return nil, fmt.Errorf("sim: ticks %d is negative", opts.ticks)
	}
	if opts.dt <= 0 {
		return nil, fmt.Errorf("sim: dt %v must be positive", opts.dt)
	}
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	log = log.With(zap.String("run", runID))
	if opts.prefabs != "" {
		prefabs.SetDir(opts.prefabs)
	}

	var load entity.ClipLoader
	if opts.audio {
		load = loadClip
	}

	w := ecs.NewWorld()
	input := newScriptedInput(patrolWalk)

	var (
		player ecs.Entity
		room   *lobby.Manager
		err    error
	)
	if opts.lobby {
		player, room, err = joinLobby(w, input, load, log)
	} else {
		player, err = spawnPlayer(w, "player.yaml", input, nil, load, log)
	}
	if err != nil {
		return nil, err
	}

	enemySpec, err := loadEnemy(opts.seed)
	if err != nil {
		return nil, err
	}
	enemy, err := entity.NewEnemy(w, enemySpec, load)
	if err != nil {
		return nil, err
	}

	events := system.NewEventLogSystem(log)
	w.AddSystem(system.NewPlayerSystem())
	w.AddSystem(system.NewAISystem(log))
	w.AddSystem(system.NewNavigationSystem())
	w.AddSystem(system.NewAnimationSystem(log))
	w.AddSystem(system.NewAudioSystem(log))
	w.AddSystem(events)

	var changes chan string
	if opts.watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			return nil, fmt.Errorf("sim: watch %s: %w", prefabs.Dir(), err)
		}
		var g errgroup.Group
		g.Go(func() error {
			for err := range watcher.Errors {
				log.Warn("prefabs: watch", zap.Error(err))
			}
			return nil
		})
		defer func() {
			_ = watcher.Close()
			_ = g.Wait()
		}()
		changes = watcher.Events
		log.Info("sim: watching prefabs", zap.String("dir", prefabs.Dir()))
	}

	frameTime := time.Duration(opts.dt * float64(time.Second))
	var pace <-chan time.Time
	if opts.realtime {
		ticker := time.NewTicker(frameTime)
		defer ticker.Stop()
		pace = ticker.C
	}

	res := &simResult{Run: runID}
loop:
	for frame := 0; frame < opts.ticks; frame++ {
		select {
		case <-ctx.Done():
			log.Info("sim: interrupted", zap.Int("frame", frame))
			break loop
		case name := <-changes:
			if name == "enemy.yaml" {
				if err := reloadEnemy(w, enemy, opts.seed); err != nil {
					log.Error("sim: reload enemy", zap.Error(err))
				} else {
					res.Reloads++
					fields := []zap.Field{zap.Int("frame", frame)}
					if mt, ok := prefabs.ModTime(name); ok {
						fields = append(fields, zap.Time("modified", mt))
					}
					log.Info("sim: enemy reloaded", fields...)
				}
			}
		default:
		}

		if frame == opts.killAt {
			_ = ecs.Add(w, enemy, component.AIStateInterruptComponent, &component.AIStateInterrupt{State: ai.Dead})
		}

		w.Update(opts.dt)
		if room != nil {
			room.Tick(frameTime)
		}
		input.Advance()
		res.Frames++

		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace:
			}
		}
	}

	res.Transitions = events.Transitions()
	res.Entries = events.Entries()
	if st, ok := ecs.Get(w, enemy, component.AIStateComponent); ok {
		res.Final = st.Current
	}
	if t, ok := ecs.Get(w, enemy, component.TransformComponent); ok {
		res.Enemy = t.Position
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent); ok {
		res.Player = t.Position
	}
	if room != nil && room.Join.Visible {
		res.Banner = room.Join.Text
	}
	return res, nil
}

func loadEnemy(seed int64) (*prefabs.EnemySpec, error) {
	spec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		spec.Seed = seed
	}
	return spec, nil
}

func reloadEnemy(w *ecs.World, e ecs.Entity, seed int64) error {
	spec, err := loadEnemy(seed)
	if err != nil {
		return err
	}
	return entity.ReloadEnemy(w, e, spec)
}

func spawnPlayer(w *ecs.World, prefab string, input *scriptedInput, at *common.Vec3, load entity.ClipLoader, log *zap.Logger) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](prefab)
	if err != nil {
		return 0, err
	}
	return entity.NewPlayer(w, &spec, input, at, load, log)
}

// joinLobby runs the room flow over a loopback session. The player is
// spawned by the room manager once the room is joined; the manager is
// returned so its banners can age with the frame loop.
func joinLobby(w *ecs.World, input *scriptedInput, load entity.ClipLoader, log *zap.Logger) (ecs.Entity, *lobby.Manager, error) {
	roomSpec, err := prefabs.LoadRoomSpec()
	if err != nil {
		return 0, nil, err
	}
	cfg, err := roomSpec.LobbyConfig()
	if err != nil {
		return 0, nil, err
	}

	var player ecs.Entity
	net := &lobby.Loopback{
		Nickname: "player",
		Spawn: func(prefab string, at common.Vec3) error {
			if filepath.Ext(prefab) == "" {
				prefab += ".yaml"
			}
			e, err := spawnPlayer(w, prefab, input, &at, load, log)
			if err != nil {
				return err
			}
			player = e
			return nil
		},
	}

	m, err := lobby.New(cfg, net, log)
	if err != nil {
		return 0, nil, err
	}
	m.Start()
	net.Pump(m)

	if !player.Valid() {
		return 0, nil, fmt.Errorf("sim: lobby ended in %s without spawning the player", m.Phase())
	}
	return player, m, nil
}

func loadClip(file string) (component.AudioPlayer, error) {
	p, err := assets.LoadAudioPlayer(file)
	if err != nil {
		return nil, err
	}
	return p, nil
}
