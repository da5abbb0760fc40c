package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warden/ecs"
	"github.com/milk9111/warden/ecs/component"
)

type AudioSystem struct {
	log *zap.Logger
}

func NewAudioSystem(log *zap.Logger) *AudioSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioSystem{log: log}
}

func (a *AudioSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach(w, component.AudioComponent, func(e ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Players)
		for _, n := range []int{len(audioComp.Names), len(audioComp.Playing), len(audioComp.Restart), len(audioComp.Volume), len(audioComp.Loop)} {
			if n < count {
				count = n
			}
		}

		for i := 0; i < count; i++ {
			player := audioComp.Players[i]
			if player == nil {
				audioComp.Restart[i] = false
				continue
			}

			if player.Volume() != audioComp.Volume[i] {
				player.SetVolume(audioComp.Volume[i])
			}

			switch {
			case audioComp.Playing[i] && audioComp.Restart[i]:
				a.restart(e, audioComp.Names[i], player)
				audioComp.Restart[i] = false
			case audioComp.Playing[i] && !player.IsPlaying():
				if audioComp.Loop[i] {
					a.restart(e, audioComp.Names[i], player)
				} else {
					audioComp.Playing[i] = false
				}
			case !audioComp.Playing[i]:
				audioComp.Restart[i] = false
				if player.IsPlaying() {
					player.Pause()
				}
			}
		}
	})
}

func (a *AudioSystem) restart(e ecs.Entity, name string, player component.AudioPlayer) {
	if err := player.Rewind(); err != nil {
		a.log.Warn("audio: rewind", zap.Stringer("entity", e), zap.String("clip", name), zap.Error(err))
	}
	player.Play()
}
