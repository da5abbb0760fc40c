package entity

import (
	"fmt"

	"github.com/milk9111/warden/ecs/component"
	"github.com/milk9111/warden/prefabs"
)

// ClipLoader opens a decoded clip by asset file name.
type ClipLoader func(file string) (component.AudioPlayer, error)

// buildAudioComponent returns nil for an empty clip list. With a nil loader
// every clip gets a nil player and only its requested state is tracked.
func buildAudioComponent(audioSpecs []prefabs.AudioSpec, load ClipLoader) (*component.Audio, error) {
	if len(audioSpecs) == 0 {
		return nil, nil
	}

	audioComp := &component.Audio{}
	for i, clip := range audioSpecs {
		var player component.AudioPlayer
		if load != nil {
			p, err := load(clip.File)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
			player = p
		}
		audioComp.AddClip(clip.Name, player, clip.Volume, clip.Loop)
	}

	return audioComp, nil
}

// retuneAudio copies authored volume and looping onto clips already loaded
// under the same name. Clips are never added or dropped.
func retuneAudio(audioComp *component.Audio, audioSpecs []prefabs.AudioSpec) {
	for _, clip := range audioSpecs {
		i := audioComp.Index(clip.Name)
		if i < 0 || i >= len(audioComp.Base) {
			continue
		}
		audioComp.Base[i] = clip.Volume
		audioComp.Loop[i] = clip.Loop
	}
}
