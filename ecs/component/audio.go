package component

// AudioPlayer is the playback surface of a decoded clip. *audio.Player from
// ebiten satisfies it.
type AudioPlayer interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	Volume() float64
	SetVolume(v float64)
}

// Audio holds an entity's named clips. Playing is the requested state; the
// audio system applies it to the players.
type Audio struct {
	Names   []string
	Players []AudioPlayer
	Volume  []float64
	// Base is the authored volume of each clip. Fades change Volume only.
	Base    []float64
	Loop    []bool
	Playing []bool
	Restart []bool
}

// Index returns the clip slot for name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Cue returns a controllable handle for the named clip, or nil when absent.
func (a *Audio) Cue(name string) *AudioCue {
	i := a.Index(name)
	if i < 0 {
		return nil
	}
	return &AudioCue{audio: a, index: i}
}

// AudioCue drives one clip of an Audio component.
type AudioCue struct {
	audio *Audio
	index int
}

// Play starts the clip from the beginning if it is not already playing.
func (c *AudioCue) Play() {
	if !c.audio.Playing[c.index] {
		c.audio.Restart[c.index] = true
	}
	c.audio.Playing[c.index] = true
}

func (c *AudioCue) Stop() {
	c.audio.Playing[c.index] = false
}

func (c *AudioCue) IsPlaying() bool {
	return c.audio.Playing[c.index]
}

func (c *AudioCue) Volume() float64 {
	return c.audio.Volume[c.index]
}

func (c *AudioCue) SetVolume(v float64) {
	c.audio.Volume[c.index] = v
}

// Reset stops the clip and restores its authored volume.
func (c *AudioCue) Reset() {
	c.audio.Playing[c.index] = false
	if c.index < len(c.audio.Base) {
		c.audio.Volume[c.index] = c.audio.Base[c.index]
	}
}

var AudioComponent = NewComponent[Audio]("audio")

// AddClip appends a named clip slot.
func (a *Audio) AddClip(name string, p AudioPlayer, volume float64, loop bool) {
	a.Names = append(a.Names, name)
	a.Players = append(a.Players, p)
	a.Volume = append(a.Volume, volume)
	a.Base = append(a.Base, volume)
	a.Loop = append(a.Loop, loop)
	a.Playing = append(a.Playing, false)
	a.Restart = append(a.Restart, false)
}
