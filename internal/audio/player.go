// Package audio plays the game's sound cues through the system speaker.
// Sounds are synthesized on the fly; there are no sample files.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Player mixes cue sounds into a single speaker stream.
// A Player that was never initialized, or whose Init failed, drops every
// cue, so callers never need to check for audio support.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	initialized bool
	muted       bool
}

// NewPlayer creates a player. Call Init to attach it to the speaker.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker. It is safe to call more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	p.ctrl = &beep.Ctrl{Streamer: p.mixer}
	speaker.Play(p.ctrl)
	p.initialized = true
	return nil
}

// Play queues the sound for c. Muted or uninitialized players ignore it.
func (p *Player) Play(c core.Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	s := Sound(c)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// PlayAll plays cues in order.
func (p *Player) PlayAll(cues []core.Cue) {
	for _, c := range cues {
		p.Play(c)
	}
}

// Muted reports whether cues are suppressed.
func (p *Player) Muted() bool {
	if p == nil {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetMuted suppresses or restores cues. Muting also silences sounds that
// are already playing.
func (p *Player) SetMuted(muted bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if p.initialized {
		speaker.Lock()
		p.ctrl.Paused = muted
		if muted {
			p.mixer.Clear()
		}
		speaker.Unlock()
	}
}

// ToggleMuted flips the mute state and returns the new value.
func (p *Player) ToggleMuted() bool {
	muted := !p.Muted()
	p.SetMuted(muted)
	return muted
}

// Close stops all sounds.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
