package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a streamer that plays freq for the given duration.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a streamer in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; 0 or below is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped tone.
func note(freq float64, d time.Duration, wave Wave) beep.Streamer {
	osc := NewOscillator(freq, d, wave, SampleRate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, SampleRate)
}

// landedSound is a short low thump.
func landedSound() beep.Streamer {
	return withVolume(note(110, 60*time.Millisecond, WaveSquare), 0.25)
}

// rowsClearedSound is a rising two-note chime with an octave overtone.
func rowsClearedSound() beep.Streamer {
	first := beep.Mix(
		withVolume(note(659.25, 90*time.Millisecond, WaveSine), 0.7),
		withVolume(note(1318.5, 90*time.Millisecond, WaveSine), 0.3),
	)
	second := beep.Mix(
		withVolume(note(987.77, 140*time.Millisecond, WaveSine), 0.7),
		withVolume(note(1975.5, 140*time.Millisecond, WaveSine), 0.3),
	)
	return withVolume(beep.Seq(first, second), 0.5)
}

// gameOverSound is a falling three-note phrase.
func gameOverSound() beep.Streamer {
	return withVolume(beep.Seq(
		note(440, 150*time.Millisecond, WaveSaw),
		note(330, 150*time.Millisecond, WaveSaw),
		note(220, 300*time.Millisecond, WaveSaw),
	), 0.3)
}

// Sound returns a fresh streamer for the cue, or nil for unknown cues.
func Sound(c core.Cue) beep.Streamer {
	switch c {
	case core.CueLanded:
		return landedSound()
	case core.CueRowsCleared:
		return rowsClearedSound()
	case core.CueGameOver:
		return gameOverSound()
	default:
		return nil
	}
}
