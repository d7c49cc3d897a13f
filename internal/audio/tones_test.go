package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// drain streams s to completion and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = max(peak, math.Abs(buf[i][0]), math.Abs(buf[i][1]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 50*time.Millisecond, tt.wave, SampleRate)
			n, peak := drain(t, osc)
			if want := SampleRate.N(50 * time.Millisecond); n != want {
				t.Errorf("streamed %d samples, want %d", n, want)
			}
			if peak <= 0 || peak > 1 {
				t.Errorf("peak = %f, want in (0, 1]", peak)
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

func TestSquareWaveValues(t *testing.T) {
	osc := NewOscillator(220, 20*time.Millisecond, WaveSquare, SampleRate)
	buf := make([][2]float64, 200)
	n, _ := osc.Stream(buf)
	for i := range n {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("sample %d = %f, want ±1", i, v)
		}
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	d := 100 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, SampleRate) // constant +1
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, SampleRate)

	buf := make([][2]float64, SampleRate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d samples, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain sample = %f, want 1", mid)
	}
	if last := buf[n-1][0]; last <= 0 || last >= 0.01 {
		t.Errorf("last sample = %f, want a small positive value", last)
	}
}

func TestCueSounds(t *testing.T) {
	tests := []struct {
		cue core.Cue
		min time.Duration
	}{
		{core.CueLanded, 60 * time.Millisecond},
		{core.CueRowsCleared, 230 * time.Millisecond},
		{core.CueGameOver, 600 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := Sound(tt.cue)
			if s == nil {
				t.Fatal("Sound() returned nil")
			}
			n, peak := drain(t, s)
			if n < SampleRate.N(tt.min) {
				t.Errorf("streamed %d samples, want at least %d", n, SampleRate.N(tt.min))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %f, want audible and unclipped", peak)
			}
		})
	}

	if Sound(core.Cue(99)) != nil {
		t.Error("Sound(unknown) should be nil")
	}
}

func TestSilentVolume(t *testing.T) {
	s := withVolume(NewOscillator(440, 10*time.Millisecond, WaveSine, SampleRate), 0)
	_, peak := drain(t, s)
	if peak != 0 {
		t.Errorf("peak = %f, want silence", peak)
	}
}

func TestUninitializedPlayer(t *testing.T) {
	p := NewPlayer()
	p.Play(core.CueLanded)
	p.PlayAll([]core.Cue{core.CueRowsCleared, core.CueGameOver})

	if p.Muted() {
		t.Error("new player should not be muted")
	}
	if !p.ToggleMuted() || !p.Muted() {
		t.Error("ToggleMuted should mute")
	}
	if p.ToggleMuted() {
		t.Error("second ToggleMuted should unmute")
	}
	p.Close()

	var nilPlayer *Player
	nilPlayer.Play(core.CueLanded)
	nilPlayer.SetMuted(true)
	if !nilPlayer.Muted() {
		t.Error("nil player reports muted")
	}
}
