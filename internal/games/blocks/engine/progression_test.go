package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		mode  Mode
		want  int
	}{
		{0, ModeEasy, 0},
		{299, ModeEasy, 0},
		{300, ModeEasy, 1},
		{999, ModeEasy, 1},
		{1000, ModeEasy, 2},
		{14999, ModeEasy, 7},
		{15000, ModeEasy, 8},
		{25000, ModeEasy, 10},
		{100000, ModeEasy, 10},
		{0, ModeFast, 5},
		{499, ModeFast, 5},
		{500, ModeFast, 6},
		{3000, ModeFast, 8},
		{9999, ModeFast, 9},
		{10000, ModeFast, 10},
		{500000, ModeFast, 10},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, LevelFor(tc.score, tc.mode), "LevelFor(%d, %s)", tc.score, tc.mode)
	}
}

func TestStartLevel(t *testing.T) {
	assert.Equal(t, 0, StartLevel(ModeEasy))
	assert.Equal(t, 5, StartLevel(ModeFast))
}

func TestFallInterval(t *testing.T) {
	assert.Equal(t, 600*time.Millisecond, DefaultSpeeds.FallInterval(0))
	assert.Equal(t, 100*time.Millisecond, DefaultSpeeds.FallInterval(5))
	assert.Equal(t, 10*time.Millisecond, DefaultSpeeds.FallInterval(10))
	assert.Equal(t, 600*time.Millisecond, DefaultSpeeds.FallInterval(11), "unknown level falls back to level 0")
	assert.Equal(t, 600*time.Millisecond, DefaultSpeeds.FallInterval(-1))

	for lvl := 1; lvl <= MaxLevel; lvl++ {
		assert.Less(t, DefaultSpeeds[lvl], DefaultSpeeds[lvl-1], "level %d must be faster", lvl)
	}
}

func TestLineClearScore(t *testing.T) {
	want := map[int]int{0: 0, 1: 100, 2: 300, 3: 600, 4: 1000, 5: 1000, -1: 0}
	for n, pts := range want {
		assert.Equal(t, pts, LineClearScore(n), "LineClearScore(%d)", n)
	}
}
