package engine

import (
	"sort"
	"time"
)

// Mode selects the progression curve.
type Mode int

const (
	ModeEasy Mode = iota
	ModeFast
)

// String returns the mode name as used in configuration.
func (m Mode) String() string {
	if m == ModeFast {
		return "fast"
	}
	return "easy"
}

// MaxLevel is the highest reachable level.
const MaxLevel = 10

var (
	easyThresholds = []int{0, 300, 1000, 2000, 4000, 6000, 8000, 10000, 15000, 20000, 25000}
	fastThresholds = []int{0, 500, 1500, 3000, 5000, 10000}
)

const fastBaseLevel = 5

// StartLevel returns the level a new game begins at.
func StartLevel(m Mode) int {
	if m == ModeFast {
		return fastBaseLevel
	}
	return 0
}

// LevelFor maps a cumulative score to a level in [0, MaxLevel].
func LevelFor(score int, m Mode) int {
	thresholds, base := easyThresholds, 0
	if m == ModeFast {
		thresholds, base = fastThresholds, fastBaseLevel
	}
	// Index of the last threshold <= score.
	i := sort.Search(len(thresholds), func(i int) bool { return thresholds[i] > score }) - 1
	if i < 0 {
		i = 0
	}
	return min(base+i, MaxLevel)
}

// SpeedTable holds the time a piece takes to fall one row at each level.
type SpeedTable [MaxLevel + 1]time.Duration

// DefaultSpeeds goes from 0.6s per row at level 0 to 0.01s at level 10.
var DefaultSpeeds = SpeedTable{
	600 * time.Millisecond,
	500 * time.Millisecond,
	400 * time.Millisecond,
	300 * time.Millisecond,
	200 * time.Millisecond,
	100 * time.Millisecond,
	80 * time.Millisecond,
	60 * time.Millisecond,
	40 * time.Millisecond,
	20 * time.Millisecond,
	10 * time.Millisecond,
}

// FallInterval returns the fall time for a level; levels outside the table
// use level 0's speed.
func (t SpeedTable) FallInterval(level int) time.Duration {
	if level < 0 || level >= len(t) {
		return t[0]
	}
	return t[level]
}

var lineScores = [...]int{0, 100, 300, 600, 1000}

// LineClearScore returns the points for clearing n rows in one lock.
// Four or more rows score the same as four.
func LineClearScore(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(lineScores) {
		return lineScores[len(lineScores)-1]
	}
	return lineScores[n]
}
