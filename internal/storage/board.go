package storage

import (
	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
)

// GameBoard exposes one variant's history as a leaderboard.
type GameBoard struct {
	store  *Store
	gameID string
	limit  int
	ai     bool
}

// Board returns a leaderboard view over the given variant.
// Submitted games are flagged as AI games when ai is set.
func (s *Store) Board(gameID string, limit int, ai bool) *GameBoard {
	if limit <= 0 {
		limit = leaderboard.DefaultLimit
	}
	return &GameBoard{store: s, gameID: gameID, limit: limit, ai: ai}
}

// Limit returns the number of entries listed.
func (b *GameBoard) Limit() int {
	return b.limit
}

// Top returns the best games as leaderboard entries.
func (b *GameBoard) Top() ([]leaderboard.Entry, error) {
	records, err := b.store.TopScores(b.gameID, b.limit)
	if err != nil {
		return nil, err
	}
	entries := make([]leaderboard.Entry, len(records))
	for i, r := range records {
		entries[i] = leaderboard.Entry{Score: r.Score, Name: r.Name}
	}
	return entries, nil
}

// Qualifies applies the top-list rule to the stored games.
func (b *GameBoard) Qualifies(score int) (bool, error) {
	entries, err := b.Top()
	if err != nil {
		return false, err
	}
	return leaderboard.Qualifies(entries, score, b.limit), nil
}

// Submit records a game with only a score and a name.
func (b *GameBoard) Submit(score int, name string) error {
	_, err := b.store.SaveGame(GameRecord{
		GameID: b.gameID,
		Name:   leaderboard.CleanName(name),
		Score:  score,
		AI:     b.ai,
	})
	return err
}

var _ leaderboard.Board = (*GameBoard)(nil)
