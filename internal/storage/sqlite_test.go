package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	games := []GameRecord{
		{GameID: "blocks", Name: "alice", Score: 100, Level: 0, Pieces: 30, Lines: 1},
		{GameID: "blocks", Name: "bob", Score: 50, Level: 0, Pieces: 12},
		{GameID: "blocks", Name: "AI", Score: 200, Level: 1, Pieces: 80, Lines: 2, AI: true},
		{GameID: "blocks_fast", Name: "carol", Score: 500, Level: 6},
	}
	for _, g := range games {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	records, err := store.TopScores("blocks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	wantOrder := []int{200, 100, 50}
	for i, want := range wantOrder {
		if records[i].Score != want {
			t.Errorf("records[%d].Score = %d, want %d", i, records[i].Score, want)
		}
	}
	if !records[0].AI || records[0].Name != "AI" || records[0].Pieces != 80 {
		t.Errorf("records[0] = %+v, want the AI game", records[0])
	}
	if records[1].AI {
		t.Error("records[1].AI = true, want false")
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveGame(GameRecord{GameID: "test", Score: (i + 1) * 100})
	}

	records, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(records))
	}
	if records[0].Score != 500 || records[1].Score != 400 || records[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", records)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty variant, got %d", high)
	}

	store.SaveGame(GameRecord{GameID: "blocks", Score: 300})
	store.SaveGame(GameRecord{GameID: "blocks_fast", Score: 900})

	if high, _ = store.HighScore("blocks"); high != 300 {
		t.Errorf("HighScore() = %d, want 300", high)
	}

	if err := store.ClearScores("blocks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if records, _ := store.TopScores("blocks", 10); len(records) != 0 {
		t.Errorf("Expected 0 records after clear, got %d", len(records))
	}
	if high, _ = store.HighScore("blocks_fast"); high != 900 {
		t.Error("Other variants should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{GameID: "blocks", Score: 100, Lines: 1, Level: 0})
	store.SaveGame(GameRecord{GameID: "blocks", Score: 300, Lines: 3, Level: 1})

	stats, err := store.GetGameStats("blocks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalLines != 4 || stats.BestLevel != 1 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats(empty) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetGameStats(empty) = %+v", empty)
	}
}

func TestGameBoard(t *testing.T) {
	store := openTestStore(t)
	board := store.Board("blocks", 3, true)

	var _ leaderboard.Board = board

	for _, score := range []int{100, 200, 300} {
		ok, err := board.Qualifies(score)
		if err != nil || !ok {
			t.Fatalf("Qualifies(%d) = %v, %v; want true while the list has room", score, ok, err)
		}
		if err := board.Submit(score, ""); err != nil {
			t.Fatalf("Submit(%d) failed: %v", score, err)
		}
	}

	if ok, _ := board.Qualifies(100); ok {
		t.Error("Qualifies(100) = true, want false when tying the lowest of a full list")
	}
	if ok, _ := board.Qualifies(150); !ok {
		t.Error("Qualifies(150) = false, want true")
	}

	entries, err := board.Top()
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(entries) != 3 || entries[0].Score != 300 || entries[0].Name != leaderboard.AnonymousName {
		t.Errorf("Top() = %v", entries)
	}

	records, _ := store.TopScores("blocks", 1)
	if !records[0].AI {
		t.Error("board submissions should carry the AI flag")
	}
}
