// Package leaderboard keeps the top-scores list in a human-editable text
// file: one "score name" entry per line, sorted by score descending and
// truncated to a fixed number of entries on every write.
package leaderboard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// DefaultLimit is the number of entries kept.
const DefaultLimit = 10

// AnonymousName replaces empty player names.
const AnonymousName = "anonymous"

// Entry is one line of the list.
type Entry struct {
	Score int
	Name  string
}

// Board decides top-list membership and records qualifying scores.
type Board interface {
	// Top returns the stored entries, best first.
	Top() ([]Entry, error)
	// Qualifies reports whether the score would enter the list.
	Qualifies(score int) (bool, error)
	// Submit records a score under the given name.
	Submit(score int, name string) error
	// Limit returns the number of entries kept.
	Limit() int
}

// ParseError reports a malformed line in a scores file.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("leaderboard: %s:%d: malformed entry %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errMissingName = errors.New("missing name")
	errBadScore    = errors.New("score must be a non-negative integer")
)

// Parse reads entries from r. Blank lines are ignored; any other line that
// is not "score name" fails the whole read.
func Parse(r io.Reader, path string) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		i := strings.IndexFunc(text, unicode.IsSpace)
		if i < 0 {
			return nil, &ParseError{Path: path, Line: line, Text: text, Err: errMissingName}
		}
		// text is trimmed, so a name follows the separator
		scoreText, name := text[:i], strings.TrimSpace(text[i:])
		score, err := strconv.Atoi(scoreText)
		if err != nil || score < 0 {
			return nil, &ParseError{Path: path, Line: line, Text: text, Err: errBadScore}
		}
		entries = append(entries, Entry{Score: score, Name: name})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: reading %s: %w", path, err)
	}
	return entries, nil
}

// Format writes entries in file format.
func Format(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%d %s\n", e.Score, e.Name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Qualifies applies the membership rule: a score enters when the list has
// room or when it beats the lowest stored score.
func Qualifies(entries []Entry, score, limit int) bool {
	if len(entries) < limit {
		return true
	}
	lowest := entries[0].Score
	for _, e := range entries[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// Insert adds an entry, sorts by score descending (earlier entries win
// ties) and truncates to limit.
func Insert(entries []Entry, e Entry, limit int) []Entry {
	out := append(append([]Entry(nil), entries...), e)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CleanName makes a player name safe for the line format.
func CleanName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousName
	}
	return name
}

// File is a Board backed by a text file. It is safe for concurrent use
// within one process.
type File struct {
	mu    sync.Mutex
	path  string
	limit int
}

// NewFile creates a file-backed board. A leading ~ in path expands to the
// home directory; a non-positive limit uses DefaultLimit.
func NewFile(path string, limit int) (*File, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &File{path: path, limit: limit}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string {
	return f.path
}

// Limit returns the number of entries kept.
func (f *File) Limit() int {
	return f.limit
}

// Top loads the list. A missing file is an empty list.
func (f *File) Top() ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) read() ([]Entry, error) {
	fh, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open %s: %w", f.path, err)
	}
	defer fh.Close()
	return Parse(fh, f.path)
}

// Qualifies reports whether score would enter the stored list.
func (f *File) Qualifies(score int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return false, err
	}
	return Qualifies(entries, score, f.limit), nil
}

// Submit inserts the score and rewrites the file.
func (f *File) Submit(score int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	entries = Insert(entries, Entry{Score: score, Name: CleanName(name)}, f.limit)
	return f.write(entries)
}

// write replaces the file via a temp file in the same directory.
func (f *File) write(entries []Entry) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Format(tmp, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("leaderboard: cannot write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("leaderboard: cannot write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("leaderboard: cannot replace %s: %w", f.path, err)
	}
	return nil
}

var _ Board = (*File)(nil)
