// Package convstore persists council conversations as JSON files, one per
// conversation, under a data directory.
package convstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound reports that no conversation exists for the requested id.
var ErrNotFound = errors.New("conversation not found")

// Conversation is one persisted dialogue: per turn, the user prompt, the
// council members' answers, and the chairman synthesis.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Turns     []Turn    `json:"turns"`
}

// Turn records one council round.
type Turn struct {
	Prompt    string         `json:"prompt"`
	Answers   []MemberAnswer `json:"answers"`
	Synthesis string         `json:"synthesis,omitempty"`
	At        time.Time      `json:"at"`
}

// MemberAnswer is one member's contribution to a turn. A member that
// produced no result is recorded with Failed set so the record still shows
// who was asked.
type MemberAnswer struct {
	Model     string          `json:"model"`
	Content   string          `json:"content,omitempty"`
	Reasoning json.RawMessage `json:"reasoning_details,omitempty"`
	Failed    bool            `json:"failed,omitempty"`
}

// Append adds a turn to the conversation.
func (c *Conversation) Append(t Turn) {
	c.Turns = append(c.Turns, t)
}

// Summary is a conversation listing entry.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Turns     int       `json:"turns"`
}

// Store reads and writes conversations under a single directory.
type Store struct {
	dir string
}

// Open ensures the data directory exists and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Create starts a new conversation with a fresh id. It is not persisted
// until Save.
func (s *Store) Create(title string) *Conversation {
	now := time.Now().UTC()
	return &Conversation{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Save writes the conversation atomically: a temp file in the same
// directory, then a rename over the final name.
func (s *Store) Save(c *Conversation) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", c.ID, err)
	}

	tmp, err := os.CreateTemp(s.dir, c.ID+".tmp-")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write conversation %s: %w", c.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write conversation %s: %w", c.ID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(c.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write conversation %s: %w", c.ID, err)
	}
	return nil
}

// Load reads one conversation by id.
func (s *Store) Load(id string) (*Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid conversation id %q", id)
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var c Conversation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return &c, nil
}

// List returns a summary per stored conversation, most recently updated
// first. Unreadable files are skipped with a warning rather than failing
// the whole listing.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		c, err := s.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			zap.L().Warn("skipping unreadable conversation",
				zap.String("file", name),
				zap.Error(err))
			continue
		}
		summaries = append(summaries, Summary{
			ID:        c.ID,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			Turns:     len(c.Turns),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
