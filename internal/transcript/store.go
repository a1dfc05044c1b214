// Package transcript persists chat exchanges to SQLite. The engine itself
// never performs I/O; the transport layer writes transcripts after each
// synchronous ProcessMessage call returns.
package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamzasdq/earnlybot/internal/db"
)

// Entry is one persisted turn of a conversation.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	Role       string    `json:"role"`
	Message    string    `json:"message"`
	Intent     string    `json:"intent,omitempty"`
	Language   string    `json:"language"`
	Confidence float64   `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store manages transcript persistence.
type Store struct {
	db *db.DB
}

// NewStore creates a transcript store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save inserts one turn.
func (s *Store) Save(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_transcripts (id, user_id, session_id, role, message, intent, language, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.SessionID, e.Role, e.Message, e.Intent, e.Language, e.Confidence, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting transcript turn: %w", err)
	}
	return nil
}

// History returns the persisted turns for a conversation, oldest first,
// at most limit rows (20 when limit is not positive).
func (s *Store) History(ctx context.Context, userID, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, session_id, role, message, intent, language, confidence, created_at
		 FROM chat_transcripts WHERE user_id = ? AND session_id = ?
		 ORDER BY created_at ASC LIMIT ?`,
		userID, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.SessionID, &e.Role, &e.Message, &e.Intent, &e.Language, &e.Confidence, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transcript turn: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all persisted turns for a conversation.
func (s *Store) Clear(ctx context.Context, userID, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_transcripts WHERE user_id = ? AND session_id = ?`,
		userID, sessionID,
	)
	if err != nil {
		return fmt.Errorf("clearing transcript: %w", err)
	}
	return nil
}

// Count returns the total number of persisted turns.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_transcripts`).Scan(&count)
	return count, err
}
