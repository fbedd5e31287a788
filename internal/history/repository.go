package history

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/evcraddock/sentiboard/internal/clock"
	"github.com/evcraddock/sentiboard/internal/comment"
)

// DefaultLimit is the number of entries ListRecent returns when limit <= 0.
const DefaultLimit = 10

// Repository stores analysis history in SQLite.
type Repository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewRepository creates a history repository.
func NewRepository(db *sql.DB, c clock.Clock) *Repository {
	return &Repository{db: db, clock: c}
}

// Add records the outcome of an upload.
func (r *Repository) Add(sessionID, fileName string, b comment.Batch) (*Entry, error) {
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	e := &Entry{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		FileName:    fileName,
		Total:       len(b.Comments),
		Counts:      b.Distribution,
		TopKeywords: keywordWords(b.Keywords),
		CreatedAt:   r.clock.Now().UTC(),
	}

	if _, err := r.db.Exec(
		`INSERT INTO analyses (id, session_id, file_name, total, positive, negative, neutral, top_keywords, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.FileName, e.Total,
		e.Counts.Positive, e.Counts.Negative, e.Counts.Neutral,
		strings.Join(e.TopKeywords, ","), e.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("inserting analysis: %w", err)
	}

	return e, nil
}

// ListRecent returns the newest entries for a session, newest first. An
// empty sessionID lists every session.
func (r *Repository) ListRecent(sessionID string, limit int) (entries []*Entry, err error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT id, session_id, file_name, total, positive, negative, neutral, top_keywords, created_at
		FROM analyses`
	args := []any{}
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var e Entry
		var keywords string
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.FileName, &e.Total,
			&e.Counts.Positive, &e.Counts.Negative, &e.Counts.Neutral,
			&keywords, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		e.TopKeywords = []string{}
		if keywords != "" {
			e.TopKeywords = strings.Split(keywords, ",")
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}

	return entries, nil
}

// DeleteSession removes every entry recorded for a session. It returns
// the number of entries removed.
func (r *Repository) DeleteSession(sessionID string) (int64, error) {
	res, err := r.db.Exec("DELETE FROM analyses WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, fmt.Errorf("deleting analyses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted analyses: %w", err)
	}
	return n, nil
}
