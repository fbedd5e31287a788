// Package auth provides the demo login and cookie-backed sessions.
package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/evcraddock/sentiboard/internal/clock"
)

const (
	// DefaultSessionTTL is used when no TTL is configured.
	DefaultSessionTTL = 24 * time.Hour
	cookieName        = "sb_session"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

// Session is one browser session.
type Session struct {
	ID        string
	User      User
	ExpiresAt time.Time
}

// SessionStore manages sessions in SQLite.
type SessionStore struct {
	db     *sql.DB
	clock  clock.Clock
	ttl    time.Duration
	secure bool
}

// NewSessionStore creates a session store. A non-positive ttl selects
// DefaultSessionTTL. secure marks cookies HTTPS-only.
func NewSessionStore(db *sql.DB, c clock.Clock, ttl time.Duration, secure bool) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{db: db, clock: c, ttl: ttl, secure: secure}
}

// Create starts an anonymous session and sets the cookie.
func (s *SessionStore) Create(w http.ResponseWriter) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generating session ID: %w", err)
	}

	sess := &Session{
		ID:        id,
		User:      Anonymous,
		ExpiresAt: s.clock.Now().Add(s.ttl).UTC(),
	}

	if _, err := s.db.Exec(
		"INSERT INTO sessions (id, user_name, role, expires_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.User.Name, sess.User.Role, sess.ExpiresAt,
	); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sess, nil
}

// Get returns the session named by the request cookie.
func (s *SessionStore) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	sess := &Session{ID: cookie.Value}
	err = s.db.QueryRow(
		"SELECT user_name, role, expires_at FROM sessions WHERE id = ?",
		cookie.Value,
	).Scan(&sess.User.Name, &sess.User.Role, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if s.clock.Now().After(sess.ExpiresAt) {
		return nil, ErrNoSession
	}

	return sess, nil
}

// Ensure returns the request's session, starting a new anonymous one when
// the cookie is missing, unknown or expired.
func (s *SessionStore) Ensure(w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := s.Get(r)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNoSession) {
		return nil, err
	}
	return s.Create(w)
}

// SetUser changes who the session belongs to.
func (s *SessionStore) SetUser(id string, u User) error {
	res, err := s.db.Exec(
		"UPDATE sessions SET user_name = ?, role = ? WHERE id = ?",
		u.Name, u.Role, id,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking session update: %w", err)
	}
	if n == 0 {
		return ErrNoSession
	}
	return nil
}

// Cleanup removes expired sessions and returns their IDs.
func (s *SessionStore) Cleanup() (ids []string, err error) {
	now := s.clock.Now().UTC()

	rows, err := s.db.Query("SELECT id FROM sessions WHERE expires_at < ?", now)
	if err != nil {
		return nil, fmt.Errorf("listing expired sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	if _, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", now); err != nil {
		return nil, fmt.Errorf("cleaning up sessions: %w", err)
	}
	return ids, nil
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
