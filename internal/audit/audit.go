// Package audit records operational plugin events (permission denials,
// tab-build failures) to the audit_log table.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is a single audit log row.
type Entry struct {
	ID        string          `json:"id"`
	UserID    *string         `json:"user_id"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource"`
	Details   json.RawMessage `json:"details"`
	Timestamp time.Time       `json:"timestamp"`
}

// Store writes audit entries. A nil pool disables recording, so callers
// can wire the store unconditionally.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Record inserts an audit entry. Failures are logged, not propagated;
// audit writes must never fail a request.
func (s *Store) Record(ctx context.Context, userID, action, resource string, details map[string]any) {
	if s == nil || s.pool == nil {
		return
	}
	payload, err := json.Marshal(details)
	if err != nil {
		payload = json.RawMessage("{}")
	}
	var uid *string
	if userID != "" {
		uid = &userID
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_log (user_id, action, resource, details) VALUES ($1, $2, $3, $4)`,
		uid, action, resource, payload,
	)
	if err != nil {
		log.Printf("audit: insert failed: %v", err)
	}
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, action, resource, details, created_at
		 FROM audit_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Resource, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
