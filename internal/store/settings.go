package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const currentUserKey = "current_user"

// SetCurrentUser remembers who is logged in across launches.
func (s *Store) SetCurrentUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		currentUserKey, userID)
	if err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in account, or ErrNotFound when nobody is
// logged in (or the remembered account was deleted).
func (s *Store) CurrentUser(ctx context.Context) (*User, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, currentUserKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return s.UserByID(ctx, id)
}

// ClearCurrentUser logs out.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, currentUserKey)
	if err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}
