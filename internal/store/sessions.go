package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/quiz"
)

// AppendSession records a completed run. History is append-only; sessions
// are never mutated afterward.
func (s *Store) AppendSession(ctx context.Context, sess *game.Session) error {
	results, err := json.Marshal(sess.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions
			(id, user_id, set_id, set_name, mode, score, total_rooms, elapsed_seconds, results, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.SetID, sess.SetName, string(sess.Mode),
		sess.Score, sess.TotalRooms, sess.ElapsedSeconds, string(results), sess.PlayedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// SessionsForUser returns a user's history most-recent-first.
func (s *Store) SessionsForUser(ctx context.Context, userID string) ([]*game.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, set_id, set_name, mode, score, total_rooms, elapsed_seconds, results, played_at
		FROM sessions WHERE user_id = ? ORDER BY played_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*game.Session
	for rows.Next() {
		var sess game.Session
		var mode, results string
		err := rows.Scan(&sess.ID, &sess.UserID, &sess.SetID, &sess.SetName, &mode,
			&sess.Score, &sess.TotalRooms, &sess.ElapsedSeconds, &results, &sess.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Mode = quiz.Mode(mode)
		if err := json.Unmarshal([]byte(results), &sess.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// SessionCount returns the total number of recorded runs, across all users.
func (s *Store) SessionCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// ResetAll wipes every collection. Used by the reset command.
func (s *Store) ResetAll(ctx context.Context) error {
	tables := []string{
		"sessions", "user_achievements", "custom_achievements",
		"question_sets", "settings", "llm_requests", "users",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
