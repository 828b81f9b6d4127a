package store

import (
	"context"
	"fmt"

	"github.com/dmaze/dungeonmaze/internal/achievements"
)

// UnlockAchievements adds badge IDs to a user's unlocked set. Re-unlocking
// an existing ID is a no-op, so the set only ever grows through this path.
func (s *Store) UnlockAchievements(ctx context.Context, userID string, ids []string) error {
	for _, id := range ids {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_achievements (user_id, achievement_id) VALUES (?, ?)`,
			userID, id)
		if err != nil {
			return fmt.Errorf("unlock %s: %w", id, err)
		}
	}
	return nil
}

// UnlockedAchievements returns a user's badge IDs in unlock order.
func (s *Store) UnlockedAchievements(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT achievement_id FROM user_achievements WHERE user_id = ? ORDER BY unlocked_at, achievement_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RevokeAchievement removes a badge from a user. Only the teacher dashboard
// calls this; the game engine never takes badges away.
func (s *Store) RevokeAchievement(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_achievements WHERE user_id = ? AND achievement_id = ?`,
		userID, id)
	if err != nil {
		return fmt.Errorf("revoke %s: %w", id, err)
	}
	return nil
}

// SaveCustomAchievement inserts or replaces a teacher-defined badge.
func (s *Store) SaveCustomAchievement(ctx context.Context, a achievements.Achievement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_achievements (id, title, description, icon)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title, description = excluded.description, icon = excluded.icon`,
		a.ID, a.Title, a.Description, string(a.Icon))
	if err != nil {
		return fmt.Errorf("save custom achievement: %w", err)
	}
	return nil
}

// CustomAchievements returns all teacher-defined badges.
func (s *Store) CustomAchievements(ctx context.Context) ([]achievements.Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, icon FROM custom_achievements ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query custom achievements: %w", err)
	}
	defer rows.Close()

	var list []achievements.Achievement
	for rows.Next() {
		var a achievements.Achievement
		var icon string
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &icon); err != nil {
			return nil, fmt.Errorf("scan custom achievement: %w", err)
		}
		a.Icon = achievements.Icon(icon)
		list = append(list, a)
	}
	return list, rows.Err()
}

// DeleteCustomAchievement removes a teacher-defined badge definition.
// Already-unlocked instances of it stay on student records.
func (s *Store) DeleteCustomAchievement(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM custom_achievements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete custom achievement: %w", err)
	}
	return requireRow(res)
}
