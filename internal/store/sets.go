package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmaze/dungeonmaze/internal/quiz"
)

// SaveQuestionSet inserts or replaces a question set. The whole configured
// set is stored as one JSON value; there are no partial updates.
func (s *Store) SaveQuestionSet(ctx context.Context, set *quiz.QuestionSet) error {
	config, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO question_sets (id, name, mode, config, position)
		VALUES (?, ?, ?, ?, COALESCE(
			(SELECT position FROM question_sets WHERE id = ?),
			(SELECT COALESCE(MAX(position), 0) + 1 FROM question_sets)))
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, mode = excluded.mode, config = excluded.config`,
		set.ID, set.Name, string(set.Mode), string(config), set.ID)
	if err != nil {
		return fmt.Errorf("save question set: %w", err)
	}
	return nil
}

// QuestionSets returns all sets in their configured order.
func (s *Store) QuestionSets(ctx context.Context) ([]quiz.QuestionSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT config FROM question_sets ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("query question sets: %w", err)
	}
	defer rows.Close()

	var sets []quiz.QuestionSet
	for rows.Next() {
		var config string
		if err := rows.Scan(&config); err != nil {
			return nil, fmt.Errorf("scan question set: %w", err)
		}
		var set quiz.QuestionSet
		if err := json.Unmarshal([]byte(config), &set); err != nil {
			return nil, fmt.Errorf("decode question set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// QuestionSet returns one set by ID.
func (s *Store) QuestionSet(ctx context.Context, id string) (*quiz.QuestionSet, error) {
	var config string
	err := s.db.QueryRowContext(ctx,
		`SELECT config FROM question_sets WHERE id = ?`, id).Scan(&config)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query question set: %w", err)
	}
	var set quiz.QuestionSet
	if err := json.Unmarshal([]byte(config), &set); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	return &set, nil
}

// DeleteQuestionSet removes a set. Past sessions keep their copied set name.
func (s *Store) DeleteQuestionSet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM question_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete question set: %w", err)
	}
	return requireRow(res)
}

// SeedDefaultSets inserts the built-in question sets into an empty store so
// a first game can start before any teacher configuration.
func (s *Store) SeedDefaultSets(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM question_sets`).Scan(&n); err != nil {
		return fmt.Errorf("count question sets: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, set := range quiz.DefaultQuestionSets() {
		if err := s.SaveQuestionSet(ctx, &set); err != nil {
			return err
		}
	}
	return nil
}
