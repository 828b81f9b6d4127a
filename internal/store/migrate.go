package store

import (
	"database/sql"
	"fmt"
)

// schema holds the full DDL. Every statement is idempotent so Open can run
// it unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL UNIQUE COLLATE NOCASE,
		role          TEXT NOT NULL CHECK (role IN ('student', 'teacher')),
		password_hash TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS question_sets (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		mode     TEXT NOT NULL,
		config   TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		set_id          TEXT NOT NULL,
		set_name        TEXT NOT NULL,
		mode            TEXT NOT NULL,
		score           INTEGER NOT NULL,
		total_rooms     INTEGER NOT NULL,
		elapsed_seconds INTEGER NOT NULL,
		results         TEXT NOT NULL,
		played_at       TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_user_played
		ON sessions (user_id, played_at DESC)`,

	`CREATE TABLE IF NOT EXISTS user_achievements (
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		achievement_id TEXT NOT NULL,
		unlocked_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, achievement_id)
	)`,

	`CREATE TABLE IF NOT EXISTS custom_achievements (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
