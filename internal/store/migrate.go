package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// models: one row per named, trained perceptron
		`CREATE TABLE IF NOT EXISTS models (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			bias          REAL NOT NULL,
			learning_rate REAL NOT NULL,
			weights       TEXT NOT NULL,
			scale         TEXT NOT NULL DEFAULT '[]',
			epochs        INTEGER NOT NULL DEFAULT 0,
			converged     INTEGER NOT NULL DEFAULT 0,
			created_at    INTEGER NOT NULL
		);`,
		// examples: the deduplicated, bias-extended training set of a model
		`CREATE TABLE IF NOT EXISTS examples (
			model_id  TEXT NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			position  INTEGER NOT NULL,
			inputs    TEXT NOT NULL,
			expected  INTEGER NOT NULL,
			PRIMARY KEY (model_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_examples_model ON examples(model_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
