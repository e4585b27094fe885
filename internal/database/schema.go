// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package database

import (
	"context"
	"fmt"
	"time"
)

// createTables creates the schema. All columns are defined in the
// initial CREATE TABLE statements; DuckDB sequences provide the ids
// since IDENTITY columns are not supported with PRIMARY KEY.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_users START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS seq_projects START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS seq_ratings START 1;`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		// spec_json stores the project spec verbatim; persistence must
		// round-trip it without semantic change.
		`CREATE TABLE IF NOT EXISTS projects (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			spec_json TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		// One recommendation run per project; saving replaces the
		// previous run wholesale.
		`CREATE TABLE IF NOT EXISTS recommendations (
			project_id BIGINT NOT NULL,
			material_id INTEGER NOT NULL,
			score DOUBLE NOT NULL,
			rank INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (project_id, material_id)
		);`,

		`CREATE TABLE IF NOT EXISTS ratings (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			project_id BIGINT,
			material_id INTEGER NOT NULL,
			rating DOUBLE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

func (db *DB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_material ON ratings(material_id);`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}
	}
	return nil
}
