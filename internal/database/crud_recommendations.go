// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quarrylabs/materium/internal/models"
)

// SaveRecommendations stores a recommendation run for an owned
// project, replacing any previously saved run wholesale.
func (db *DB) SaveRecommendations(ctx context.Context, userID, projectID int64, results []models.RankedResult) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.execute("save_recommendations", func() (any, error) {
		if err := db.projectOwned(ctx, userID, projectID); err != nil {
			return nil, err
		}

		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("starting transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recommendations WHERE project_id = ?`, projectID); err != nil {
			return nil, fmt.Errorf("clearing recommendations: %w", err)
		}

		for _, r := range results {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO recommendations (project_id, material_id, score, rank)
				VALUES (?, ?, ?, ?)
			`, projectID, r.MaterialID, r.Score, r.Rank)
			if err != nil {
				return nil, fmt.Errorf("saving recommendation: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing recommendations: %w", err)
		}
		return nil, nil
	})
	return err
}

// GetRecommendations returns the saved run for an owned project in
// rank order. A project with no saved run yields an empty slice.
func (db *DB) GetRecommendations(ctx context.Context, userID, projectID int64) ([]models.RankedResult, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("get_recommendations", func() (any, error) {
		if err := db.projectOwned(ctx, userID, projectID); err != nil {
			return nil, err
		}

		stmt, err := db.getStmt(ctx, `
			SELECT material_id, score, rank
			FROM recommendations WHERE project_id = ?
			ORDER BY rank ASC
		`)
		if err != nil {
			return nil, err
		}

		rows, err := stmt.QueryContext(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("listing recommendations: %w", err)
		}
		defer closeQuietly(rows)

		results := make([]models.RankedResult, 0)
		for rows.Next() {
			var r models.RankedResult
			if err := rows.Scan(&r.MaterialID, &r.Score, &r.Rank); err != nil {
				return nil, fmt.Errorf("scanning recommendation: %w", err)
			}
			results = append(results, r)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating recommendations: %w", err)
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.RankedResult), nil
}

// projectOwned verifies the project exists and belongs to the user.
func (db *DB) projectOwned(ctx context.Context, userID, projectID int64) error {
	stmt, err := db.getStmt(ctx, `SELECT 1 FROM projects WHERE id = ? AND user_id = ?`)
	if err != nil {
		return err
	}
	var one int
	err = stmt.QueryRowContext(ctx, projectID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("project %d: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking project ownership: %w", err)
	}
	return nil
}
