// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package database

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/quarrylabs/materium/internal/models"
)

// SaveRating records user feedback for a material. ProjectID zero
// means the rating was given outside any project.
func (db *DB) SaveRating(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("save_rating", func() (any, error) {
		if rating.ProjectID != 0 {
			if err := db.projectOwned(ctx, rating.UserID, rating.ProjectID); err != nil {
				return nil, err
			}
		}

		var projectID any
		if rating.ProjectID != 0 {
			projectID = rating.ProjectID
		}

		query := `
			INSERT INTO ratings (id, user_id, project_id, material_id, rating)
			VALUES (nextval('seq_ratings'), ?, ?, ?, ?)
			RETURNING id, created_at
		`
		saved := *rating
		err := db.conn.QueryRowContext(ctx, query,
			rating.UserID, projectID, rating.MaterialID, rating.Rating).
			Scan(&saved.ID, &saved.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("saving rating: %w", err)
		}
		return &saved, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.Rating), nil
}

// ListRatings returns all ratings given by the user, newest first.
func (db *DB) ListRatings(ctx context.Context, userID int64) ([]models.Rating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("list_ratings", func() (any, error) {
		stmt, err := db.getStmt(ctx, `
			SELECT id, user_id, project_id, material_id, rating, created_at
			FROM ratings WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
		`)
		if err != nil {
			return nil, err
		}

		rows, err := stmt.QueryContext(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing ratings: %w", err)
		}
		defer closeQuietly(rows)

		ratings := make([]models.Rating, 0)
		for rows.Next() {
			var (
				r         models.Rating
				projectID sql.NullInt64
			)
			err := rows.Scan(&r.ID, &r.UserID, &projectID, &r.MaterialID, &r.Rating, &r.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("scanning rating: %w", err)
			}
			r.ProjectID = projectID.Int64
			ratings = append(ratings, r)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating ratings: %w", err)
		}
		return ratings, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Rating), nil
}

// RatingsForTraining returns every rating joined against its project
// spec, which is what the score model trains on. Ratings without a
// project come back with a nil Spec.
func (db *DB) RatingsForTraining(ctx context.Context) ([]models.Rating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("ratings_for_training", func() (any, error) {
		stmt, err := db.getStmt(ctx, `
			SELECT r.id, r.user_id, r.project_id, r.material_id, r.rating, r.created_at,
			       p.spec_json
			FROM ratings r
			LEFT JOIN projects p ON p.id = r.project_id
			ORDER BY r.id ASC
		`)
		if err != nil {
			return nil, err
		}

		rows, err := stmt.QueryContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing training ratings: %w", err)
		}
		defer closeQuietly(rows)

		ratings := make([]models.Rating, 0)
		for rows.Next() {
			var (
				r         models.Rating
				projectID sql.NullInt64
				specJSON  sql.NullString
			)
			err := rows.Scan(&r.ID, &r.UserID, &projectID, &r.MaterialID, &r.Rating,
				&r.CreatedAt, &specJSON)
			if err != nil {
				return nil, fmt.Errorf("scanning training rating: %w", err)
			}
			r.ProjectID = projectID.Int64
			if specJSON.Valid {
				var spec models.ProjectSpec
				if err := json.Unmarshal([]byte(specJSON.String), &spec); err != nil {
					return nil, fmt.Errorf("decoding project spec: %w", err)
				}
				r.Spec = &spec
			}
			ratings = append(ratings, r)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating training ratings: %w", err)
		}
		return ratings, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Rating), nil
}
