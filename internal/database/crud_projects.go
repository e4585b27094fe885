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

	json "github.com/goccy/go-json"

	"github.com/quarrylabs/materium/internal/models"
)

// SaveProject persists a new project for the user and returns it with
// the assigned id and timestamps.
func (db *DB) SaveProject(ctx context.Context, userID int64, name string, spec models.ProjectSpec) (*models.Project, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encoding project spec: %w", err)
	}

	out, err := db.execute("save_project", func() (any, error) {
		query := `
			INSERT INTO projects (id, user_id, name, spec_json)
			VALUES (nextval('seq_projects'), ?, ?, ?)
			RETURNING id, created_at, updated_at
		`
		p := &models.Project{
			UserID: userID,
			Name:   name,
			Spec:   spec,
		}
		err := db.conn.QueryRowContext(ctx, query, userID, name, string(specJSON)).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("creating project: %w", err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.Project), nil
}

// GetProject returns the project with the given id, scoped to its
// owner. A project belonging to another user reads as ErrNotFound.
func (db *DB) GetProject(ctx context.Context, userID, projectID int64) (*models.Project, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("get_project", func() (any, error) {
		stmt, err := db.getStmt(ctx, `
			SELECT id, user_id, name, spec_json, created_at, updated_at
			FROM projects WHERE id = ? AND user_id = ?
		`)
		if err != nil {
			return nil, err
		}

		p, err := scanProject(stmt.QueryRowContext(ctx, projectID, userID))
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.Project), nil
}

// ListProjects returns all projects owned by the user, newest first.
func (db *DB) ListProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("list_projects", func() (any, error) {
		stmt, err := db.getStmt(ctx, `
			SELECT id, user_id, name, spec_json, created_at, updated_at
			FROM projects WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
		`)
		if err != nil {
			return nil, err
		}

		rows, err := stmt.QueryContext(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		defer closeQuietly(rows)

		projects := make([]models.Project, 0)
		for rows.Next() {
			p, err := scanProject(rows)
			if err != nil {
				return nil, err
			}
			projects = append(projects, *p)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating projects: %w", err)
		}
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Project), nil
}

// UpdateProject replaces the name and spec of an owned project.
func (db *DB) UpdateProject(ctx context.Context, userID, projectID int64, name string, spec models.ProjectSpec) (*models.Project, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encoding project spec: %w", err)
	}

	out, err := db.execute("update_project", func() (any, error) {
		query := `
			UPDATE projects
			SET name = ?, spec_json = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND user_id = ?
			RETURNING id, user_id, name, created_at, updated_at
		`
		p := &models.Project{Spec: spec}
		err := db.conn.QueryRowContext(ctx, query, name, string(specJSON), projectID, userID).
			Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("updating project: %w", err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.Project), nil
}

// DeleteProject removes an owned project together with its saved
// recommendations.
func (db *DB) DeleteProject(ctx context.Context, userID, projectID int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.execute("delete_project", func() (any, error) {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("starting transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		res, err := tx.ExecContext(ctx,
			`DELETE FROM projects WHERE id = ? AND user_id = ?`, projectID, userID)
		if err != nil {
			return nil, fmt.Errorf("deleting project: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("deleting project: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recommendations WHERE project_id = ?`, projectID); err != nil {
			return nil, fmt.Errorf("deleting project recommendations: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing project delete: %w", err)
		}
		return nil, nil
	})
	return err
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p        models.Project
		specJSON string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &specJSON, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if err := json.Unmarshal([]byte(specJSON), &p.Spec); err != nil {
		return nil, fmt.Errorf("decoding project spec: %w", err)
	}
	return &p, nil
}
