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
	"strings"

	"github.com/quarrylabs/materium/internal/models"
)

// CreateUser inserts a new account and returns it with the assigned
// id. A duplicate username yields ErrConflict.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash, role string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("create_user", func() (any, error) {
		query := `
			INSERT INTO users (id, username, email, password_hash, role)
			VALUES (nextval('seq_users'), ?, ?, ?, ?)
			RETURNING id, created_at
		`
		u := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
			Role:         role,
		}
		err := db.conn.QueryRowContext(ctx, query, username, email, passwordHash, role).
			Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("username %q: %w", username, ErrConflict)
			}
			return nil, fmt.Errorf("creating user: %w", err)
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.User), nil
}

// GetUserByUsername returns the account with the given username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("get_user_by_username", func() (any, error) {
		stmt, err := db.getStmt(ctx, `
			SELECT id, username, email, password_hash, role, created_at
			FROM users WHERE username = ?
		`)
		if err != nil {
			return nil, err
		}

		var u models.User
		err = stmt.QueryRowContext(ctx, username).
			Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("querying user: %w", err)
		}
		return &u, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.User), nil
}

// GetUserByID returns the account with the given id.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out, err := db.execute("get_user_by_id", func() (any, error) {
		stmt, err := db.getStmt(ctx, `
			SELECT id, username, email, password_hash, role, created_at
			FROM users WHERE id = ?
		`)
		if err != nil {
			return nil, err
		}

		var u models.User
		err = stmt.QueryRowContext(ctx, id).
			Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("querying user: %w", err)
		}
		return &u, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.User), nil
}

// isUniqueViolation detects DuckDB unique constraint errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") ||
		strings.Contains(msg, "violates unique constraint") ||
		strings.Contains(msg, "Constraint Error")
}
