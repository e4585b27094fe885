// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/quarrylabs/materium/internal/database"
	"github.com/quarrylabs/materium/internal/logging"
	"github.com/quarrylabs/materium/internal/models"
)

var (
	// ErrInvalidCredentials is returned on wrong username/password
	// pairs. The message is identical for both cases so login cannot
	// be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when registering an existing
	// username.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStore is the minimal persistence surface the auth service
// needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash, role string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service registers accounts and exchanges credentials for session
// tokens.
type Service struct {
	store UserStore
	jwt   *JWTManager
}

// NewService builds the auth service.
func NewService(store UserStore, jwt *JWTManager) *Service {
	return &Service{store: store, jwt: jwt}
}

// Register validates the credentials, hashes the password and creates
// the account with the default user role.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, username, email, hash, "user")
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	logging.Info().Str("username", username).Int64("user_id", user.ID).Msg("account registered")
	return user, nil
}

// Login checks the credentials and returns a signed session token
// with the authenticated user.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("looking up account: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	logging.Debug().Str("username", username).Msg("login succeeded")
	return token, user, nil
}
