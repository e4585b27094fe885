// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/quarrylabs/materium/internal/auth"
	"github.com/quarrylabs/materium/internal/models"
	"github.com/quarrylabs/materium/internal/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondValidationError(w, ve)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			respondError(w, http.StatusConflict, models.ErrCodeConflict, err.Error(), nil)
			return
		}
		// Username/email/password rule failures surface here as
		// plain errors.
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	respondData(w, http.StatusCreated, map[string]interface{}{"user": user}, started)
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondValidationError(w, ve)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, err.Error(), nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	}, started)
}
