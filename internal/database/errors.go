// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package database

import (
	"errors"
	"io"

	"github.com/quarrylabs/materium/internal/logging"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on unique constraint violations, such
	// as a duplicate username.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned while the store circuit breaker is
	// open. Callers should treat it as retryable.
	ErrUnavailable = errors.New("store unavailable")
)

// closeQuietly closes a resource, logging failures at debug level.
func closeQuietly(closer io.Closer) {
	if err := closer.Close(); err != nil {
		logging.Debug().Err(err).Msg("close failed")
	}
}
