// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package catalog

import "errors"

// ErrNotFound is returned when a material or supplier id does not
// exist in the catalog.
var ErrNotFound = errors.New("not found")
