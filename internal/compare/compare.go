// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package compare keeps per-user comparison lists: short-lived sets
// of materials a user wants to view side by side. Lists live in
// BadgerDB with a TTL so abandoned lists age out on their own.
package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/quarrylabs/materium/internal/catalog"
)

const listKeyPrefix = "compare:"

// MaxItems caps a comparison list. Side-by-side views beyond this get
// unreadable anyway.
const MaxItems = 5

// Config holds comparison list settings.
type Config struct {
	// TTL is how long an untouched list survives.
	TTL time.Duration `koanf:"ttl"`
}

// DefaultConfig returns the default compare configuration.
func DefaultConfig() Config {
	return Config{TTL: 24 * time.Hour}
}

var (
	// ErrListFull is returned when adding to a list at MaxItems.
	ErrListFull = fmt.Errorf("comparison list holds at most %d materials", MaxItems)

	// ErrNotInList is returned when removing a material that is not
	// in the list.
	ErrNotInList = errors.New("material not in comparison list")

	// ErrUnknownMaterial is returned for ids outside the catalog.
	ErrUnknownMaterial = errors.New("unknown material")
)

// Store manages comparison lists keyed by user id.
type Store struct {
	db      *badger.DB
	catalog *catalog.Catalog
	ttl     time.Duration
}

// NewStore builds a comparison list store on an open Badger database.
func NewStore(db *badger.DB, cat *catalog.Catalog, cfg Config) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{db: db, catalog: cat, ttl: ttl}
}

func listKey(userID int64) []byte {
	return []byte(fmt.Sprintf("%s%d", listKeyPrefix, userID))
}

// Add puts a material on the user's list. Adding a material already
// on the list is a no-op. Each write refreshes the list TTL.
func (s *Store) Add(ctx context.Context, userID int64, materialID int) ([]int, error) {
	if _, err := s.catalog.MaterialByID(materialID); err != nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMaterial, materialID)
	}

	var out []int
	err := s.db.Update(func(txn *badger.Txn) error {
		ids, err := readList(txn, userID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if id == materialID {
				out = ids
				return writeList(txn, userID, ids, s.ttl)
			}
		}

		if len(ids) >= MaxItems {
			return ErrListFull
		}
		ids = append(ids, materialID)
		out = ids
		return writeList(txn, userID, ids, s.ttl)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the user's comparison list in insertion order. A
// missing or expired list reads as empty.
func (s *Store) List(ctx context.Context, userID int64) ([]int, error) {
	var ids []int
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ids, err = readList(txn, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// Remove takes a material off the user's list.
func (s *Store) Remove(ctx context.Context, userID int64, materialID int) ([]int, error) {
	var out []int
	err := s.db.Update(func(txn *badger.Txn) error {
		ids, err := readList(txn, userID)
		if err != nil {
			return err
		}

		idx := -1
		for i, id := range ids {
			if id == materialID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotInList
		}

		ids = append(ids[:idx], ids[idx+1:]...)
		out = ids
		if len(ids) == 0 {
			return txn.Delete(listKey(userID))
		}
		return writeList(txn, userID, ids, s.ttl)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []int{}
	}
	return out, nil
}

// Clear drops the user's list entirely.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(listKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

func readList(txn *badger.Txn, userID int64) ([]int, error) {
	item, err := txn.Get(listKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading comparison list: %w", err)
	}

	var ids []int
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &ids)
	})
	if err != nil {
		return nil, fmt.Errorf("decoding comparison list: %w", err)
	}
	return ids, nil
}

func writeList(txn *badger.Txn, userID int64, ids []int, ttl time.Duration) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding comparison list: %w", err)
	}
	entry := badger.NewEntry(listKey(userID), data).WithTTL(ttl)
	return txn.SetEntry(entry)
}
