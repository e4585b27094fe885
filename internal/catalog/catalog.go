// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package catalog provides the static materials and suppliers dataset.
//
// The dataset is compiled into the binary and immutable at runtime.
// The order of the materials slice is the canonical insertion order;
// every tie-break in the recommendation pipeline resolves to it.
package catalog

import (
	"fmt"

	"github.com/quarrylabs/materium/internal/models"
)

// Catalog is a read-only view over the materials and suppliers
// reference data. All accessors return copies; callers may mutate
// returned values freely.
type Catalog struct {
	materials []models.MaterialRecord
	suppliers []models.SupplierRecord

	materialByID map[int]int
	supplierByID map[int]int
}

// New builds a catalog over the built-in dataset.
func New() *Catalog {
	return NewWith(builtinMaterials(), builtinSuppliers())
}

// NewWith builds a catalog over the given records. Used by tests to
// exercise the pipeline against small fixtures.
func NewWith(materials []models.MaterialRecord, suppliers []models.SupplierRecord) *Catalog {
	c := &Catalog{
		materials:    materials,
		suppliers:    suppliers,
		materialByID: make(map[int]int, len(materials)),
		supplierByID: make(map[int]int, len(suppliers)),
	}
	for i, m := range materials {
		c.materialByID[m.ID] = i
	}
	for i, s := range suppliers {
		c.supplierByID[s.ID] = i
	}
	return c
}

// Len returns the number of materials in the catalog.
func (c *Catalog) Len() int {
	return len(c.materials)
}

// Materials returns all materials in insertion order.
func (c *Catalog) Materials() []models.MaterialRecord {
	out := make([]models.MaterialRecord, len(c.materials))
	copy(out, c.materials)
	return out
}

// MaterialByID returns the material with the given id.
func (c *Catalog) MaterialByID(id int) (models.MaterialRecord, error) {
	i, ok := c.materialByID[id]
	if !ok {
		return models.MaterialRecord{}, fmt.Errorf("material %d: %w", id, ErrNotFound)
	}
	return c.materials[i], nil
}

// MaterialsByType returns all materials of the given type, in
// insertion order.
func (c *Catalog) MaterialsByType(materialType string) []models.MaterialRecord {
	var out []models.MaterialRecord
	for _, m := range c.materials {
		if m.Type == materialType {
			out = append(out, m)
		}
	}
	return out
}

// MaterialsByApplication returns all materials suitable for the given
// application, in insertion order.
func (c *Catalog) MaterialsByApplication(app string) []models.MaterialRecord {
	var out []models.MaterialRecord
	for i := range c.materials {
		if c.materials[i].HasApplication(app) {
			out = append(out, c.materials[i])
		}
	}
	return out
}

// Suppliers returns all suppliers in insertion order.
func (c *Catalog) Suppliers() []models.SupplierRecord {
	out := make([]models.SupplierRecord, len(c.suppliers))
	copy(out, c.suppliers)
	return out
}

// SuppliersByRegion returns all suppliers serving the given region,
// in insertion order.
func (c *Catalog) SuppliersByRegion(region string) []models.SupplierRecord {
	var out []models.SupplierRecord
	for _, s := range c.suppliers {
		if s.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// SupplierByID returns the supplier with the given id.
func (c *Catalog) SupplierByID(id int) (models.SupplierRecord, error) {
	i, ok := c.supplierByID[id]
	if !ok {
		return models.SupplierRecord{}, fmt.Errorf("supplier %d: %w", id, ErrNotFound)
	}
	return c.suppliers[i], nil
}

// SupplierForMaterial returns the supplier of the given material.
func (c *Catalog) SupplierForMaterial(materialID int) (models.SupplierRecord, error) {
	m, err := c.MaterialByID(materialID)
	if err != nil {
		return models.SupplierRecord{}, err
	}
	return c.SupplierByID(m.SupplierID)
}
