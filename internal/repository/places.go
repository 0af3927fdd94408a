// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lifelog/lifelog-mcp/internal/database"
	"gorm.io/gorm"
)

// TombstoneMarker prefixes the notes annotation left on a place that was
// merged into another. Tombstoned rows stay resolvable by id so historical
// edges that still point at them keep working.
const TombstoneMarker = "[merged-into:"

// PlaceRepository owns the places table
type PlaceRepository struct {
	store *database.StorageContext
}

// NewPlaceRepository creates a place repository
func NewPlaceRepository(store *database.StorageContext) *PlaceRepository {
	return &PlaceRepository{store: store}
}

// Kind returns the entity kind owned by this repository
func (r *PlaceRepository) Kind() database.EntityKind {
	return database.KindPlace
}

func (r *PlaceRepository) db() (*gorm.DB, error) {
	return r.store.DB(database.HandlePlaces)
}

// validate rejects a place before any write. Name is required; coordinates
// come as a pair or not at all.
func (r *PlaceRepository) validate(p *database.Place) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: place name is required", ErrInvalid)
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalid)
	}
	return nil
}

// Create inserts a place, assigning an id if the caller didn't supply one
func (r *PlaceRepository) Create(p *database.Place) (string, error) {
	if err := r.validate(p); err != nil {
		return "", err
	}

	db, err := r.db()
	if err != nil {
		return "", err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := db.Create(p).Error; err != nil {
		return "", fmt.Errorf("failed to create place: %w", err)
	}
	return p.ID, nil
}

// Get returns one place or ErrNotFound. Tombstoned places resolve like any
// other row.
func (r *PlaceRepository) Get(id string) (*database.Place, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	var p database.Place
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// Resolve implements EntityStore
func (r *PlaceRepository) Resolve(id string) (interface{}, error) {
	return r.Get(id)
}

// List returns places ordered by creation time. The merger relies on this
// order being stable: the first-listed member of a duplicate group survives.
func (r *PlaceRepository) List(opts ListOptions) ([]database.Place, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := db.Order(opts.order("created_at"))
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var places []database.Place
	if err := query.Find(&places).Error; err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

// FindByName returns the first place whose trimmed, case-folded name matches,
// skipping tombstoned rows. Linear scan; this is identity matching, not
// search.
func (r *PlaceRepository) FindByName(name string) (*database.Place, error) {
	key := NormalizeName(name)
	if key == "" {
		return nil, ErrNotFound
	}

	places, err := r.List(ListOptions{Ascending: true})
	if err != nil {
		return nil, err
	}

	for i := range places {
		if IsTombstoned(&places[i]) {
			continue
		}
		if NormalizeName(places[i].Name) == key {
			return &places[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces a place in full
func (r *PlaceRepository) Update(p *database.Place) error {
	if err := r.validate(p); err != nil {
		return err
	}

	db, err := r.db()
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&database.Place{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check place: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if err := db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	return nil
}

// Delete removes a place row. Edges referencing it become dangling and are
// skipped by readers.
func (r *PlaceRepository) Delete(id string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	result := db.Delete(&database.Place{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete place: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Tombstone marks a place as merged into a survivor by annotating its notes.
// The row is never physically deleted.
func (r *PlaceRepository) Tombstone(p *database.Place, survivorID string) error {
	marker := fmt.Sprintf("%s%s]", TombstoneMarker, survivorID)
	if p.Notes == "" {
		p.Notes = marker
	} else {
		p.Notes = p.Notes + " " + marker
	}
	return r.Update(p)
}

// IsTombstoned reports whether a place was merged into another
func IsTombstoned(p *database.Place) bool {
	return strings.Contains(p.Notes, TombstoneMarker)
}
