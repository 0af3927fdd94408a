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

// MemoryRepository owns the memories table. People and photo lists are
// encoded columns decoded on every read.
type MemoryRepository struct {
	store *database.StorageContext
}

// NewMemoryRepository creates a memory repository
func NewMemoryRepository(store *database.StorageContext) *MemoryRepository {
	return &MemoryRepository{store: store}
}

// Kind returns the entity kind owned by this repository
func (r *MemoryRepository) Kind() database.EntityKind {
	return database.KindMemory
}

func (r *MemoryRepository) db() (*gorm.DB, error) {
	return r.store.DB(database.HandleMemories)
}

// encodeColumns serializes the people and photo lists onto the row
func (r *MemoryRepository) encodeColumns(m *database.Memory) error {
	people, err := encodeStringList(m.People)
	if err != nil {
		return err
	}
	photos, err := encodeStringList(m.Photos)
	if err != nil {
		return err
	}
	m.PeopleJSON = people
	m.PhotosJSON = photos
	return nil
}

// decodeColumns parses the encoded columns back into slices
func (r *MemoryRepository) decodeColumns(m *database.Memory) error {
	var err error
	if m.People, err = decodeStringList(m.PeopleJSON); err != nil {
		return err
	}
	if m.Photos, err = decodeStringList(m.PhotosJSON); err != nil {
		return err
	}
	return nil
}

// Create inserts a memory, assigning an id if the caller didn't supply one
func (r *MemoryRepository) Create(m *database.Memory) (string, error) {
	if strings.TrimSpace(m.Title) == "" {
		return "", fmt.Errorf("%w: memory title is required", ErrInvalid)
	}

	db, err := r.db()
	if err != nil {
		return "", err
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if err := r.encodeColumns(m); err != nil {
		return "", err
	}

	if err := db.Create(m).Error; err != nil {
		return "", fmt.Errorf("failed to create memory: %w", err)
	}
	return m.ID, nil
}

// Get returns one memory or ErrNotFound
func (r *MemoryRepository) Get(id string) (*database.Memory, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	var m database.Memory
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}

	if err := r.decodeColumns(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Resolve implements EntityStore
func (r *MemoryRepository) Resolve(id string) (interface{}, error) {
	return r.Get(id)
}

// List returns memories ordered by when they occurred
func (r *MemoryRepository) List(opts ListOptions) ([]database.Memory, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := db.Order(opts.order("occurred_at"))
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var memories []database.Memory
	if err := query.Find(&memories).Error; err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}

	for i := range memories {
		if err := r.decodeColumns(&memories[i]); err != nil {
			return nil, err
		}
	}
	return memories, nil
}

// Update replaces a memory in full
func (r *MemoryRepository) Update(m *database.Memory) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: memory title is required", ErrInvalid)
	}

	db, err := r.db()
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&database.Memory{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check memory: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if err := r.encodeColumns(m); err != nil {
		return err
	}

	if err := db.Save(m).Error; err != nil {
		return fmt.Errorf("failed to update memory: %w", err)
	}
	return nil
}

// Delete removes a memory row
func (r *MemoryRepository) Delete(id string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	result := db.Delete(&database.Memory{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete memory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
