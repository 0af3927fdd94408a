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

// PersonRepository owns the people table
type PersonRepository struct {
	store *database.StorageContext
}

// NewPersonRepository creates a person repository
func NewPersonRepository(store *database.StorageContext) *PersonRepository {
	return &PersonRepository{store: store}
}

// Kind returns the entity kind owned by this repository
func (r *PersonRepository) Kind() database.EntityKind {
	return database.KindPerson
}

func (r *PersonRepository) db() (*gorm.DB, error) {
	return r.store.DB(database.HandlePeople)
}

// Create inserts a person, assigning an id if the caller didn't supply one
func (r *PersonRepository) Create(p *database.Person) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("%w: person name is required", ErrInvalid)
	}

	db, err := r.db()
	if err != nil {
		return "", err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := db.Create(p).Error; err != nil {
		return "", fmt.Errorf("failed to create person: %w", err)
	}
	return p.ID, nil
}

// Get returns one person or ErrNotFound
func (r *PersonRepository) Get(id string) (*database.Person, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	var p database.Person
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// Resolve implements EntityStore
func (r *PersonRepository) Resolve(id string) (interface{}, error) {
	return r.Get(id)
}

// List returns people ordered by creation time
func (r *PersonRepository) List(opts ListOptions) ([]database.Person, error) {
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

	var people []database.Person
	if err := query.Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// FindByName returns the first person whose trimmed, case-folded name matches
func (r *PersonRepository) FindByName(name string) (*database.Person, error) {
	key := NormalizeName(name)
	if key == "" {
		return nil, ErrNotFound
	}

	people, err := r.List(ListOptions{Ascending: true})
	if err != nil {
		return nil, err
	}

	for i := range people {
		if NormalizeName(people[i].Name) == key {
			return &people[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces a person in full
func (r *PersonRepository) Update(p *database.Person) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: person name is required", ErrInvalid)
	}

	db, err := r.db()
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&database.Person{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check person: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if err := db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return nil
}

// Delete removes a person row
func (r *PersonRepository) Delete(id string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	result := db.Delete(&database.Person{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete person: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
