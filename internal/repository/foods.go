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

// FoodRepository owns the foods table. The people list is stored as an
// encoded column and decoded on every read.
type FoodRepository struct {
	store *database.StorageContext
}

// NewFoodRepository creates a food repository
func NewFoodRepository(store *database.StorageContext) *FoodRepository {
	return &FoodRepository{store: store}
}

// Kind returns the entity kind owned by this repository
func (r *FoodRepository) Kind() database.EntityKind {
	return database.KindFood
}

func (r *FoodRepository) db() (*gorm.DB, error) {
	return r.store.DB(database.HandleFoods)
}

func (r *FoodRepository) validate(f *database.Food) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalid)
	}
	if f.MoodRating != nil && (*f.MoodRating < 1 || *f.MoodRating > 5) {
		return fmt.Errorf("%w: mood rating must be between 1 and 5", ErrInvalid)
	}
	return nil
}

// Create inserts a food entry, assigning an id if the caller didn't supply one
func (r *FoodRepository) Create(f *database.Food) (string, error) {
	if err := r.validate(f); err != nil {
		return "", err
	}

	db, err := r.db()
	if err != nil {
		return "", err
	}

	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	encoded, err := encodeStringList(f.People)
	if err != nil {
		return "", err
	}
	f.PeopleJSON = encoded

	if err := db.Create(f).Error; err != nil {
		return "", fmt.Errorf("failed to create food: %w", err)
	}
	return f.ID, nil
}

// Get returns one food entry or ErrNotFound
func (r *FoodRepository) Get(id string) (*database.Food, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	var f database.Food
	if err := db.First(&f, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}

	if f.People, err = decodeStringList(f.PeopleJSON); err != nil {
		return nil, err
	}
	return &f, nil
}

// Resolve implements EntityStore
func (r *FoodRepository) Resolve(id string) (interface{}, error) {
	return r.Get(id)
}

// List returns food entries ordered by meal time
func (r *FoodRepository) List(opts ListOptions) ([]database.Food, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := db.Order(opts.order("eaten_at"))
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var foods []database.Food
	if err := query.Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	for i := range foods {
		if foods[i].People, err = decodeStringList(foods[i].PeopleJSON); err != nil {
			return nil, err
		}
	}
	return foods, nil
}

// Update replaces a food entry in full
func (r *FoodRepository) Update(f *database.Food) error {
	if err := r.validate(f); err != nil {
		return err
	}

	db, err := r.db()
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&database.Food{}).Where("id = ?", f.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check food: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	encoded, err := encodeStringList(f.People)
	if err != nil {
		return err
	}
	f.PeopleJSON = encoded

	if err := db.Save(f).Error; err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}
	return nil
}

// Delete removes a food row
func (r *FoodRepository) Delete(id string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	result := db.Delete(&database.Food{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete food: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
