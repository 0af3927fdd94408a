// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lifelog/lifelog-mcp/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MoodRepository owns the moods table and its three child tables (tags,
// activities, metadata). Children cascade on delete; relationship edges do
// not — they live in the graph handle and readers tolerate dangling ones.
type MoodRepository struct {
	store *database.StorageContext
	log   *zap.Logger
}

// NewMoodRepository creates a mood repository
func NewMoodRepository(store *database.StorageContext, log *zap.Logger) *MoodRepository {
	return &MoodRepository{store: store, log: log}
}

// Kind returns the entity kind owned by this repository
func (r *MoodRepository) Kind() database.EntityKind {
	return database.KindMood
}

func (r *MoodRepository) db() (*gorm.DB, error) {
	return r.store.DB(database.HandleMoods)
}

// Create inserts a mood entry and its child rows, assigning an id if the
// caller didn't supply one. Child inserts are attempted independently: one
// failed tag or activity is logged and skipped, the entry itself stands.
func (r *MoodRepository) Create(m *database.Mood) (string, error) {
	db, err := r.db()
	if err != nil {
		return "", err
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if err := db.Create(m).Error; err != nil {
		return "", fmt.Errorf("failed to create mood: %w", err)
	}

	r.insertChildren(db, m)
	return m.ID, nil
}

// Get returns one mood entry with its tags, activities and metadata
// rehydrated, or ErrNotFound
func (r *MoodRepository) Get(id string) (*database.Mood, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	var m database.Mood
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}

	if err := r.loadChildren(db, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Resolve implements EntityStore
func (r *MoodRepository) Resolve(id string) (interface{}, error) {
	return r.Get(id)
}

// List returns mood entries ordered by logged time, most recent first unless
// opts.Ascending is set. Each returned entry has its children rehydrated via
// per-id lookups; the N+1 pattern is fine at personal-journal scale.
func (r *MoodRepository) List(opts ListOptions) ([]database.Mood, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := db.Order(opts.order("logged_at"))
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var moods []database.Mood
	if err := query.Find(&moods).Error; err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}

	for i := range moods {
		if err := r.loadChildren(db, &moods[i]); err != nil {
			return nil, err
		}
	}
	return moods, nil
}

// Update replaces a mood entry in full, including its child rows. Callers
// must resupply unchanged fields; keep-previous-value semantics belong to the
// orchestration layer, not here.
func (r *MoodRepository) Update(m *database.Mood) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&database.Mood{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check mood: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if err := db.Save(m).Error; err != nil {
		return fmt.Errorf("failed to update mood: %w", err)
	}

	r.deleteChildren(db, m.ID)
	r.insertChildren(db, m)
	return nil
}

// Delete removes a mood entry and its child rows. Relationship edges that
// reference the id are left behind on purpose.
func (r *MoodRepository) Delete(id string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	r.deleteChildren(db, id)

	result := db.Delete(&database.Mood{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete mood: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// insertChildren writes the tag, activity and metadata rows for an entry.
// Each item is attempted independently; failures are logged and skipped so a
// bad child never sinks the save.
func (r *MoodRepository) insertChildren(db *gorm.DB, m *database.Mood) {
	seen := make(map[string]bool)
	for _, tag := range m.Tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		if err := db.Create(&database.MoodTag{MoodID: m.ID, Tag: tag}).Error; err != nil {
			r.log.Warn("failed to save mood tag", zap.String("mood_id", m.ID), zap.String("tag", tag), zap.Error(err))
		}
	}

	for category, activity := range m.Activities {
		if category == "" || activity == "" {
			continue
		}
		row := &database.MoodActivity{MoodID: m.ID, Category: category, Activity: activity}
		if err := db.Create(row).Error; err != nil {
			r.log.Warn("failed to save mood activity", zap.String("mood_id", m.ID), zap.String("category", category), zap.Error(err))
		}
	}

	if m.Metadata != "" {
		row := &database.MoodMetadata{MoodID: m.ID, Payload: m.Metadata}
		if err := db.Create(row).Error; err != nil {
			r.log.Warn("failed to save mood metadata", zap.String("mood_id", m.ID), zap.Error(err))
		}
	}
}

// loadChildren rehydrates tags, activities and metadata onto a mood row
func (r *MoodRepository) loadChildren(db *gorm.DB, m *database.Mood) error {
	var tags []database.MoodTag
	if err := db.Find(&tags, "mood_id = ?", m.ID).Error; err != nil {
		return fmt.Errorf("failed to load mood tags: %w", err)
	}
	m.Tags = nil
	for _, t := range tags {
		m.Tags = append(m.Tags, t.Tag)
	}

	var activities []database.MoodActivity
	if err := db.Find(&activities, "mood_id = ?", m.ID).Error; err != nil {
		return fmt.Errorf("failed to load mood activities: %w", err)
	}
	m.Activities = nil
	if len(activities) > 0 {
		m.Activities = make(map[string]string, len(activities))
		for _, a := range activities {
			m.Activities[a.Category] = a.Activity
		}
	}

	var meta database.MoodMetadata
	err := db.First(&meta, "mood_id = ?", m.ID).Error
	switch {
	case err == nil:
		m.Metadata = meta.Payload
	case translateError(err) == ErrNotFound:
		m.Metadata = ""
	default:
		return fmt.Errorf("failed to load mood metadata: %w", err)
	}

	return nil
}

// deleteChildren removes all child rows for a mood id
func (r *MoodRepository) deleteChildren(db *gorm.DB, id string) {
	if err := db.Delete(&database.MoodTag{}, "mood_id = ?", id).Error; err != nil {
		r.log.Warn("failed to delete mood tags", zap.String("mood_id", id), zap.Error(err))
	}
	if err := db.Delete(&database.MoodActivity{}, "mood_id = ?", id).Error; err != nil {
		r.log.Warn("failed to delete mood activities", zap.String("mood_id", id), zap.Error(err))
	}
	if err := db.Delete(&database.MoodMetadata{}, "mood_id = ?", id).Error; err != nil {
		r.log.Warn("failed to delete mood metadata", zap.String("mood_id", id), zap.Error(err))
	}
}
