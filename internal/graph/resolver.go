// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package graph

import (
	"fmt"
	"strings"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"go.uber.org/zap"
)

// Resolver turns soft references on a freshly-saved entity (free-text place
// and person names, embedded mood fields) into repository rows plus
// forward+inverse edge pairs.
//
// The primary save commits first and on its own. Reference resolution runs
// afterwards and its failures are downgraded to warnings: an entry is never
// lost because its place name could not be linked.
type Resolver struct {
	repos *repository.Registry
	edges *Store
	log   *zap.Logger
}

// NewResolver creates a resolver
func NewResolver(repos *repository.Registry, edges *Store, log *zap.Logger) *Resolver {
	return &Resolver{repos: repos, edges: edges, log: log}
}

// SaveMoodEntry validates and stores a mood check-in, then links its location
// reference. Returns the stored entry's id.
func (r *Resolver) SaveMoodEntry(m *database.Mood) (string, error) {
	if m.Rating < 1 || m.Rating > 5 {
		return "", fmt.Errorf("%w: mood rating must be between 1 and 5", repository.ErrInvalid)
	}
	if strings.TrimSpace(m.Emotion) == "" {
		return "", fmt.Errorf("%w: mood emotion is required", repository.ErrInvalid)
	}
	if m.LoggedAt.IsZero() {
		return "", fmt.Errorf("%w: mood logged time is required", repository.ErrInvalid)
	}

	id, err := r.repos.Moods.Create(m)
	if err != nil {
		return "", err
	}

	if m.LocationName != "" {
		r.linkPlace(database.KindMood, id, m.LocationName, database.RelationHasMood)
	}

	return id, nil
}

// SaveFoodEntry validates and stores a meal entry, then links its place,
// people and embedded mood references
func (r *Resolver) SaveFoodEntry(f *database.Food) (string, error) {
	if f.EatenAt.IsZero() {
		return "", fmt.Errorf("%w: food eaten time is required", repository.ErrInvalid)
	}

	id, err := r.repos.Foods.Create(f)
	if err != nil {
		return "", err
	}

	placeName := f.PlaceName
	if placeName == "" && f.Restaurant {
		placeName = f.RestaurantName
	}
	if placeName != "" {
		r.linkPlace(database.KindFood, id, placeName, database.RelationHasFood)
	}

	for _, name := range f.People {
		r.linkPerson(database.KindFood, id, name, database.RelationHasFood)
	}

	if f.MoodRating != nil {
		r.linkEmbeddedMood(f, id)
	}

	return id, nil
}

// SaveMemoryEntry validates and stores a memory, then links its location and
// people references
func (r *Resolver) SaveMemoryEntry(m *database.Memory) (string, error) {
	if m.OccurredAt.IsZero() {
		return "", fmt.Errorf("%w: memory date is required", repository.ErrInvalid)
	}

	id, err := r.repos.Memories.Create(m)
	if err != nil {
		return "", err
	}

	if m.Location != "" {
		r.linkPlace(database.KindMemory, id, m.Location, database.RelationHasMemory)
	}

	for _, name := range m.People {
		r.linkPerson(database.KindMemory, id, name, database.RelationHasMemory)
	}

	return id, nil
}

// linkPlace resolves a place name to an existing row or a new minimal one,
// then records the bidirectional link. Best effort only.
func (r *Resolver) linkPlace(sourceKind database.EntityKind, sourceID, name, inverse string) {
	place, err := r.repos.Places.FindByName(name)
	if err == repository.ErrNotFound {
		p := &database.Place{Name: strings.TrimSpace(name)}
		if _, err = r.repos.Places.Create(p); err == nil {
			place = p
		}
	}
	if err != nil && place == nil {
		r.log.Warn("failed to resolve place reference",
			zap.String("source_id", sourceID), zap.String("name", name), zap.Error(err))
		return
	}

	r.linkPair(sourceKind, sourceID, database.KindPlace, place.ID, database.RelationAtPlace, inverse)
}

// linkPerson resolves a person name the same way
func (r *Resolver) linkPerson(sourceKind database.EntityKind, sourceID, name, inverse string) {
	person, err := r.repos.People.FindByName(name)
	if err == repository.ErrNotFound {
		p := &database.Person{Name: strings.TrimSpace(name)}
		if _, err = r.repos.People.Create(p); err == nil {
			person = p
		}
	}
	if err != nil && person == nil {
		r.log.Warn("failed to resolve person reference",
			zap.String("source_id", sourceID), zap.String("name", name), zap.Error(err))
		return
	}

	r.linkPair(sourceKind, sourceID, database.KindPerson, person.ID, database.RelationWithPerson, inverse)
}

// linkEmbeddedMood materializes a food entry's embedded rating/emotion pair
// as a mood row of its own and links the two
func (r *Resolver) linkEmbeddedMood(f *database.Food, foodID string) {
	mood := &database.Mood{
		Rating:   *f.MoodRating,
		Emotion:  f.MoodEmotion,
		LoggedAt: f.EatenAt,
	}
	moodID, err := r.repos.Moods.Create(mood)
	if err != nil {
		r.log.Warn("failed to create embedded mood",
			zap.String("food_id", foodID), zap.Error(err))
		return
	}

	r.linkPair(database.KindFood, foodID, database.KindMood, moodID,
		database.RelationFeltMood, database.RelationAssociatedWithFood)
}

// linkPair records both halves of a semantic link: the forward edge and the
// application-chosen inverse, so traversal from either endpoint finds it
// without kind-aware reverse lookup
func (r *Resolver) linkPair(sourceKind database.EntityKind, sourceID string, targetKind database.EntityKind, targetID, forward, inverse string) {
	if err := r.edges.CreateEdge(sourceKind, sourceID, targetKind, targetID, forward); err != nil {
		r.log.Warn("failed to create edge",
			zap.String("source_id", sourceID), zap.String("relationship", forward), zap.Error(err))
	}
	if err := r.edges.CreateEdge(targetKind, targetID, sourceKind, sourceID, inverse); err != nil {
		r.log.Warn("failed to create inverse edge",
			zap.String("target_id", targetID), zap.String("relationship", inverse), zap.Error(err))
	}
}
