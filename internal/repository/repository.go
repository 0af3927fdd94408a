// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"go.uber.org/zap"
)

// ListOptions control listing: Limit/Offset paginate, Ascending flips the
// sort on the kind's primary time field (default is most recent first)
type ListOptions struct {
	Limit     int
	Offset    int
	Ascending bool
}

// apply adds pagination and ordering to a query
func (o ListOptions) order(column string) string {
	if o.Ascending {
		return column + " ASC"
	}
	return column + " DESC"
}

// EntityStore is the kind-generic view of a repository. The history expander
// resolves edge endpoints through it without knowing the concrete record type.
type EntityStore interface {
	Kind() database.EntityKind
	Resolve(id string) (interface{}, error)
}

// Registry maps each entity kind onto its repository. Keeping the mapping in
// one table gives exhaustive dispatch over the closed kind set.
type Registry struct {
	Moods    *MoodRepository
	Places   *PlaceRepository
	People   *PersonRepository
	Foods    *FoodRepository
	Memories *MemoryRepository

	stores map[database.EntityKind]EntityStore
}

// NewRegistry constructs all five repositories over a shared storage context
func NewRegistry(store *database.StorageContext, log *zap.Logger) *Registry {
	r := &Registry{
		Moods:    NewMoodRepository(store, log),
		Places:   NewPlaceRepository(store),
		People:   NewPersonRepository(store),
		Foods:    NewFoodRepository(store),
		Memories: NewMemoryRepository(store),
	}
	r.stores = map[database.EntityKind]EntityStore{
		database.KindMood:   r.Moods,
		database.KindPlace:  r.Places,
		database.KindPerson: r.People,
		database.KindFood:   r.Foods,
		database.KindMemory: r.Memories,
	}
	return r
}

// Store returns the repository owning an entity kind
func (r *Registry) Store(kind database.EntityKind) (EntityStore, bool) {
	s, ok := r.stores[kind]
	return s, ok
}

// NormalizeName is the identity key for name-based reference resolution and
// duplicate grouping: trimmed, case-folded. Deliberately not fuzzy.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// encodeStringList serializes a multi-valued field into its encoded-column
// form. An empty list encodes to the empty string, not "[]".
func encodeStringList(items []string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode list column: %w", err)
	}
	return string(data), nil
}

// decodeStringList parses an encoded-column list
func decodeStringList(encoded string) ([]string, error) {
	if encoded == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, fmt.Errorf("failed to decode list column: %w", err)
	}
	return items, nil
}
