// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package graph

import (
	"sort"
	"time"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/repository"
)

// Direction says which end of an edge the queried entity sits on
type Direction string

// Edge directions relative to the queried entity
const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// RelatedEntry is one hydrated neighbor of an entity: the edge that links
// them plus the neighbor's own record
type RelatedEntry struct {
	Relationship string              `json:"relationship"`
	Direction    Direction           `json:"direction"`
	EntityType   database.EntityKind `json:"entity_type"`
	EntityID     string              `json:"entity_id"`
	Entity       interface{}         `json:"entity"`
	CreatedAt    time.Time           `json:"created_at"`
}

// EntityDetails is an entity together with its related entries grouped by
// neighbor kind — the "show me everything linked to this place" answer
type EntityDetails struct {
	Kind    database.EntityKind                    `json:"kind"`
	ID      string                                 `json:"id"`
	Entity  interface{}                            `json:"entity"`
	Related map[database.EntityKind][]RelatedEntry `json:"related"`
}

// Expander performs read-time history expansion: fetch incident edges,
// resolve the opposite endpoint through the owning repository, return the
// hydrated neighbors newest-link first
type Expander struct {
	repos *repository.Registry
	edges *Store
}

// NewExpander creates a history expander
func NewExpander(repos *repository.Registry, edges *Store) *Expander {
	return &Expander{repos: repos, edges: edges}
}

// HistoryFor returns every resolvable neighbor of (kind, id), sorted by edge
// creation time descending. Edges whose other side no longer exists are
// skipped: entity tables are independently managed and deletes don't cascade
// into the graph.
func (e *Expander) HistoryFor(kind database.EntityKind, id string) ([]RelatedEntry, error) {
	edges, err := e.edges.EdgesTouching(kind, id)
	if err != nil {
		return nil, err
	}

	entries := make([]RelatedEntry, 0, len(edges))
	for _, edge := range edges {
		direction := DirectionOutgoing
		otherType := database.EntityKind(edge.TargetType)
		otherID := edge.TargetID
		if edge.SourceType != string(kind) || edge.SourceID != id {
			direction = DirectionIncoming
			otherType = database.EntityKind(edge.SourceType)
			otherID = edge.SourceID
		}

		store, ok := e.repos.Store(otherType)
		if !ok {
			continue
		}

		entity, err := store.Resolve(otherID)
		if err == repository.ErrNotFound {
			// Dangling edge, tolerated
			continue
		}
		if err != nil {
			return nil, err
		}

		entries = append(entries, RelatedEntry{
			Relationship: edge.Relationship,
			Direction:    direction,
			EntityType:   otherType,
			EntityID:     otherID,
			Entity:       entity,
			CreatedAt:    edge.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// HistoryGrouped returns the same entries bucketed by neighbor kind
func (e *Expander) HistoryGrouped(kind database.EntityKind, id string) (map[database.EntityKind][]RelatedEntry, error) {
	entries, err := e.HistoryFor(kind, id)
	if err != nil {
		return nil, err
	}

	grouped := make(map[database.EntityKind][]RelatedEntry)
	for _, entry := range entries {
		grouped[entry.EntityType] = append(grouped[entry.EntityType], entry)
	}
	return grouped, nil
}

// DetailsWithRelated fetches the entity itself and attaches its grouped
// history
func (e *Expander) DetailsWithRelated(kind database.EntityKind, id string) (*EntityDetails, error) {
	store, ok := e.repos.Store(kind)
	if !ok {
		return nil, repository.ErrNotFound
	}

	entity, err := store.Resolve(id)
	if err != nil {
		return nil, err
	}

	related, err := e.HistoryGrouped(kind, id)
	if err != nil {
		return nil, err
	}

	return &EntityDetails{
		Kind:    kind,
		ID:      id,
		Entity:  entity,
		Related: related,
	}, nil
}
