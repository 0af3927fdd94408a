// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package graph

import (
	"fmt"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"gorm.io/gorm"
)

// Store handles relationship-edge operations. Only the resolver writes edges;
// the history expander and the merger read and rewrite them.
type Store struct {
	store *database.StorageContext
}

// NewStore creates an edge store over the graph handle
func NewStore(store *database.StorageContext) *Store {
	return &Store{store: store}
}

func (s *Store) db() (*gorm.DB, error) {
	return s.store.DB(database.HandleGraph)
}

// CreateEdge inserts a directed, typed edge. Inserting an edge that already
// exists (same 5-tuple, timestamp excluded) is a silent no-op: the resolver
// re-links entities on every save, so repeats are the normal case.
func (s *Store) CreateEdge(sourceType database.EntityKind, sourceID string, targetType database.EntityKind, targetID, relationship string) error {
	db, err := s.db()
	if err != nil {
		return err
	}

	var count int64
	err = db.Model(&database.RelationshipEdge{}).
		Where("source_type = ? AND source_id = ? AND target_type = ? AND target_id = ? AND relationship = ?",
			string(sourceType), sourceID, string(targetType), targetID, relationship).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check for existing edge: %w", err)
	}
	if count > 0 {
		return nil
	}

	edge := &database.RelationshipEdge{
		SourceType:   string(sourceType),
		SourceID:     sourceID,
		TargetType:   string(targetType),
		TargetID:     targetID,
		Relationship: relationship,
	}
	if err := db.Create(edge).Error; err != nil {
		return fmt.Errorf("failed to create edge: %w", err)
	}
	return nil
}

// EdgesTouching returns every edge where the given entity is the source OR
// the target. Callers determine direction themselves to find the opposite
// endpoint. Both sides of the union are covered by an index.
func (s *Store) EdgesTouching(kind database.EntityKind, id string) ([]database.RelationshipEdge, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}

	var edges []database.RelationshipEdge
	err = db.Where("(source_type = ? AND source_id = ?) OR (target_type = ? AND target_id = ?)",
		string(kind), id, string(kind), id).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get edges: %w", err)
	}
	return edges, nil
}

// Repoint rewrites whichever endpoint of an edge matches (kind, fromID) to
// point at toID instead. Used by the merger to move a duplicate's edges onto
// the survivor.
func (s *Store) Repoint(edge *database.RelationshipEdge, kind database.EntityKind, fromID, toID string) error {
	db, err := s.db()
	if err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if edge.SourceType == string(kind) && edge.SourceID == fromID {
		updates["source_id"] = toID
	}
	if edge.TargetType == string(kind) && edge.TargetID == fromID {
		updates["target_id"] = toID
	}
	if len(updates) == 0 {
		return nil
	}

	if err := db.Model(&database.RelationshipEdge{}).Where("id = ?", edge.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to repoint edge: %w", err)
	}
	return nil
}
