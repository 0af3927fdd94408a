// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Handle names one of the six storage handles: one per entity kind plus the
// relationship graph
type Handle string

// Storage handles
const (
	HandleMoods    Handle = "moods"
	HandlePlaces   Handle = "places"
	HandlePeople   Handle = "people"
	HandleFoods    Handle = "foods"
	HandleMemories Handle = "memories"
	HandleGraph    Handle = "graph"
)

// AllHandles returns every storage handle
func AllHandles() []Handle {
	return []Handle{
		HandleMoods,
		HandlePlaces,
		HandlePeople,
		HandleFoods,
		HandleMemories,
		HandleGraph,
	}
}

// HandleModels returns the model set owned by a storage handle
func HandleModels(handle Handle) []interface{} {
	switch handle {
	case HandleMoods:
		return []interface{}{&Mood{}, &MoodTag{}, &MoodActivity{}, &MoodMetadata{}}
	case HandlePlaces:
		return []interface{}{&Place{}}
	case HandlePeople:
		return []interface{}{&Person{}}
	case HandleFoods:
		return []interface{}{&Food{}}
	case HandleMemories:
		return []interface{}{&Memory{}}
	case HandleGraph:
		return []interface{}{&RelationshipEdge{}}
	default:
		return nil
	}
}

// Migrate runs migrations for one storage handle. AutoMigrate is additive and
// tolerates columns that already exist, so repeated calls are safe.
func Migrate(db *gorm.DB, handle Handle) error {
	models := HandleModels(handle)
	if models == nil {
		return fmt.Errorf("unknown storage handle: %s", handle)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations for %s: %w", handle, err)
	}
	if handle == HandleGraph {
		return CreateGraphIndexes(db)
	}
	return nil
}

// CreateGraphIndexes creates the two covering indexes on the edge table.
// EdgesTouching unions a by-source and a by-target lookup, so both sides
// need an index.
func CreateGraphIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		columns []string
		name    string
	}{
		{
			table:   "relationship_edges",
			columns: []string{"source_type", "source_id"},
			name:    "idx_edges_source",
		},
		{
			table:   "relationship_edges",
			columns: []string{"target_type", "target_id"},
			name:    "idx_edges_target",
		},
	}

	for _, idx := range indexes {
		hasIndex := db.Migrator().HasIndex(idx.table, idx.name)
		if !hasIndex {
			sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				idx.name,
				idx.table,
				joinColumns(idx.columns))

			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}
	}

	return nil
}

// DropHandleTables drops all tables owned by a handle (use with caution!)
func DropHandleTables(db *gorm.DB, handle Handle) error {
	models := HandleModels(handle)
	if models == nil {
		return fmt.Errorf("unknown storage handle: %s", handle)
	}
	// Drop in reverse order to avoid foreign key constraints
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

// joinColumns joins column names with commas
func joinColumns(columns []string) string {
	result := ""
	for i, col := range columns {
		if i > 0 {
			result += ", "
		}
		result += col
	}
	return result
}
