// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *Config {
	return &Config{
		Type:     "sqlite",
		DataDir:  t.TempDir(),
		LogLevel: logger.Silent,
	}
}

func TestConnect_SQLite(t *testing.T) {
	cfg := testConfig(t)

	db, err := Connect(cfg, HandleMoods)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = Ping(db)
	assert.NoError(t, err)

	err = Close(db)
	assert.NoError(t, err)
}

func TestConnect_InvalidType(t *testing.T) {
	cfg := &Config{
		Type:     "mysql",
		LogLevel: logger.Silent,
	}

	db, err := Connect(cfg, HandleMoods)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestSQLitePath_PerHandle(t *testing.T) {
	path := SQLitePath("/data", HandleGraph)
	assert.Equal(t, filepath.Join("/data", "graph.db"), path)

	// Each handle gets its own file
	seen := make(map[string]bool)
	for _, h := range AllHandles() {
		p := SQLitePath("/data", h)
		assert.False(t, seen[p], "path %s should be unique", p)
		seen[p] = true
	}
}

func TestEnsureSQLiteDir(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "subdir", "another", "test.db")

	err := ensureSQLiteDir(dbPath)
	require.NoError(t, err)

	dir := filepath.Dir(dbPath)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMigrate_AllHandles(t *testing.T) {
	cfg := testConfig(t)

	expected := map[Handle][]string{
		HandleMoods:    {"moods", "mood_tags", "mood_activities", "mood_metadata"},
		HandlePlaces:   {"places"},
		HandlePeople:   {"people"},
		HandleFoods:    {"foods"},
		HandleMemories: {"memories"},
		HandleGraph:    {"relationship_edges"},
	}

	for _, handle := range AllHandles() {
		db, err := Connect(cfg, handle)
		require.NoError(t, err)

		err = Migrate(db, handle)
		require.NoError(t, err)

		for _, table := range expected[handle] {
			assert.True(t, db.Migrator().HasTable(table), "table %s should exist", table)
		}

		// Re-running migrations is a no-op, not an error
		err = Migrate(db, handle)
		require.NoError(t, err)

		require.NoError(t, Close(db))
	}
}

func TestMigrate_UnknownHandle(t *testing.T) {
	cfg := testConfig(t)

	db, err := Connect(cfg, Handle("bogus"))
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	err = Migrate(db, Handle("bogus"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage handle")
}

func TestCreateGraphIndexes(t *testing.T) {
	cfg := testConfig(t)

	db, err := Connect(cfg, HandleGraph)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	err = Migrate(db, HandleGraph)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasIndex("relationship_edges", "idx_edges_source"))
	assert.True(t, db.Migrator().HasIndex("relationship_edges", "idx_edges_target"))
}

func TestModels_TableNames(t *testing.T) {
	tests := []struct {
		model     interface{ TableName() string }
		tableName string
	}{
		{Mood{}, "moods"},
		{MoodTag{}, "mood_tags"},
		{MoodActivity{}, "mood_activities"},
		{MoodMetadata{}, "mood_metadata"},
		{Place{}, "places"},
		{Person{}, "people"},
		{Food{}, "foods"},
		{Memory{}, "memories"},
		{RelationshipEdge{}, "relationship_edges"},
	}

	for _, tt := range tests {
		t.Run(tt.tableName, func(t *testing.T) {
			assert.Equal(t, tt.tableName, tt.model.TableName())
		})
	}
}

func TestIsValidEntityKind(t *testing.T) {
	tests := []struct {
		kind  EntityKind
		valid bool
	}{
		{KindMood, true},
		{KindPlace, true},
		{KindPerson, true},
		{KindFood, true},
		{KindMemory, true},
		{EntityKind("journal"), false},
		{EntityKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEntityKind(tt.kind))
		})
	}
}

func TestIsValidRelationKind(t *testing.T) {
	for _, kind := range ValidRelationKinds() {
		assert.True(t, IsValidRelationKind(kind))
	}
	assert.False(t, IsValidRelationKind("friends_with"))
	assert.False(t, IsValidRelationKind(""))
}

func TestDropHandleTables(t *testing.T) {
	cfg := testConfig(t)

	db, err := Connect(cfg, HandleMoods)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	err = Migrate(db, HandleMoods)
	require.NoError(t, err)

	err = DropHandleTables(db, HandleMoods)
	require.NoError(t, err)

	assert.False(t, db.Migrator().HasTable("moods"))
	assert.False(t, db.Migrator().HasTable("mood_tags"))
}
