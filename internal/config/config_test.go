// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfigFile(t, `{
		"database": {
			"type": "sqlite",
			"data_dir": "/tmp/lifelog-test"
		},
		"logging": {
			"env": "development"
		},
		"maintenance": {
			"auto_merge": true,
			"merge_interval_minutes": 60
		}
	}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/lifelog-test", cfg.Database.DataDir)
	assert.Equal(t, "development", cfg.Logging.Env)
	assert.True(t, cfg.Maintenance.AutoMerge)
	assert.Equal(t, 60, cfg.Maintenance.MergeInterval)
}

func TestLoadFromPath_DefaultsFillGaps(t *testing.T) {
	path := writeConfigFile(t, `{"database": {"type": "sqlite", "data_dir": "/tmp/x"}}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Logging.Env)
	assert.False(t, cfg.Maintenance.AutoMerge)
	assert.Equal(t, 1440, cfg.Maintenance.MergeInterval)
}

func TestLoadFromPath_Postgres(t *testing.T) {
	path := writeConfigFile(t, `{
		"database": {
			"type": "postgres",
			"postgres_dsn": "host=localhost user=lifelog dbname=lifelog"
		}
	}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.PostgresDSN)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad database type", `{"database": {"type": "mysql"}}`},
		{"postgres without dsn", `{"database": {"type": "postgres"}}`},
		{"bad logging env", `{"database": {"type": "sqlite", "data_dir": "/tmp/x"}, "logging": {"env": "staging"}}`},
		{"zero merge interval", `{"database": {"type": "sqlite", "data_dir": "/tmp/x"}, "maintenance": {"merge_interval_minutes": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := LoadFromPath(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.DataDir)
	assert.Equal(t, "production", cfg.Logging.Env)
	assert.False(t, cfg.Maintenance.AutoMerge)
	assert.Equal(t, 1440, cfg.Maintenance.MergeInterval)

	// Defaults always pass their own validation
	assert.NoError(t, validate(cfg))
}
