// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

// Config represents the complete application configuration
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// DatabaseConfig holds storage engine settings
type DatabaseConfig struct {
	Type        string `mapstructure:"type"`     // "sqlite" or "postgres"
	DataDir     string `mapstructure:"data_dir"` // directory for the per-kind sqlite files
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Env string `mapstructure:"env"` // "production" or "development"
}

// MaintenanceConfig holds duplicate-merge scheduling settings
type MaintenanceConfig struct {
	AutoMerge     bool `mapstructure:"auto_merge"`
	MergeInterval int  `mapstructure:"merge_interval_minutes"`
}
