// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lifelog/lifelog-mcp/internal/config"
	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/graph"
	"github.com/lifelog/lifelog-mcp/internal/logger"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"github.com/lifelog/lifelog-mcp/internal/seed"
	"github.com/lifelog/lifelog-mcp/internal/server"
	"github.com/lifelog/lifelog-mcp/internal/tools"
	"github.com/lifelog/lifelog-mcp/pkg/scheduler"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// Version is set at build time via ldflags (e.g. -X main.Version={{.Version}})
var Version = "dev"

func main() {
	// MCP servers must ONLY output JSON-RPC to stdout.
	// Redirect all logging to stderr.
	log.SetOutput(os.Stderr)

	configPath := flag.String("config", "", "Path to config file")
	dbType := flag.String("db-type", "", "Database type (sqlite or postgres)")
	dataDir := flag.String("data-dir", "", "Data directory (for sqlite)")
	dbDSN := flag.String("db-dsn", "", "Database DSN (for postgres)")
	mergePlaces := flag.Bool("merge-places", false, "Run one duplicate-place merge pass and exit")
	seedFile := flag.String("seed", "", "Import mood records from a YAML file and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lifelog MCP Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Server Mode:\n")
		fmt.Fprintf(os.Stderr, "  %s                      Start MCP server (stdio)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMaintenance:\n")
		fmt.Fprintf(os.Stderr, "  %s --merge-places       Merge duplicate places and exit\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --seed data.yaml     Import seed records and exit\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Command-line flags override config file values
	if *dbType != "" {
		cfg.Database.Type = *dbType
	}
	if *dataDir != "" {
		cfg.Database.DataDir = *dataDir
	}
	if *dbDSN != "" {
		cfg.Database.PostgresDSN = *dbDSN
	}

	zapLog, err := logger.New(cfg.Logging.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	storage := database.NewStorageContext(&database.Config{
		Type:        cfg.Database.Type,
		DataDir:     cfg.Database.DataDir,
		PostgresDSN: cfg.Database.PostgresDSN,
		LogLevel:    gormlogger.Silent,
	})
	defer func() { _ = storage.Close() }()

	repos := repository.NewRegistry(storage, zapLog)
	edges := graph.NewStore(storage)
	resolver := graph.NewResolver(repos, edges, zapLog)
	expander := graph.NewExpander(repos, edges)
	merger := graph.NewMerger(repos, edges, zapLog)

	if *mergePlaces {
		merged, err := merger.MergeDuplicatePlaces()
		if err != nil {
			zapLog.Fatal("merge failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Merged %d duplicate place(s)\n", merged)
		return
	}

	if *seedFile != "" {
		imported, err := seed.Import(*seedFile, resolver, zapLog)
		if err != nil {
			zapLog.Fatal("seed import failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Imported %d record(s)\n", imported)
		return
	}

	if cfg.Maintenance.AutoMerge {
		sched := scheduler.NewScheduler(merger, cfg.Maintenance.MergeInterval, zapLog)
		sched.Start()
		defer sched.Stop()
	}

	toolCtx := tools.NewToolContext(repos, resolver, expander, merger, zapLog)
	srv := server.NewMCPServer(Version, toolCtx)

	zapLog.Info("starting lifelog MCP server",
		zap.String("version", Version),
		zap.String("database", cfg.Database.Type))

	if err := srv.ServeStdio(); err != nil {
		zapLog.Fatal("server exited", zap.Error(err))
	}
}

// loadConfig loads from the explicit path when given, falling back to the
// default location (which itself falls back to defaults when absent)
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
