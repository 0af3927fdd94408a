// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scheduler

import (
	"testing"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/graph"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func newTestMerger(t *testing.T) *graph.Merger {
	t.Helper()
	storage := database.NewStorageContext(&database.Config{
		Type:     "sqlite",
		DataDir:  t.TempDir(),
		LogLevel: logger.Silent,
	})
	t.Cleanup(func() { _ = storage.Close() })

	log := zap.NewNop()
	repos := repository.NewRegistry(storage, log)
	return graph.NewMerger(repos, graph.NewStore(storage), log)
}

func TestScheduler_StartStop(t *testing.T) {
	sched := NewScheduler(newTestMerger(t), 60, zap.NewNop())

	sched.Start()
	sched.Stop()
}

func TestScheduler_RunMerge(t *testing.T) {
	merger := newTestMerger(t)
	sched := NewScheduler(merger, 60, zap.NewNop())

	// A direct pass against an empty store is clean
	require.NotPanics(t, sched.runMerge)
}
