// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scheduler

import (
	"time"

	"github.com/lifelog/lifelog-mcp/internal/graph"
	"go.uber.org/zap"
)

// Scheduler runs the duplicate-place merge pass on a fixed interval
type Scheduler struct {
	merger   *graph.Merger
	interval time.Duration
	log      *zap.Logger
	stopChan chan bool
}

// NewScheduler creates a maintenance scheduler
func NewScheduler(merger *graph.Merger, intervalMinutes int, log *zap.Logger) *Scheduler {
	return &Scheduler{
		merger:   merger,
		interval: time.Duration(intervalMinutes) * time.Minute,
		log:      log,
		stopChan: make(chan bool),
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.runMerge()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.stopChan <- true
}

// runMerge executes one merge pass; failures are logged, never fatal
func (s *Scheduler) runMerge() {
	merged, err := s.merger.MergeDuplicatePlaces()
	if err != nil {
		s.log.Warn("scheduled place merge failed", zap.Error(err))
		return
	}
	if merged > 0 {
		s.log.Info("scheduled place merge complete", zap.Int("merged", merged))
	}
}
