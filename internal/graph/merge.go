// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package graph

import (
	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"go.uber.org/zap"
)

// Merger collapses duplicate places: rows whose trimmed, case-folded names
// collide. The first-listed member of each group survives; every edge touching
// another member is repointed onto the survivor and the member is tombstoned.
//
// A run is not transactional. Each repoint and each tombstone commits on its
// own, so a crash mid-run leaves some edges moved and others not — which is
// safe (moved edges resolve to the survivor, unmoved ones to the
// not-yet-tombstoned duplicate) but deliberately not atomic.
type Merger struct {
	repos *repository.Registry
	edges *Store
	log   *zap.Logger
}

// NewMerger creates a duplicate merger
func NewMerger(repos *repository.Registry, edges *Store, log *zap.Logger) *Merger {
	return &Merger{repos: repos, edges: edges, log: log}
}

// MergeDuplicatePlaces runs one Scan → Group → MergeEach pass and returns the
// number of duplicates merged away
func (m *Merger) MergeDuplicatePlaces() (int, error) {
	// Scan: insertion order, so the oldest row of each group survives
	places, err := m.repos.Places.List(repository.ListOptions{Ascending: true})
	if err != nil {
		return 0, err
	}

	// Group by normalized name, already-tombstoned rows excluded
	groups := make(map[string][]database.Place)
	order := make([]string, 0)
	for _, p := range places {
		if repository.IsTombstoned(&p) {
			continue
		}
		key := repository.NormalizeName(p.Name)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	merged := 0
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		survivor := group[0]
		for _, duplicate := range group[1:] {
			if err := m.mergeInto(&survivor, &duplicate); err != nil {
				m.log.Warn("failed to merge duplicate place",
					zap.String("survivor_id", survivor.ID),
					zap.String("duplicate_id", duplicate.ID),
					zap.Error(err))
				continue
			}
			merged++
		}
	}

	return merged, nil
}

// mergeInto moves every edge off the duplicate onto the survivor, then
// tombstones the duplicate. Edge failures are logged and skipped so one bad
// edge doesn't strand the rest of the group.
func (m *Merger) mergeInto(survivor, duplicate *database.Place) error {
	edges, err := m.edges.EdgesTouching(database.KindPlace, duplicate.ID)
	if err != nil {
		return err
	}

	for i := range edges {
		if err := m.edges.Repoint(&edges[i], database.KindPlace, duplicate.ID, survivor.ID); err != nil {
			m.log.Warn("failed to repoint edge",
				zap.Uint("edge_id", edges[i].ID),
				zap.String("duplicate_id", duplicate.ID),
				zap.Error(err))
		}
	}

	return m.repos.Places.Tombstone(duplicate, survivor.ID)
}
