// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package seed

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/graph"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// MoodRecord is one mood check-in as produced by the demo-data generator.
// The contract with the generator is simply "anything SaveMoodEntry's
// validation accepts".
type MoodRecord struct {
	ID         string            `yaml:"id"`
	Rating     int               `yaml:"rating"`
	Emotion    string            `yaml:"emotion"`
	Notes      string            `yaml:"notes"`
	Location   string            `yaml:"location"`
	Social     string            `yaml:"social_context"`
	Weather    string            `yaml:"weather"`
	LoggedAt   time.Time         `yaml:"logged_at"`
	Tags       []string          `yaml:"tags"`
	Activities map[string]string `yaml:"activities"`
	Metadata   string            `yaml:"metadata"`
}

// File is the top-level seed document
type File struct {
	Moods []MoodRecord `yaml:"moods"`
}

// Parse decodes a seed document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Import reads a seed file and routes every record through the resolver, so
// seeded entries get the same reference resolution as live ones. Records the
// validation rejects are logged and skipped; storage failures abort the run.
// Returns the number of records imported.
func Import(path string, resolver *graph.Resolver, log *zap.Logger) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, rec := range f.Moods {
		mood := &database.Mood{
			ID:            rec.ID,
			Rating:        rec.Rating,
			Emotion:       rec.Emotion,
			Notes:         rec.Notes,
			LocationName:  rec.Location,
			SocialContext: rec.Social,
			Weather:       rec.Weather,
			LoggedAt:      rec.LoggedAt,
			Tags:          rec.Tags,
			Activities:    rec.Activities,
			Metadata:      rec.Metadata,
		}

		if _, err := resolver.SaveMoodEntry(mood); err != nil {
			if errors.Is(err, repository.ErrInvalid) {
				log.Warn("skipping invalid seed record", zap.Int("index", i), zap.Error(err))
				continue
			}
			return imported, err
		}
		imported++
	}

	return imported, nil
}
