// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"strings"

	"github.com/lifelog/lifelog-mcp/internal/graph"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"go.uber.org/zap"
)

// ToolContext holds shared dependencies for all tools
type ToolContext struct {
	Repos    *repository.Registry
	Resolver *graph.Resolver
	Expander *graph.Expander
	Merger   *graph.Merger
	Log      *zap.Logger
}

// NewToolContext creates a new tool context
func NewToolContext(repos *repository.Registry, resolver *graph.Resolver, expander *graph.Expander, merger *graph.Merger, log *zap.Logger) *ToolContext {
	return &ToolContext{
		Repos:    repos,
		Resolver: resolver,
		Expander: expander,
		Merger:   merger,
		Log:      log,
	}
}

// splitList parses a comma-separated tool argument into trimmed items
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// splitPairs parses "category=activity" pairs from a comma-separated argument
func splitPairs(value string) map[string]string {
	items := splitList(value)
	if len(items) == 0 {
		return nil
	}
	pairs := make(map[string]string, len(items))
	for _, item := range items {
		key, val, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key != "" && val != "" {
			pairs[key] = val
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	return pairs
}
