// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewHistoryTool creates the lifelog_history tool definition
func NewHistoryTool() mcp.Tool {
	return mcp.NewTool("lifelog_history",
		mcp.WithDescription("Show an entity and everything linked to it across the relationship graph, grouped by kind. Answers questions like 'who was I with when I felt anxious at this cafe?'"),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Entity kind: mood, place, person, food or memory"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entity id"),
		),
	)
}

// HistoryHandler handles the lifelog_history tool
func HistoryHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kindArg, err := request.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		kind := database.EntityKind(kindArg)
		if !database.IsValidEntityKind(kind) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid entity type: '%s'. Valid: mood, place, person, food, memory", kindArg)), nil
		}

		details, err := ctx.Expander.DetailsWithRelated(kind, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("%s not found: %s", kind, id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("failed to expand history: %v", err)), nil
		}

		payload, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(payload)), nil
	}
}
