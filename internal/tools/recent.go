// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewRecentTool creates the lifelog_recent tool definition
func NewRecentTool() mcp.Tool {
	return mcp.NewTool("lifelog_recent",
		mcp.WithDescription("List recent entries of one kind, newest first by default."),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Entity kind: mood, place, person, food or memory"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return. Default: 20"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Entries to skip, for paging"),
		),
		mcp.WithBoolean("ascending",
			mcp.Description("Sort oldest first instead of newest first"),
		),
	)
}

// RecentHandler handles the lifelog_recent tool
func RecentHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kindArg, err := request.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		opts := repository.ListOptions{
			Limit:     int(request.GetFloat("limit", 20)),
			Offset:    int(request.GetFloat("offset", 0)),
			Ascending: request.GetBool("ascending", false),
		}

		var result interface{}
		switch database.EntityKind(kindArg) {
		case database.KindMood:
			result, err = ctx.Repos.Moods.List(opts)
		case database.KindPlace:
			result, err = ctx.Repos.Places.List(opts)
		case database.KindPerson:
			result, err = ctx.Repos.People.List(opts)
		case database.KindFood:
			result, err = ctx.Repos.Foods.List(opts)
		case database.KindMemory:
			result, err = ctx.Repos.Memories.List(opts)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid entity type: '%s'. Valid: mood, place, person, food, memory", kindArg)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list %s entries: %v", kindArg, err)), nil
		}

		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(payload)), nil
	}
}
