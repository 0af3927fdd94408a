// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/lifelog/lifelog-mcp/internal/repository"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewLogMemoryTool creates the lifelog_log_memory tool definition
func NewLogMemoryTool() mcp.Tool {
	return mcp.NewTool("lifelog_log_memory",
		mcp.WithDescription("Record a memory. Named people and the location are found or created and linked."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title for the memory"),
		),
		mcp.WithString("description",
			mcp.Description("What happened, free text"),
		),
		mcp.WithString("location",
			mcp.Description("Name of the place this happened at"),
		),
		mcp.WithString("people",
			mcp.Description("Comma-separated names of people in the memory"),
		),
		mcp.WithString("photos",
			mcp.Description("Comma-separated photo references"),
		),
	)
}

// LogMemoryHandler handles the lifelog_log_memory tool
func LogMemoryHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		memory := &database.Memory{
			Title:       title,
			Description: request.GetString("description", ""),
			OccurredAt:  time.Now(),
			Location:    request.GetString("location", ""),
			People:      splitList(request.GetString("people", "")),
			Photos:      splitList(request.GetString("photos", "")),
		}

		id, err := ctx.Resolver.SaveMemoryEntry(memory)
		if err != nil {
			if errors.Is(err, repository.ErrInvalid) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("failed to save memory: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Logged memory '%s', id: %s", memory.Title, id)), nil
	}
}
