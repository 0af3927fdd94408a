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

// NewLogMoodTool creates the lifelog_log_mood tool definition
func NewLogMoodTool() mcp.Tool {
	return mcp.NewTool("lifelog_log_mood",
		mcp.WithDescription("Record a mood check-in. If a location is named, the matching place is found or created and linked automatically."),
		mcp.WithNumber("rating",
			mcp.Required(),
			mcp.Description("Mood rating from 1 (worst) to 5 (best)"),
		),
		mcp.WithString("emotion",
			mcp.Required(),
			mcp.Description("Primary emotion, free text (e.g. 'calm', 'anxious')"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-text notes"),
		),
		mcp.WithString("location",
			mcp.Description("Name of the place this mood was logged at"),
		),
		mcp.WithString("social_context",
			mcp.Description("Who you were with, free text"),
		),
		mcp.WithString("weather",
			mcp.Description("Weather at the time, free text"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated free-text tags (e.g. 'work,stress')"),
		),
		mcp.WithString("activities",
			mcp.Description("Comma-separated category=activity pairs (e.g. 'physical=Running,social=Dinner')"),
		),
	)
}

// LogMoodHandler handles the lifelog_log_mood tool
func LogMoodHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rating, err := request.RequireFloat("rating")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		emotion, err := request.RequireString("emotion")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		mood := &database.Mood{
			Rating:        int(rating),
			Emotion:       emotion,
			Notes:         request.GetString("notes", ""),
			LocationName:  request.GetString("location", ""),
			SocialContext: request.GetString("social_context", ""),
			Weather:       request.GetString("weather", ""),
			LoggedAt:      time.Now(),
			Tags:          splitList(request.GetString("tags", "")),
			Activities:    splitPairs(request.GetString("activities", "")),
		}

		id, err := ctx.Resolver.SaveMoodEntry(mood)
		if err != nil {
			if errors.Is(err, repository.ErrInvalid) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("failed to save mood: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Logged mood %d/5 (%s), id: %s", mood.Rating, mood.Emotion, id)), nil
	}
}
