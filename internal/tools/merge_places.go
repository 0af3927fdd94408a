// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// NewMergePlacesTool creates the lifelog_merge_places tool definition
func NewMergePlacesTool() mcp.Tool {
	return mcp.NewTool("lifelog_merge_places",
		mcp.WithDescription("Collapse duplicate places (same name ignoring case and whitespace). Edges move to the surviving place; duplicates are tombstoned, not deleted."),
	)
}

// MergePlacesHandler handles the lifelog_merge_places tool
func MergePlacesHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		merged, err := ctx.Merger.MergeDuplicatePlaces()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("merge failed: %v", err)), nil
		}

		if merged == 0 {
			return mcp.NewToolResultText("No duplicate places found"), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Merged %d duplicate place(s)", merged)), nil
	}
}
