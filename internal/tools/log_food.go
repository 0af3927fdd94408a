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

// NewLogFoodTool creates the lifelog_log_food tool definition
func NewLogFoodTool() mcp.Tool {
	return mcp.NewTool("lifelog_log_food",
		mcp.WithDescription("Record a meal. Named places and people are found or created and linked; an optional mood rating is stored as its own check-in and linked to the meal."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("What was eaten"),
		),
		mcp.WithNumber("calories",
			mcp.Description("Calories, defaults to 0"),
		),
		mcp.WithNumber("protein",
			mcp.Description("Protein in grams, defaults to 0"),
		),
		mcp.WithNumber("carbs",
			mcp.Description("Carbohydrates in grams, defaults to 0"),
		),
		mcp.WithNumber("fat",
			mcp.Description("Fat in grams, defaults to 0"),
		),
		mcp.WithString("meal_type",
			mcp.Description("breakfast, lunch, dinner or snack"),
		),
		mcp.WithString("place",
			mcp.Description("Name of the place this was eaten at"),
		),
		mcp.WithString("people",
			mcp.Description("Comma-separated names of people at the meal"),
		),
		mcp.WithNumber("mood_rating",
			mcp.Description("Optional mood rating 1-5 felt during the meal"),
		),
		mcp.WithString("mood_emotion",
			mcp.Description("Emotion accompanying the mood rating"),
		),
		mcp.WithBoolean("restaurant",
			mcp.Description("Whether this was a restaurant meal"),
		),
		mcp.WithString("restaurant_name",
			mcp.Description("Restaurant name if applicable"),
		),
	)
}

// LogFoodHandler handles the lifelog_log_food tool
func LogFoodHandler(ctx *ToolContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(c context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		food := &database.Food{
			Name:           name,
			Calories:       request.GetFloat("calories", 0),
			Protein:        request.GetFloat("protein", 0),
			Carbs:          request.GetFloat("carbs", 0),
			Fat:            request.GetFloat("fat", 0),
			MealType:       request.GetString("meal_type", ""),
			EatenAt:        time.Now(),
			PlaceName:      request.GetString("place", ""),
			People:         splitList(request.GetString("people", "")),
			Restaurant:     request.GetBool("restaurant", false),
			RestaurantName: request.GetString("restaurant_name", ""),
		}

		if rating := request.GetFloat("mood_rating", 0); rating > 0 {
			value := int(rating)
			food.MoodRating = &value
			food.MoodEmotion = request.GetString("mood_emotion", "")
		}

		id, err := ctx.Resolver.SaveFoodEntry(food)
		if err != nil {
			if errors.Is(err, repository.ErrInvalid) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("failed to save food: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Logged meal '%s', id: %s", food.Name, id)), nil
	}
}
