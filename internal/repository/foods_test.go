// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repository

import (
	"testing"
	"time"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodRepository_RoundTrip(t *testing.T) {
	repos := newTestRegistry(t)

	rating := 4
	food := &database.Food{
		Name:           "Ramen",
		Calories:       650,
		Protein:        32,
		Carbs:          80,
		Fat:            22,
		MealType:       "dinner",
		EatenAt:        time.Now(),
		People:         []string{"Sarah", "Marcus"},
		PlaceName:      "Ippudo",
		MoodRating:     &rating,
		MoodEmotion:    "satisfied",
		Restaurant:     true,
		RestaurantName: "Ippudo",
	}

	id, err := repos.Foods.Create(food)
	require.NoError(t, err)

	found, err := repos.Foods.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Ramen", found.Name)
	assert.Equal(t, []string{"Sarah", "Marcus"}, found.People)
	require.NotNil(t, found.MoodRating)
	assert.Equal(t, 4, *found.MoodRating)
	assert.True(t, found.Restaurant)
}

func TestFoodRepository_EmptyPeopleStaysEmpty(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.Foods.Create(&database.Food{Name: "Toast", EatenAt: time.Now()})
	require.NoError(t, err)

	found, err := repos.Foods.Get(id)
	require.NoError(t, err)
	assert.Empty(t, found.People)
	assert.Empty(t, found.PeopleJSON)
}

func TestFoodRepository_Validation(t *testing.T) {
	repos := newTestRegistry(t)

	_, err := repos.Foods.Create(&database.Food{Name: "  ", EatenAt: time.Now()})
	assert.ErrorIs(t, err, ErrInvalid)

	bad := 6
	_, err = repos.Foods.Create(&database.Food{Name: "Cake", EatenAt: time.Now(), MoodRating: &bad})
	assert.ErrorIs(t, err, ErrInvalid)

	zero := 0
	_, err = repos.Foods.Create(&database.Food{Name: "Cake", EatenAt: time.Now(), MoodRating: &zero})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFoodRepository_ListOrderedByMealTime(t *testing.T) {
	repos := newTestRegistry(t)

	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	names := []string{"Breakfast", "Lunch", "Dinner"}
	for i, name := range names {
		_, err := repos.Foods.Create(&database.Food{
			Name:    name,
			EatenAt: base.Add(time.Duration(i*5) * time.Hour),
			People:  []string{"Jo"},
		})
		require.NoError(t, err)
	}

	foods, err := repos.Foods.List(ListOptions{})
	require.NoError(t, err)
	require.Len(t, foods, 3)
	assert.Equal(t, "Dinner", foods[0].Name)
	assert.Equal(t, []string{"Jo"}, foods[0].People)

	foods, err = repos.Foods.List(ListOptions{Ascending: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Breakfast", foods[0].Name)
}

func TestFoodRepository_UpdateReplacesPeople(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.Foods.Create(&database.Food{
		Name:    "Tacos",
		EatenAt: time.Now(),
		People:  []string{"Sarah"},
	})
	require.NoError(t, err)

	food, err := repos.Foods.Get(id)
	require.NoError(t, err)
	food.People = []string{"Marcus", "Nadia"}
	require.NoError(t, repos.Foods.Update(food))

	found, err := repos.Foods.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Marcus", "Nadia"}, found.People)
}

func TestFoodRepository_DeleteMissing(t *testing.T) {
	repos := newTestRegistry(t)

	assert.ErrorIs(t, repos.Foods.Delete("missing"), ErrNotFound)
}
