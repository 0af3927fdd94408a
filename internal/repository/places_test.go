// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repository

import (
	"testing"

	"github.com/lifelog/lifelog-mcp/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceRepository_RoundTrip(t *testing.T) {
	repos := newTestRegistry(t)

	lat, lng := 52.52, 13.405
	place := &database.Place{
		Name:      "Volkspark",
		Address:   "Friedrichshain, Berlin",
		Latitude:  &lat,
		Longitude: &lng,
		Notes:     "sunday runs",
	}

	id, err := repos.Places.Create(place)
	require.NoError(t, err)

	found, err := repos.Places.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Volkspark", found.Name)
	require.NotNil(t, found.Latitude)
	assert.InDelta(t, 52.52, *found.Latitude, 0.0001)
	assert.Equal(t, "sunday runs", found.Notes)
}

func TestPlaceRepository_Validation(t *testing.T) {
	repos := newTestRegistry(t)

	lat := 52.52
	tests := []struct {
		name  string
		place *database.Place
	}{
		{"empty name", &database.Place{Name: "   "}},
		{"latitude without longitude", &database.Place{Name: "Somewhere", Latitude: &lat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repos.Places.Create(tt.place)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestPlaceRepository_FindByName(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.Places.Create(&database.Place{Name: "Blue Bottle Cafe"})
	require.NoError(t, err)

	// Case and surrounding whitespace don't matter
	for _, query := range []string{"Blue Bottle Cafe", "blue bottle cafe", "  BLUE BOTTLE CAFE  "} {
		found, err := repos.Places.FindByName(query)
		require.NoError(t, err, "query %q", query)
		assert.Equal(t, id, found.ID)
	}

	_, err = repos.Places.FindByName("Unknown Spot")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.Places.FindByName("   ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceRepository_FindByNameSkipsTombstoned(t *testing.T) {
	repos := newTestRegistry(t)

	loserID, err := repos.Places.Create(&database.Place{Name: "Gym"})
	require.NoError(t, err)

	loser, err := repos.Places.Get(loserID)
	require.NoError(t, err)
	require.NoError(t, repos.Places.Tombstone(loser, "survivor-id"))

	_, err = repos.Places.FindByName("Gym")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceRepository_TombstoneStaysResolvable(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.Places.Create(&database.Place{Name: "Old Office", Notes: "moved out in may"})
	require.NoError(t, err)

	place, err := repos.Places.Get(id)
	require.NoError(t, err)
	require.NoError(t, repos.Places.Tombstone(place, "new-office-id"))

	// Still readable by id, with the marker appended to existing notes
	found, err := repos.Places.Get(id)
	require.NoError(t, err)
	assert.True(t, IsTombstoned(found))
	assert.Contains(t, found.Notes, "moved out in may")
	assert.Contains(t, found.Notes, "[merged-into:new-office-id]")
}

func TestPlaceRepository_UpdateMissing(t *testing.T) {
	repos := newTestRegistry(t)

	err := repos.Places.Update(&database.Place{ID: "ghost", Name: "Ghost Town"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceRepository_Delete(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.Places.Create(&database.Place{Name: "Popup Stand"})
	require.NoError(t, err)

	require.NoError(t, repos.Places.Delete(id))

	_, err = repos.Places.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repos.Places.Delete(id), ErrNotFound)
}
