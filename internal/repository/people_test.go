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

func TestPersonRepository_RoundTrip(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.People.Create(&database.Person{Name: "Sarah", Notes: "college friend"})
	require.NoError(t, err)

	found, err := repos.People.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Sarah", found.Name)
	assert.Equal(t, "college friend", found.Notes)
}

func TestPersonRepository_EmptyNameRejected(t *testing.T) {
	repos := newTestRegistry(t)

	_, err := repos.People.Create(&database.Person{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPersonRepository_FindByName(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.People.Create(&database.Person{Name: "Marcus"})
	require.NoError(t, err)

	found, err := repos.People.FindByName("  marcus ")
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)

	_, err = repos.People.FindByName("Nadia")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonRepository_FindByNameReturnsOldest(t *testing.T) {
	repos := newTestRegistry(t)

	first, err := repos.People.Create(&database.Person{Name: "Alex"})
	require.NoError(t, err)
	_, err = repos.People.Create(&database.Person{Name: "alex"})
	require.NoError(t, err)

	found, err := repos.People.FindByName("ALEX")
	require.NoError(t, err)
	assert.Equal(t, first, found.ID)
}

func TestPersonRepository_UpdateAndDelete(t *testing.T) {
	repos := newTestRegistry(t)

	id, err := repos.People.Create(&database.Person{Name: "Jo"})
	require.NoError(t, err)

	person, err := repos.People.Get(id)
	require.NoError(t, err)
	person.Notes = "climbing partner"
	require.NoError(t, repos.People.Update(person))

	found, err := repos.People.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "climbing partner", found.Notes)

	require.NoError(t, repos.People.Delete(id))
	_, err = repos.People.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}
