// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"time"
)

// EntityKind identifies one of the five record kinds. It is a closed set;
// dispatch over kinds goes through the repository registry rather than raw
// string comparison.
type EntityKind string

// Entity kinds
const (
	KindMood   EntityKind = "mood"
	KindPlace  EntityKind = "place"
	KindPerson EntityKind = "person"
	KindFood   EntityKind = "food"
	KindMemory EntityKind = "memory"
)

// ValidEntityKinds returns all valid entity kinds
func ValidEntityKinds() []EntityKind {
	return []EntityKind{
		KindMood,
		KindPlace,
		KindPerson,
		KindFood,
		KindMemory,
	}
}

// IsValidEntityKind checks if a kind is valid
func IsValidEntityKind(kind EntityKind) bool {
	for _, valid := range ValidEntityKinds() {
		if kind == valid {
			return true
		}
	}
	return false
}

// Relationship kind constants. Edges are always written in forward+inverse
// pairs so traversal from either endpoint finds the link.
const (
	RelationAtPlace            = "at_place"
	RelationHasMood            = "has_mood"
	RelationHasFood            = "has_food"
	RelationWithPerson         = "with_person"
	RelationHasMemory          = "has_memory"
	RelationFeltMood           = "felt_mood"
	RelationAssociatedWithFood = "associated_with_food"
)

// ValidRelationKinds returns all valid relationship kinds
func ValidRelationKinds() []string {
	return []string{
		RelationAtPlace,
		RelationHasMood,
		RelationHasFood,
		RelationWithPerson,
		RelationHasMemory,
		RelationFeltMood,
		RelationAssociatedWithFood,
	}
}

// IsValidRelationKind checks if a relationship kind is valid
func IsValidRelationKind(kind string) bool {
	for _, valid := range ValidRelationKinds() {
		if kind == valid {
			return true
		}
	}
	return false
}

// Mood represents one mood check-in. Tags, Activities and Metadata live in
// child tables and are rehydrated by the repository on reads.
type Mood struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Emotion       string    `gorm:"not null" json:"emotion"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	LocationName  string    `json:"location_name,omitempty"`
	SocialContext string    `json:"social_context,omitempty"`
	Weather       string    `json:"weather,omitempty"`
	LoggedAt      time.Time `gorm:"index;not null" json:"logged_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Rehydrated from child tables, never persisted on this row
	Tags       []string          `gorm:"-" json:"tags,omitempty"`
	Activities map[string]string `gorm:"-" json:"activities,omitempty"`
	Metadata   string            `gorm:"-" json:"metadata,omitempty"`
}

// TableName specifies the table name for Mood
func (Mood) TableName() string {
	return "moods"
}

// MoodTag is one free-text tag on a mood entry
type MoodTag struct {
	MoodID string `gorm:"primaryKey" json:"mood_id"`
	Tag    string `gorm:"primaryKey" json:"tag"`
}

// TableName specifies the table name for MoodTag
func (MoodTag) TableName() string {
	return "mood_tags"
}

// MoodActivity records the activity chosen for a category on a mood entry.
// The composite key keeps at most one activity per category per entry.
type MoodActivity struct {
	MoodID   string `gorm:"primaryKey" json:"mood_id"`
	Category string `gorm:"primaryKey" json:"category"`
	Activity string `gorm:"not null" json:"activity"`
}

// TableName specifies the table name for MoodActivity
func (MoodActivity) TableName() string {
	return "mood_activities"
}

// MoodMetadata holds the opaque structured weather/location payload for a
// mood entry, stored as JSON text
type MoodMetadata struct {
	MoodID  string `gorm:"primaryKey" json:"mood_id"`
	Payload string `gorm:"type:text" json:"payload"`
}

// TableName specifies the table name for MoodMetadata
func (MoodMetadata) TableName() string {
	return "mood_metadata"
}

// Place represents a location the user has been. A merged duplicate is
// tombstoned via a marker in Notes rather than deleted, so historical edges
// that still point at it keep resolving.
type Place struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Address   string    `json:"address,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Place
func (Place) TableName() string {
	return "places"
}

// Person represents someone the user records time with
type Person struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Person
func (Person) TableName() string {
	return "people"
}

// Food represents one meal entry. The people list is an encoded column
// (JSON text); PlaceName, People and the embedded mood pair are soft
// references the resolver turns into graph edges.
type Food struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Calories       float64   `gorm:"default:0" json:"calories"`
	Protein        float64   `gorm:"default:0" json:"protein"`
	Carbs          float64   `gorm:"default:0" json:"carbs"`
	Fat            float64   `gorm:"default:0" json:"fat"`
	MealType       string    `json:"meal_type,omitempty"`
	EatenAt        time.Time `gorm:"index;not null" json:"eaten_at"`
	PeopleJSON     string    `gorm:"column:people;type:text" json:"-"`
	PlaceName      string    `json:"place_name,omitempty"`
	MoodRating     *int      `json:"mood_rating,omitempty"`
	MoodEmotion    string    `json:"mood_emotion,omitempty"`
	Restaurant     bool      `gorm:"default:false" json:"restaurant"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Decoded form of PeopleJSON
	People []string `gorm:"-" json:"people,omitempty"`
}

// TableName specifies the table name for Food
func (Food) TableName() string {
	return "foods"
}

// Memory represents a journaled memory with people and photo references
type Memory struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	OccurredAt  time.Time `gorm:"index;not null" json:"occurred_at"`
	Location    string    `json:"location,omitempty"`
	PeopleJSON  string    `gorm:"column:people;type:text" json:"-"`
	PhotosJSON  string    `gorm:"column:photos;type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Decoded forms of the encoded columns
	People []string `gorm:"-" json:"people,omitempty"`
	Photos []string `gorm:"-" json:"photos,omitempty"`
}

// TableName specifies the table name for Memory
func (Memory) TableName() string {
	return "memories"
}

// RelationshipEdge is one directed, typed link between two entities. Edge
// identity for deduplication is the 5-tuple excluding CreatedAt.
type RelationshipEdge struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SourceType   string    `gorm:"not null" json:"source_type"`
	SourceID     string    `gorm:"not null" json:"source_id"`
	TargetType   string    `gorm:"not null" json:"target_type"`
	TargetID     string    `gorm:"not null" json:"target_id"`
	Relationship string    `gorm:"not null" json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for RelationshipEdge
func (RelationshipEdge) TableName() string {
	return "relationship_edges"
}
