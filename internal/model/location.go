package model

import "time"

// LocationID identifies a location in the catalog
type LocationID int

// WordLength is the number of letters in every secret word and guess
const WordLength = 5

// Location is an immutable catalog entry
type Location struct {
	ID         LocationID `json:"id"`
	Name       string     `json:"name"`
	Narrative  string     `json:"narrative"`
	SecretWord string     `json:"secretWord"`
	ImageRef   string     `json:"imageRef,omitempty"`
}

// AttemptRecord is the most recent accepted guess at a location
type AttemptRecord struct {
	PlayerID    PlayerID  `json:"playerId"`
	DisplayName string    `json:"displayName"`
	Time        time.Time `json:"time"`
	Word        string    `json:"word"`
}

// LocationState is the mutable puzzle state paired with a catalog entry.
// Closed only ever moves from false to true.
type LocationState struct {
	ID          LocationID     `json:"id"`
	Closed      bool           `json:"closed"`
	LastAttempt *AttemptRecord `json:"lastAttempt"`
}
