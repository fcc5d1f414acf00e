package model

import "time"

// PlayerID uniquely identifies a player across the system.
// It is the chat user id supplied by the gateway.
type PlayerID string

// Player represents a registered game participant
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"displayName"`
	Score       int       `json:"score"` // signed, no floor
	LastActive  time.Time `json:"lastActive"`
}
