package request

// JoinRequest is the request body for joining the game.
// DisplayName falls back to the X-Player-Name header.
type JoinRequest struct {
	DisplayName string `json:"display_name,omitempty"`
}

// GuessRequest is the request body for guessing at a location
type GuessRequest struct {
	Word string `json:"word"`
}
