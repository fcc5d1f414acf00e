package game

import (
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/robbery"
)

// BeginResult describes a freshly started (or restarted) session
type BeginResult struct {
	First model.Player     `json:"first"`
	Order []model.PlayerID `json:"order"`
}

// GuessResult describes an accepted guess
type GuessResult struct {
	LocationID   model.LocationID    `json:"locationId"`
	LocationName string              `json:"locationName"`
	Word         string              `json:"word"`
	Matches      []model.LetterMatch `json:"matches"`
	Verdict      string              `json:"verdict"`
	Points       int                 `json:"points"`
	Solved       bool                `json:"solved"`
	Player       model.Player        `json:"player"`
	Next         model.PlayerID      `json:"next"`
}

// StealOptions lists who the current player may try to rob
type StealOptions struct {
	Targets []model.Player `json:"targets"`
}

// StealResult describes a resolved robbery
type StealResult struct {
	Outcome robbery.Outcome `json:"outcome"`
	Thief   model.Player    `json:"thief"`
	Victim  model.Player    `json:"victim"`
	Next    model.PlayerID  `json:"next"`
}

// StatusView is a cheap summary of the session
type StatusView struct {
	Status          model.SessionStatus `json:"status"`
	Current         *model.Player       `json:"current,omitempty"`
	Players         int                 `json:"players"`
	Locations       int                 `json:"locations"`
	ClosedLocations int                 `json:"closedLocations"`
}

// Menu is the set of actions available to a caller
type Menu struct {
	IsAdmin       bool          `json:"isAdmin"`
	IsMyTurn      bool          `json:"isMyTurn"`
	CanGuess      bool          `json:"canGuess"`
	CanSteal      bool          `json:"canSteal"`
	CanViewBoard  bool          `json:"canViewBoard"`
	CanViewScores bool          `json:"canViewScores"`
	Current       *model.Player `json:"current,omitempty"`
	Player        *model.Player `json:"player,omitempty"`
}

// LocationSummary is one board entry
type LocationSummary struct {
	ID     model.LocationID `json:"id"`
	Name   string           `json:"name"`
	Closed bool             `json:"closed"`
}

// LocationView is the detail of one location. SecretWord is only filled
// for the administrator.
type LocationView struct {
	ID          model.LocationID     `json:"id"`
	Name        string               `json:"name"`
	Narrative   string               `json:"narrative"`
	ImageRef    string               `json:"imageRef,omitempty"`
	Closed      bool                 `json:"closed"`
	LastAttempt *model.AttemptRecord `json:"lastAttempt,omitempty"`
	LastMatches []model.LetterMatch  `json:"lastMatches,omitempty"`
	LastVerdict string               `json:"lastVerdict,omitempty"`
	SecretWord  string               `json:"secretWord,omitempty"`
}
