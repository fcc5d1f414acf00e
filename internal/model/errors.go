package model

import "errors"

// Common errors used across the application
var (
	// Registration errors
	ErrAdminCannotJoin = errors.New("administrator cannot join the game")
	ErrAlreadyJoined   = errors.New("player has already joined")
	ErrNotRegistered   = errors.New("player is not registered")

	// Session errors
	ErrNotStarted = errors.New("game has not started")
	ErrNoPlayers  = errors.New("no registered players")
	ErrAdminOnly  = errors.New("only the administrator can perform this action")
	ErrEmptyQueue = errors.New("turn queue is empty")

	// Turn errors
	ErrNotYourTurn = errors.New("not this player's turn")

	// Guess errors
	ErrInvalidLength    = errors.New("word must be exactly five letters")
	ErrNotInDictionary  = errors.New("word is not in the dictionary")
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationClosed   = errors.New("location is closed")
	ErrDuplicateGuess   = errors.New("word matches the previous attempt")

	// Robbery errors
	ErrInvalidTarget     = errors.New("invalid robbery target")
	ErrInsufficientScore = errors.New("score too low to steal")
	ErrNoEligibleTarget  = errors.New("no player is rich enough to rob")

	// Storage errors
	ErrPersistenceFailure = errors.New("failed to persist game state")
	ErrSessionNotFound    = errors.New("no saved session")

	// Configuration errors
	ErrInvalidCatalog      = errors.New("invalid location catalog")
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
