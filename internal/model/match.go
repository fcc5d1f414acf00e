package model

// LetterMatch classifies one guess position against the secret word
type LetterMatch string

const (
	MatchExact   LetterMatch = "exact"   // right letter, right position
	MatchPartial LetterMatch = "partial" // letter occurs elsewhere in the secret
	MatchAbsent  LetterMatch = "absent"
)
