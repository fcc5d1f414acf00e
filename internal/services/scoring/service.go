package scoring

import (
	"strings"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/dictionary"
)

// Points awarded per letter classification
const (
	ExactPoints   = 10
	PartialPoints = 5
)

// Compare classifies each guess position against the secret using the
// two-pass Wordle rules. Inputs are normalized first, so the comparison is
// case-insensitive.
//
// Pass 1 marks exact positions and collects the unmatched secret letters.
// Pass 2 walks the remaining guess positions left to right, consuming one
// unmatched secret letter per partial match. A secret letter is therefore
// never counted twice.
func Compare(guess, secret string) []model.LetterMatch {
	g := []rune(dictionary.Normalize(guess))
	w := []rune(dictionary.Normalize(secret))

	res := make([]model.LetterMatch, len(g))
	remaining := make(map[rune]int, len(w))

	for i, ch := range g {
		if i < len(w) && ch == w[i] {
			res[i] = model.MatchExact
			continue
		}
		res[i] = model.MatchAbsent
	}
	for i, ch := range w {
		if i >= len(g) || res[i] != model.MatchExact {
			remaining[ch]++
		}
	}

	for i, ch := range g {
		if res[i] == model.MatchExact {
			continue
		}
		if remaining[ch] > 0 {
			res[i] = model.MatchPartial
			remaining[ch]--
		}
	}
	return res
}

// Score sums the points for a classification sequence
func Score(matches []model.LetterMatch) int {
	total := 0
	for _, m := range matches {
		switch m {
		case model.MatchExact:
			total += ExactPoints
		case model.MatchPartial:
			total += PartialPoints
		}
	}
	return total
}

// IsSolved reports whether every position is an exact match
func IsSolved(matches []model.LetterMatch) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if m != model.MatchExact {
			return false
		}
	}
	return true
}

// Verdict renders a classification sequence as coloured squares
func Verdict(matches []model.LetterMatch) string {
	var sb strings.Builder
	for _, m := range matches {
		switch m {
		case model.MatchExact:
			sb.WriteString("🟩")
		case model.MatchPartial:
			sb.WriteString("🟨")
		default:
			sb.WriteString("⬜")
		}
	}
	return sb.String()
}
