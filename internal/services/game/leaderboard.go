package game

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/kabak/internal/model"
)

// TurnMarker flags the current turn holder in the rendered table
const TurnMarker = "⏳"

// LeaderboardEntry is one row of the leaderboard
type LeaderboardEntry struct {
	Rank      int          `json:"rank"`
	Player    model.Player `json:"player"`
	IsCurrent bool         `json:"isCurrent"`
}

// Leaderboard is every registered player ordered by score
type Leaderboard struct {
	Status  model.SessionStatus `json:"status"`
	Entries []LeaderboardEntry  `json:"entries"`
}

func buildLeaderboard(s *Session) *Leaderboard {
	players := s.Players.All()
	// ties broken by id so repeated reads agree
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	current, err := s.Queue.Current()
	hasCurrent := err == nil && s.IsActive()

	lb := &Leaderboard{
		Status:  s.Status,
		Entries: make([]LeaderboardEntry, len(players)),
	}
	for i, p := range players {
		lb.Entries[i] = LeaderboardEntry{
			Rank:      i + 1,
			Player:    p,
			IsCurrent: hasCurrent && p.ID == current,
		}
	}
	return lb
}

// Current returns the entry holding the turn, if any
func (lb *Leaderboard) Current() (LeaderboardEntry, bool) {
	for _, e := range lb.Entries {
		if e.IsCurrent {
			return e, true
		}
	}
	return LeaderboardEntry{}, false
}

// Table renders the leaderboard as fixed-width text
func (lb *Leaderboard) Table() string {
	if len(lb.Entries) == 0 {
		return "No players yet.\n"
	}

	nameWidth := utf8.RuneCountInString("Player")
	for _, e := range lb.Entries {
		if n := utf8.RuneCountInString(e.Player.DisplayName); n > nameWidth {
			nameWidth = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-3s %s %6s\n", "#", pad("Player", nameWidth), "Score")
	for _, e := range lb.Entries {
		marker := ""
		if e.IsCurrent {
			marker = " " + TurnMarker
		}
		fmt.Fprintf(&b, "%-3d %s %6d%s\n", e.Rank, pad(e.Player.DisplayName, nameWidth), e.Player.Score, marker)
	}
	return b.String()
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
