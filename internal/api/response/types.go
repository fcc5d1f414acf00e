package response

import (
	"time"

	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	LastActive  time.Time `json:"last_active"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Score:       p.Score,
		LastActive:  p.LastActive,
	}
}

func playerPtr(p *model.Player) *Player {
	if p == nil {
		return nil
	}
	out := PlayerFromModel(*p)
	return &out
}

func playersFromModel(ps []model.Player) []Player {
	out := make([]Player, len(ps))
	for i, p := range ps {
		out[i] = PlayerFromModel(p)
	}
	return out
}

func idsFromModel(ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func matchesFromModel(ms []model.LetterMatch) []string {
	if ms == nil {
		return nil
	}
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = string(m)
	}
	return out
}

// JoinResponse is the response for joining the game
type JoinResponse struct {
	Player        Player `json:"player"`
	AlreadyJoined bool   `json:"already_joined"`
}

// BeginResponse is the response for starting the game
type BeginResponse struct {
	First Player   `json:"first"`
	Order []string `json:"order"`
}

// BeginFromResult converts a game.BeginResult
func BeginFromResult(r *game.BeginResult) BeginResponse {
	return BeginResponse{
		First: PlayerFromModel(r.First),
		Order: idsFromModel(r.Order),
	}
}

// GuessResponse is the response after an accepted guess
type GuessResponse struct {
	LocationID   int      `json:"location_id"`
	LocationName string   `json:"location_name"`
	Word         string   `json:"word"`
	Matches      []string `json:"matches"`
	Verdict      string   `json:"verdict"`
	Points       int      `json:"points"`
	Solved       bool     `json:"solved"`
	Player       Player   `json:"player"`
	Next         string   `json:"next"`
}

// GuessFromResult converts a game.GuessResult
func GuessFromResult(r *game.GuessResult) GuessResponse {
	return GuessResponse{
		LocationID:   int(r.LocationID),
		LocationName: r.LocationName,
		Word:         r.Word,
		Matches:      matchesFromModel(r.Matches),
		Verdict:      r.Verdict,
		Points:       r.Points,
		Solved:       r.Solved,
		Player:       PlayerFromModel(r.Player),
		Next:         string(r.Next),
	}
}

// StealOptionsResponse lists the players the caller may rob
type StealOptionsResponse struct {
	Targets []Player `json:"targets"`
}

// StealOptionsFromResult converts game.StealOptions
func StealOptionsFromResult(o *game.StealOptions) StealOptionsResponse {
	return StealOptionsResponse{Targets: playersFromModel(o.Targets)}
}

// StealResponse is the response after a robbery
type StealResponse struct {
	Die         int    `json:"die"`
	Success     bool   `json:"success"`
	ThiefDelta  int    `json:"thief_delta"`
	VictimDelta int    `json:"victim_delta"`
	Thief       Player `json:"thief"`
	Victim      Player `json:"victim"`
	Next        string `json:"next"`
}

// StealFromResult converts a game.StealResult
func StealFromResult(r *game.StealResult) StealResponse {
	return StealResponse{
		Die:         r.Outcome.Die,
		Success:     r.Outcome.Success,
		ThiefDelta:  r.Outcome.ThiefDelta,
		VictimDelta: r.Outcome.VictimDelta,
		Thief:       PlayerFromModel(r.Thief),
		Victim:      PlayerFromModel(r.Victim),
		Next:        string(r.Next),
	}
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Player    Player `json:"player"`
	IsCurrent bool   `json:"is_current"`
}

// Leaderboard is the score table, structured and pre-rendered
type Leaderboard struct {
	Status  string             `json:"status"`
	Entries []LeaderboardEntry `json:"entries"`
	Table   string             `json:"table"`
}

// LeaderboardFromResult converts a game.Leaderboard
func LeaderboardFromResult(lb *game.Leaderboard) Leaderboard {
	entries := make([]LeaderboardEntry, len(lb.Entries))
	for i, e := range lb.Entries {
		entries[i] = LeaderboardEntry{
			Rank:      e.Rank,
			Player:    PlayerFromModel(e.Player),
			IsCurrent: e.IsCurrent,
		}
	}
	return Leaderboard{
		Status:  string(lb.Status),
		Entries: entries,
		Table:   lb.Table(),
	}
}

// Menu lists the actions available to the caller
type Menu struct {
	IsAdmin       bool    `json:"is_admin"`
	IsMyTurn      bool    `json:"is_my_turn"`
	CanGuess      bool    `json:"can_guess"`
	CanSteal      bool    `json:"can_steal"`
	CanViewBoard  bool    `json:"can_view_board"`
	CanViewScores bool    `json:"can_view_scores"`
	Current       *Player `json:"current,omitempty"`
	Player        *Player `json:"player,omitempty"`
}

// MenuFromResult converts a game.Menu
func MenuFromResult(m *game.Menu) Menu {
	return Menu{
		IsAdmin:       m.IsAdmin,
		IsMyTurn:      m.IsMyTurn,
		CanGuess:      m.CanGuess,
		CanSteal:      m.CanSteal,
		CanViewBoard:  m.CanViewBoard,
		CanViewScores: m.CanViewScores,
		Current:       playerPtr(m.Current),
		Player:        playerPtr(m.Player),
	}
}

// LocationSummary is one board entry
type LocationSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// Locations is a list of board entries
type Locations struct {
	Locations []LocationSummary `json:"locations"`
}

// LocationsFromResult converts a board listing
func LocationsFromResult(ls []game.LocationSummary) Locations {
	out := make([]LocationSummary, len(ls))
	for i, l := range ls {
		out[i] = LocationSummary{ID: int(l.ID), Name: l.Name, Closed: l.Closed}
	}
	return Locations{Locations: out}
}

// Attempt is the most recent guess at a location
type Attempt struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Time        time.Time `json:"time"`
	Word        string    `json:"word"`
	Matches     []string  `json:"matches"`
	Verdict     string    `json:"verdict"`
}

// LocationDetail describes one location
type LocationDetail struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Narrative   string   `json:"narrative"`
	ImageRef    string   `json:"image_ref,omitempty"`
	Closed      bool     `json:"closed"`
	LastAttempt *Attempt `json:"last_attempt,omitempty"`
	SecretWord  string   `json:"secret_word,omitempty"`
}

// LocationFromResult converts a game.LocationView
func LocationFromResult(v *game.LocationView) LocationDetail {
	out := LocationDetail{
		ID:         int(v.ID),
		Name:       v.Name,
		Narrative:  v.Narrative,
		ImageRef:   v.ImageRef,
		Closed:     v.Closed,
		SecretWord: v.SecretWord,
	}
	if a := v.LastAttempt; a != nil {
		out.LastAttempt = &Attempt{
			PlayerID:    string(a.PlayerID),
			DisplayName: a.DisplayName,
			Time:        a.Time,
			Word:        a.Word,
			Matches:     matchesFromModel(v.LastMatches),
			Verdict:     v.LastVerdict,
		}
	}
	return out
}

// Rules is the rule text split into message-sized chunks
type Rules struct {
	Chunks []string `json:"chunks"`
}

// Health is the response of the health check
type Health struct {
	Status  string     `json:"status"`
	Session GameStatus `json:"session"`
}

// GameStatus is a short summary of the session
type GameStatus struct {
	Status          string  `json:"status"`
	Current         *Player `json:"current,omitempty"`
	Players         int     `json:"players"`
	Locations       int     `json:"locations"`
	ClosedLocations int     `json:"closed_locations"`
}

// GameStatusFromResult converts a game.StatusView
func GameStatusFromResult(v game.StatusView) GameStatus {
	return GameStatus{
		Status:          string(v.Status),
		Current:         playerPtr(v.Current),
		Players:         v.Players,
		Locations:       v.Locations,
		ClosedLocations: v.ClosedLocations,
	}
}
