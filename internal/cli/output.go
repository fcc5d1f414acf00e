package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinResult:
		o.printJoinResult(v)
	case BeginResult:
		o.printBeginResult(v)
	case Menu:
		o.printMenu(v)
	case Leaderboard:
		fmt.Fprint(o.w, v.Table)
	case Locations:
		o.printLocations(v)
	case LocationDetail:
		o.printLocationDetail(v)
	case GuessResult:
		o.printGuessResult(v)
	case StealOptions:
		o.printStealOptions(v)
	case StealResult:
		o.printStealResult(v)
	case Rules:
		fmt.Fprintln(o.w, strings.Join(v.Chunks, "\n"))
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	LastActive  time.Time `json:"last_active"`
}

// JoinResult response type
type JoinResult struct {
	Player        Player `json:"player"`
	AlreadyJoined bool   `json:"already_joined"`
}

// BeginResult response type
type BeginResult struct {
	First Player   `json:"first"`
	Order []string `json:"order"`
}

// Menu response type
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

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Player    Player `json:"player"`
	IsCurrent bool   `json:"is_current"`
}

// Leaderboard response type
type Leaderboard struct {
	Status  string             `json:"status"`
	Entries []LeaderboardEntry `json:"entries"`
	Table   string             `json:"table"`
}

// LocationSummary response type
type LocationSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// Locations response type
type Locations struct {
	Locations []LocationSummary `json:"locations"`
}

// Attempt response type
type Attempt struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Time        time.Time `json:"time"`
	Word        string    `json:"word"`
	Matches     []string  `json:"matches"`
	Verdict     string    `json:"verdict"`
}

// LocationDetail response type
type LocationDetail struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Narrative   string   `json:"narrative"`
	ImageRef    string   `json:"image_ref,omitempty"`
	Closed      bool     `json:"closed"`
	LastAttempt *Attempt `json:"last_attempt,omitempty"`
	SecretWord  string   `json:"secret_word,omitempty"`
}

// GuessResult response type
type GuessResult struct {
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

// StealOptions response type
type StealOptions struct {
	Targets []Player `json:"targets"`
}

// StealResult response type
type StealResult struct {
	Die         int    `json:"die"`
	Success     bool   `json:"success"`
	ThiefDelta  int    `json:"thief_delta"`
	VictimDelta int    `json:"victim_delta"`
	Thief       Player `json:"thief"`
	Victim      Player `json:"victim"`
	Next        string `json:"next"`
}

// Rules response type
type Rules struct {
	Chunks []string `json:"chunks"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Session struct {
		Status          string  `json:"status"`
		Current         *Player `json:"current,omitempty"`
		Players         int     `json:"players"`
		Locations       int     `json:"locations"`
		ClosedLocations int     `json:"closed_locations"`
	} `json:"session"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Score: %d\n", p.Score)
}

func (o *Output) printJoinResult(j JoinResult) {
	if j.AlreadyJoined {
		fmt.Fprintln(o.w, "You are already in the game")
	} else {
		fmt.Fprintln(o.w, "Welcome to the game!")
	}
	o.printPlayer(j.Player)
}

func (o *Output) printBeginResult(b BeginResult) {
	fmt.Fprintln(o.w, "Game started")
	fmt.Fprintf(o.w, "First: %s (%s)\n", b.First.DisplayName, b.First.ID)
	fmt.Fprintf(o.w, "Order: %s\n", strings.Join(b.Order, ", "))
}

func (o *Output) printMenu(m Menu) {
	if m.Current != nil {
		fmt.Fprintf(o.w, "Turn: %s\n", m.Current.DisplayName)
	}
	if m.Player != nil {
		fmt.Fprintf(o.w, "Your score: %d\n", m.Player.Score)
	}

	var actions []string
	if m.CanGuess {
		actions = append(actions, "guess")
	}
	if m.CanSteal {
		actions = append(actions, "steal")
	}
	if m.CanViewBoard {
		actions = append(actions, "board")
	}
	if m.CanViewScores {
		actions = append(actions, "score")
	}
	if !m.IsAdmin && !m.IsMyTurn {
		fmt.Fprintln(o.w, "Waiting for your turn")
	}
	fmt.Fprintf(o.w, "Actions: %s\n", strings.Join(actions, ", "))
}

func (o *Output) printLocations(l Locations) {
	if len(l.Locations) == 0 {
		fmt.Fprintln(o.w, "No locations")
		return
	}
	for _, loc := range l.Locations {
		mark := " "
		if loc.Closed {
			mark = "x"
		}
		fmt.Fprintf(o.w, "[%s] %d. %s\n", mark, loc.ID, loc.Name)
	}
}

func (o *Output) printLocationDetail(l LocationDetail) {
	fmt.Fprintf(o.w, "%d. %s\n", l.ID, l.Name)
	if l.Closed {
		fmt.Fprintln(o.w, "Closed")
	}
	fmt.Fprintln(o.w, l.Narrative)
	if l.ImageRef != "" {
		fmt.Fprintf(o.w, "Image: %s\n", l.ImageRef)
	}
	if a := l.LastAttempt; a != nil {
		fmt.Fprintf(o.w, "Last attempt: %s by %s at %s\n", a.Word, a.DisplayName, a.Time.Format("2006-01-02 15:04"))
		fmt.Fprintln(o.w, a.Verdict)
	}
	if l.SecretWord != "" {
		fmt.Fprintf(o.w, "Secret: %s\n", l.SecretWord)
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	fmt.Fprintf(o.w, "%s at %s\n", g.Word, g.LocationName)
	fmt.Fprintln(o.w, g.Verdict)
	fmt.Fprintf(o.w, "Points: %d (total %d)\n", g.Points, g.Player.Score)
	if g.Solved {
		fmt.Fprintln(o.w, "Solved! The location is closed.")
	}
	fmt.Fprintf(o.w, "Next: %s\n", g.Next)
}

func (o *Output) printStealOptions(s StealOptions) {
	fmt.Fprintln(o.w, "You can rob:")
	for _, p := range s.Targets {
		fmt.Fprintf(o.w, "  - %s (%s): %d\n", p.DisplayName, p.ID, p.Score)
	}
}

func (o *Output) printStealResult(s StealResult) {
	fmt.Fprintf(o.w, "Die: %d\n", s.Die)
	if s.Success {
		fmt.Fprintf(o.w, "Success! You took %d points from %s\n", s.ThiefDelta, s.Victim.DisplayName)
	} else {
		fmt.Fprintf(o.w, "Caught! You pay %s %d points\n", s.Victim.DisplayName, s.VictimDelta)
	}
	fmt.Fprintf(o.w, "Your score: %d\n", s.Thief.Score)
	fmt.Fprintf(o.w, "Next: %s\n", s.Next)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Game: %s\n", h.Session.Status)
	fmt.Fprintf(o.w, "Players: %d\n", h.Session.Players)
	fmt.Fprintf(o.w, "Locations: %d/%d closed\n", h.Session.ClosedLocations, h.Session.Locations)
}
