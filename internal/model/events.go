package model

import "time"

// NotificationType identifies why a player is being messaged
type NotificationType string

const (
	NotifyYourTurn   NotificationType = "your_turn"
	NotifyGameBegun  NotificationType = "game_begun"
	NotifyRobbed     NotificationType = "robbed"
	NotifyInactivity NotificationType = "inactivity"
	NotifyAdminAlert NotificationType = "admin_alert"
)

// Notification describes one outbound message produced by a state transition.
// Mutations return these; delivery happens after the mutation has committed.
type Notification struct {
	Type      NotificationType `json:"type"`
	To        PlayerID         `json:"to"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}
