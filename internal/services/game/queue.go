package game

import (
	"slices"

	"github.com/mcoot/kabak/internal/model"
)

// TurnQueue is the rotation of player ids. The head holds the turn.
type TurnQueue struct {
	ids []model.PlayerID
}

// NewTurnQueue creates a queue with the given order
func NewTurnQueue(ids ...model.PlayerID) *TurnQueue {
	q := &TurnQueue{}
	q.Seed(ids)
	return q
}

// IsEmpty reports whether nobody is queued
func (q *TurnQueue) IsEmpty() bool {
	return len(q.ids) == 0
}

// Current returns the turn holder
func (q *TurnQueue) Current() (model.PlayerID, error) {
	if q.IsEmpty() {
		return "", model.ErrEmptyQueue
	}
	return q.ids[0], nil
}

// IsCurrent reports whether id holds the turn
func (q *TurnQueue) IsCurrent(id model.PlayerID) bool {
	cur, err := q.Current()
	return err == nil && cur == id
}

// Contains reports whether id is queued
func (q *TurnQueue) Contains(id model.PlayerID) bool {
	return slices.Contains(q.ids, id)
}

// Advance rotates left by one: the head moves to the tail.
// It is a no-op on an empty queue.
func (q *TurnQueue) Advance() {
	if len(q.ids) < 2 {
		return
	}
	head := q.ids[0]
	copy(q.ids, q.ids[1:])
	q.ids[len(q.ids)-1] = head
}

// Seed replaces the queue contents wholesale
func (q *TurnQueue) Seed(ids []model.PlayerID) {
	q.ids = make([]model.PlayerID, len(ids))
	copy(q.ids, ids)
}

// Append adds id at the tail if it is not already queued
func (q *TurnQueue) Append(id model.PlayerID) {
	if !q.Contains(id) {
		q.ids = append(q.ids, id)
	}
}

// IDs returns a copy of the queue order
func (q *TurnQueue) IDs() []model.PlayerID {
	out := make([]model.PlayerID, len(q.ids))
	copy(out, q.ids)
	return out
}

// Len returns the queue length
func (q *TurnQueue) Len() int {
	return len(q.ids)
}
