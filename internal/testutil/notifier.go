package testutil

import (
	"context"
	"sync"

	"github.com/mcoot/kabak/internal/model"
)

// RecordingNotifier captures dispatched notifications synchronously
type RecordingNotifier struct {
	mu    sync.Mutex
	notes []model.Notification
}

// NewRecordingNotifier creates an empty RecordingNotifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (r *RecordingNotifier) Dispatch(ctx context.Context, notes ...model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, notes...)
}

// All returns every notification received so far
func (r *RecordingNotifier) All() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Notification, len(r.notes))
	copy(out, r.notes)
	return out
}

// For returns the notifications addressed to id
func (r *RecordingNotifier) For(id model.PlayerID) []model.Notification {
	var out []model.Notification
	for _, n := range r.All() {
		if n.To == id {
			out = append(out, n)
		}
	}
	return out
}

// OfType returns the notifications of type t
func (r *RecordingNotifier) OfType(t model.NotificationType) []model.Notification {
	var out []model.Notification
	for _, n := range r.All() {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// Clear forgets everything received so far
func (r *RecordingNotifier) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}

// Deliver lets a RecordingNotifier act as a notify.Sink
func (r *RecordingNotifier) Deliver(ctx context.Context, n model.Notification) error {
	r.Dispatch(ctx, n)
	return nil
}
