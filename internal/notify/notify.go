// Package notify delivers engine notifications to players outside the
// session lock. Delivery is best-effort: a slow or failing sink never
// blocks or rolls back the mutation that produced the notification.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/kabak/internal/dependencies/clock"
	"github.com/mcoot/kabak/internal/model"
)

// DefaultBufferSize is the number of notifications queued before new ones are dropped
const DefaultBufferSize = 256

// Sink delivers a single notification to its recipient
type Sink interface {
	Deliver(ctx context.Context, n model.Notification) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, n model.Notification) error

func (f SinkFunc) Deliver(ctx context.Context, n model.Notification) error {
	return f(ctx, n)
}

// Dispatcher queues notifications and fans them out to every sink from a
// single background worker
type Dispatcher struct {
	sinks   []Sink
	adminID model.PlayerID
	clock   clock.Clock
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan model.Notification
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher and starts its worker
func NewDispatcher(adminID model.PlayerID, clk clock.Clock, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		adminID: adminID,
		clock:   clk,
		logger:  logger.With(slog.String("component", "notify")),
		queue:   make(chan model.Notification, DefaultBufferSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	ctx := context.Background()
	for n := range d.queue {
		for _, sink := range d.sinks {
			if err := sink.Deliver(ctx, n); err != nil {
				d.logger.Warn("notification delivery failed",
					slog.String("to", string(n.To)),
					slog.String("type", string(n.Type)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Dispatch enqueues notifications without blocking. When the queue is full
// or the dispatcher is closed the notification is dropped and logged.
func (d *Dispatcher) Dispatch(ctx context.Context, notes ...model.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, n := range notes {
		if d.closed {
			d.logger.Warn("notification dropped - dispatcher closed",
				slog.String("to", string(n.To)),
				slog.String("type", string(n.Type)))
			continue
		}
		select {
		case d.queue <- n:
		default:
			d.logger.Warn("notification dropped - queue full",
				slog.String("to", string(n.To)),
				slog.String("type", string(n.Type)))
		}
	}
}

// NotifyPlayer sends a free-form message to a single player
func (d *Dispatcher) NotifyPlayer(ctx context.Context, id model.PlayerID, message string) {
	d.Dispatch(ctx, model.Notification{
		Type:      model.NotifyAdminAlert,
		To:        id,
		Message:   message,
		Timestamp: d.clock.Now(),
	})
}

// AlertAdmin reports an operational problem to the administrator
func (d *Dispatcher) AlertAdmin(ctx context.Context, message string) {
	if d.adminID == "" {
		return
	}
	d.NotifyPlayer(ctx, d.adminID, message)
}

// Close stops accepting notifications and waits for queued ones to be delivered
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}
