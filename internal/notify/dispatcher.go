// Package notify delivers user-facing messages without coupling delivery
// to the engine operations that trigger them. Engines enqueue and move on;
// a failed send is logged, never surfaced to the triggering request.
package notify

import (
	"context"
	"sync"

	"fleetrental-backend/internal/logger"
)

// Message is a single notification to a recipient.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Sender is any delivery backend.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans messages out to workers over a buffered channel. It is an
// owned object with an explicit Start/Stop lifecycle; nothing here is a
// package-level singleton.
type Dispatcher struct {
	sender  Sender
	jobs    chan Message
	workers int

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, queueSize, workers int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		sender:  sender,
		jobs:    make(chan Message, queueSize),
		workers: workers,
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
	logger.Info("Notification dispatcher started", "workers", d.workers)
}

// Stop signals the workers and waits for in-flight sends to finish.
// Queued but unstarted messages are dropped; notifications are best-effort.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	d.cancel()
	d.wg.Wait()
	d.started = false
	logger.Info("Notification dispatcher stopped")
}

// Enqueue hands a message to the workers. It never blocks: when the queue
// is full the message is dropped with a warning.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.jobs <- msg:
	default:
		logger.Warn("Notification queue full, dropping message", "to", msg.To, "subject", msg.Subject)
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.jobs:
			if err := d.sender.Send(ctx, msg); err != nil {
				logger.Error("Failed to send notification", "to", msg.To, "subject", msg.Subject, "error", err)
			}
		}
	}
}
