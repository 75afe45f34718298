package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bravonest/internal/domain"
)

// StatusUpdate is one timestamped entry in a tracked order's history.
type StatusUpdate struct {
	Status    domain.OrderStatus
	Timestamp time.Time
	Message   string
}

// StatusTracker simulates fulfillment progress for the tracking view. It is
// a demo state machine, not real dispatch: transitions are strictly forward
// through confirmed, preparing, ready, picked_up, and the simulator itself
// never reaches delivered or cancelled; those come only from the backend
// order record.
type StatusTracker struct {
	orderID  string
	interval time.Duration
	roll     func() float64

	mu      sync.Mutex
	current domain.OrderStatus
	history []StatusUpdate
	eta     string
	stopped bool

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
}

// NewStatusTracker seeds the tracker with the confirmed and preparing
// entries shown when a tracking view opens. roll may be nil to use the
// default random source; tests inject a deterministic one.
func NewStatusTracker(orderID string, interval time.Duration, roll func() float64) *StatusTracker {
	if roll == nil {
		roll = rand.Float64
	}
	now := time.Now()
	return &StatusTracker{
		orderID:  orderID,
		interval: interval,
		roll:     roll,
		current:  domain.StatusPreparing,
		eta:      "25-30 min",
		stop:     make(chan struct{}),
		history: []StatusUpdate{
			{Status: domain.StatusConfirmed, Timestamp: now, Message: "Order confirmed by restaurant"},
			{Status: domain.StatusPreparing, Timestamp: now, Message: "Kitchen is preparing your order"},
		},
	}
}

// Start runs the simulation ticker until Stop is called or ctx is
// cancelled. Stopping on view close is mandatory; an uncancelled ticker
// would keep mutating state against a closed view.
func (t *StatusTracker) Start(ctx context.Context) {
	t.startOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(t.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					t.Stop()
					return
				case <-t.stop:
					return
				case <-ticker.C:
					t.Advance()
				}
			}
		}()
	})
}

// Stop halts the simulation. No history or status mutation happens after
// Stop returns. Safe to call more than once.
func (t *StatusTracker) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		t.stopped = true
		t.mu.Unlock()
		close(t.stop)
	})
}

// Advance performs one simulation step: draw a value and conditionally move
// one status forward. The guard is exhaustive over all five states so a
// stray tick can never skip a stage or move backward.
func (t *StatusTracker) Advance() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}

	r := t.roll()
	switch t.current {
	case domain.StatusConfirmed:
		// The seed history already moved the order into preparing;
		// nothing advances out of confirmed here.
	case domain.StatusPreparing:
		if r > 0.7 {
			t.push(domain.StatusReady, "Order is ready for pickup", "5-10 min")
		}
	case domain.StatusReady:
		if r > 0.8 {
			t.push(domain.StatusPickedUp, "Driver has picked up your order", "10-15 min")
		}
	case domain.StatusPickedUp, domain.StatusDelivered:
		// Terminal for the simulator; delivered comes from the backend.
	}
}

func (t *StatusTracker) push(status domain.OrderStatus, message, eta string) {
	t.current = status
	t.eta = eta
	t.history = append(t.history, StatusUpdate{
		Status:    status,
		Timestamp: time.Now(),
		Message:   message,
	})
}

func (t *StatusTracker) OrderID() string { return t.orderID }

// Current returns the simulated status.
func (t *StatusTracker) Current() domain.OrderStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// ETA returns the displayed estimate string.
func (t *StatusTracker) ETA() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.eta
}

// History returns a copy of the status records so far.
func (t *StatusTracker) History() []StatusUpdate {
	t.mu.Lock()
	defer t.mu.Unlock()
	history := make([]StatusUpdate, len(t.history))
	copy(history, t.history)
	return history
}
