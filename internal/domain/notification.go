package domain

import (
	"context"
	"time"
)

// EventKind identifies the attendance transition a notification reports.
type EventKind string

const (
	EventCheckIn  EventKind = "check-in"
	EventCheckOut EventKind = "check-out"
)

// NotificationEvent is the payload produced by a successful attendance
// transition and consumed by the notification worker.
type NotificationEvent struct {
	Kind          EventKind `json:"event_kind"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	EventTime     time.Time `json:"event_time"`
}

// QueuedNotification is a leased queue entry. Attempts counts deliveries
// started, including the one the current lease belongs to.
type QueuedNotification struct {
	ID        string
	Event     NotificationEvent
	Attempts  int
	CreatedAt time.Time
}

// NotificationQueue is a durable at-least-once work queue. Dequeue leases
// one entry for a visibility window; while leased, no other consumer
// receives it. An entry leaves the queue only through Ack or DeadLetter, so
// a consumer crash leads to redelivery after the lease expires, never to a
// dropped event.
type NotificationQueue interface {
	Enqueue(ctx context.Context, event NotificationEvent) error
	// Dequeue leases the oldest visible entry and increments its attempt
	// count. Returns ErrQueueEmpty when nothing is visible.
	Dequeue(ctx context.Context, lease time.Duration) (*QueuedNotification, error)
	Ack(ctx context.Context, id string) error
	// Nack makes the entry visible again after delay.
	Nack(ctx context.Context, id string, delay time.Duration) error
	// DeadLetter moves the entry to the dead-letter table with the reason.
	DeadLetter(ctx context.Context, id string, reason string) error
}

// NotificationSender delivers one event to its recipient. Failures are
// treated as transient and retried by the worker.
type NotificationSender interface {
	Send(ctx context.Context, event NotificationEvent) error
}
