package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"attendancetracker/internal/domain"
)

type notificationQueueRepository struct {
	DB *sql.DB
}

// NewNotificationQueueRepository returns a NotificationQueue backed by the
// notification_queue table. Durability comes from the table itself: an
// entry is deleted only by Ack or moved wholesale by DeadLetter, so a crash
// between enqueue and delivery never loses an event, and a crash while
// leased leads to redelivery once visible_at passes.
func NewNotificationQueueRepository(db *sql.DB) domain.NotificationQueue {
	return &notificationQueueRepository{DB: db}
}

func (r *notificationQueueRepository) Enqueue(ctx context.Context, event domain.NotificationEvent) error {
	query := `
		INSERT INTO notification_queue
			(id, event_kind, employee_id, employee_name, employee_email, event_time, attempts, visible_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $7)
	`
	now := time.Now()
	_, err := r.DB.ExecContext(ctx, query,
		uuid.NewString(), string(event.Kind), event.EmployeeID, event.EmployeeName,
		event.EmployeeEmail, event.EventTime, now,
	)
	if err != nil {
		return fmt.Errorf("%w: enqueue notification: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Dequeue leases the oldest visible entry. FOR UPDATE SKIP LOCKED keeps
// concurrent consumers from claiming the same row, and pushing visible_at
// forward gives this consumer single in-flight ownership for the lease
// window. Attempts is incremented here so the count survives a consumer
// crash mid-delivery.
func (r *notificationQueueRepository) Dequeue(ctx context.Context, lease time.Duration) (*domain.QueuedNotification, error) {
	query := `
		UPDATE notification_queue
		SET visible_at = $1, attempts = attempts + 1
		WHERE id = (
			SELECT id FROM notification_queue
			WHERE visible_at <= $2
			ORDER BY created_at, id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING id, event_kind, employee_id, employee_name, employee_email, event_time, attempts, created_at
	`
	now := time.Now()
	qn := &domain.QueuedNotification{}
	var kind string
	err := r.DB.QueryRowContext(ctx, query, now.Add(lease), now).Scan(
		&qn.ID, &kind, &qn.Event.EmployeeID, &qn.Event.EmployeeName,
		&qn.Event.EmployeeEmail, &qn.Event.EventTime, &qn.Attempts, &qn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQueueEmpty
		}
		return nil, fmt.Errorf("%w: dequeue notification: %v", domain.ErrStoreUnavailable, err)
	}
	qn.Event.Kind = domain.EventKind(kind)
	return qn, nil
}

func (r *notificationQueueRepository) Ack(ctx context.Context, id string) error {
	query := `
		DELETE FROM notification_queue
		WHERE id = $1
	`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: ack notification: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *notificationQueueRepository) Nack(ctx context.Context, id string, delay time.Duration) error {
	query := `
		UPDATE notification_queue
		SET visible_at = $1
		WHERE id = $2
	`
	if _, err := r.DB.ExecContext(ctx, query, time.Now().Add(delay), id); err != nil {
		return fmt.Errorf("%w: nack notification: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// DeadLetter moves the entry to notification_dead_letters in one
// transaction so the event exists in exactly one of the two tables.
func (r *notificationQueueRepository) DeadLetter(ctx context.Context, id string, reason string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: dead-letter notification: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO notification_dead_letters
			(id, event_kind, employee_id, employee_name, employee_email, event_time, attempts, last_error, failed_at)
		SELECT id, event_kind, employee_id, employee_name, employee_email, event_time, attempts, $2, $3
		FROM notification_queue
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, insert, id, reason, time.Now()); err != nil {
		return fmt.Errorf("%w: dead-letter notification: %v", domain.ErrStoreUnavailable, err)
	}
	del := `
		DELETE FROM notification_queue
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, del, id); err != nil {
		return fmt.Errorf("%w: dead-letter notification: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: dead-letter notification: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
