package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"attendancetracker/internal/domain"
)

// WorkerConfig tunes the notification worker's polling and retry behavior.
type WorkerConfig struct {
	// PollInterval is how long to sleep when the queue is empty.
	PollInterval time.Duration
	// Lease is the visibility window per dequeue. If the worker dies before
	// acking, the entry becomes visible again after this long.
	Lease time.Duration
	// MaxAttempts is the total number of delivery attempts before the entry
	// is dead-lettered.
	MaxAttempts int
	// BackoffBase is the delay before the second attempt; each further
	// attempt doubles it, capped at BackoffMax.
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// DefaultWorkerConfig returns the worker defaults used when config leaves
// the knobs unset.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 2 * time.Second,
		Lease:        30 * time.Second,
		MaxAttempts:  5,
		BackoffBase:  5 * time.Second,
		BackoffMax:   5 * time.Minute,
	}
}

// NotificationWorker consumes the notification queue and delivers events
// through a NotificationSender. It holds no reference to the attendance
// store: redelivered events may cause a duplicate email, never a duplicate
// state mutation.
type NotificationWorker struct {
	queue  domain.NotificationQueue
	sender domain.NotificationSender
	logger *slog.Logger
	cfg    WorkerConfig
}

// NewNotificationWorker creates a worker. Zero-valued config fields fall
// back to DefaultWorkerConfig.
func NewNotificationWorker(
	queue domain.NotificationQueue,
	sender domain.NotificationSender,
	logger *slog.Logger,
	cfg WorkerConfig,
) *NotificationWorker {
	def := DefaultWorkerConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.Lease <= 0 {
		cfg.Lease = def.Lease
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = def.BackoffBase
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = def.BackoffMax
	}
	return &NotificationWorker{
		queue:  queue,
		sender: sender,
		logger: logger,
		cfg:    cfg,
	}
}

// Run consumes events until ctx is canceled. Multiple workers may run
// against the same queue; the lease keeps any entry with a single consumer
// at a time.
func (w *NotificationWorker) Run(ctx context.Context) {
	for {
		processed, err := w.ProcessOne(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			w.logger.ErrorContext(ctx, "notification worker iteration failed", "err", err)
		}
		if !processed {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.PollInterval):
			}
		}
	}
}

// ProcessOne dequeues and handles a single event. It reports whether an
// event was leased; false with a nil error means the queue was empty.
// The entry is acked only after a successful send or dead-letter routing,
// never before.
func (w *NotificationWorker) ProcessOne(ctx context.Context) (bool, error) {
	// Bound the dequeue and the send to the lease window: a hung store or
	// SMTP call must not block the worker past its ownership of the entry.
	opCtx, opCancel := context.WithTimeout(ctx, w.cfg.Lease)
	defer opCancel()

	qn, err := w.queue.Dequeue(opCtx, w.cfg.Lease)
	if err != nil {
		if errors.Is(err, domain.ErrQueueEmpty) {
			return false, nil
		}
		return false, err
	}

	// Queue bookkeeping gets its own deadline: the send may have consumed
	// the whole window, and during shutdown an in-flight entry still needs
	// its ack, nack, or dead-letter recorded before the worker exits.
	bkCtx, bkCancel := context.WithTimeout(context.WithoutCancel(ctx), w.cfg.Lease)
	defer bkCancel()

	if err := w.sender.Send(opCtx, qn.Event); err != nil {
		if qn.Attempts >= w.cfg.MaxAttempts {
			w.logger.ErrorContext(ctx, "notification exhausted retries, dead-lettering",
				"id", qn.ID,
				"kind", string(qn.Event.Kind),
				"employee_id", qn.Event.EmployeeID,
				"attempts", qn.Attempts,
				"err", err,
			)
			if dlErr := w.queue.DeadLetter(bkCtx, qn.ID, err.Error()); dlErr != nil {
				// Leave the entry leased; it will be redelivered after the
				// lease expires rather than silently dropped.
				return true, dlErr
			}
			return true, nil
		}
		delay := w.backoff(qn.Attempts)
		w.logger.WarnContext(ctx, "notification delivery failed, scheduling retry",
			"id", qn.ID,
			"kind", string(qn.Event.Kind),
			"employee_id", qn.Event.EmployeeID,
			"attempt", qn.Attempts,
			"retry_in", delay,
			"err", err,
		)
		if nackErr := w.queue.Nack(bkCtx, qn.ID, delay); nackErr != nil {
			return true, nackErr
		}
		return true, nil
	}

	if err := w.queue.Ack(bkCtx, qn.ID); err != nil {
		// Delivery succeeded but the ack did not; the event will be
		// redelivered. At-least-once makes the duplicate send tolerable.
		return true, err
	}
	w.logger.InfoContext(ctx, "notification delivered",
		"id", qn.ID,
		"kind", string(qn.Event.Kind),
		"employee_id", qn.Event.EmployeeID,
		"attempts", qn.Attempts,
	)
	return true, nil
}

// backoff returns the retry delay after the given attempt number, doubling
// from BackoffBase and capped at BackoffMax.
func (w *NotificationWorker) backoff(attempt int) time.Duration {
	delay := w.cfg.BackoffBase
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= w.cfg.BackoffMax {
			return w.cfg.BackoffMax
		}
	}
	if delay > w.cfg.BackoffMax {
		return w.cfg.BackoffMax
	}
	return delay
}
