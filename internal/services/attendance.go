package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"attendancetracker/internal/domain"
)

type attendanceService struct {
	directory domain.EmployeeDirectory
	repo      domain.AttendanceRepository
	queue     domain.NotificationQueue
	logger    *slog.Logger
	now       func() time.Time
}

// NewAttendanceService creates an AttendanceService with the given
// collaborators. "Today" is derived from the wall clock at call time; tests
// override the clock through the now field.
func NewAttendanceService(
	directory domain.EmployeeDirectory,
	repo domain.AttendanceRepository,
	queue domain.NotificationQueue,
	logger *slog.Logger,
) domain.AttendanceService {
	return &attendanceService{
		directory: directory,
		repo:      repo,
		queue:     queue,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	employee, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lookup employee: %w", err)
	}

	now := s.now()
	today := domain.DateOf(now)

	// Fast-path rejection; the unique index on (employee_id, date) is the
	// real guard against concurrent check-ins.
	if _, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, today); err == nil {
		return nil, domain.ErrAlreadyCheckedIn
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get attendance record: %w", err)
	}

	rec := domain.NewAttendanceRecord(employeeID, today, now, now)
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("create attendance record: %w", err)
	}

	s.emit(ctx, domain.NotificationEvent{
		Kind:          domain.EventCheckIn,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
		EmployeeEmail: employee.Email,
		EventTime:     rec.CheckInTime,
	})
	return rec, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	employee, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lookup employee: %w", err)
	}

	now := s.now()
	today := domain.DateOf(now)

	// A check-in left open on a previous date stays open; only today's
	// record qualifies for check-out.
	rec, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoCheckIn
		}
		return nil, fmt.Errorf("get attendance record: %w", err)
	}
	if rec.CheckOutTime != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}

	if err := s.repo.SetCheckOut(ctx, rec.ID, now); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("set check-out: %w", err)
	}
	rec.CheckOutTime = &now

	s.emit(ctx, domain.NotificationEvent{
		Kind:          domain.EventCheckOut,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
		EmployeeEmail: employee.Email,
		EventTime:     now,
	})
	return rec, nil
}

func (s *attendanceService) GetByDate(ctx context.Context, date string, params domain.PaginationParams) ([]*domain.AttendanceWithEmployee, int, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, 0, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, date)
	}
	records, err := s.repo.ListByDate(ctx, date, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	total, err := s.repo.CountByDate(ctx, date)
	if err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}
	return records, total, nil
}

// emit enqueues the notification event for a transition that already
// persisted. The record is durable business state at this point, so an
// enqueue failure is logged but does not fail the operation.
func (s *attendanceService) emit(ctx context.Context, event domain.NotificationEvent) {
	if err := s.queue.Enqueue(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "enqueue notification failed",
			"kind", string(event.Kind),
			"employee_id", event.EmployeeID,
			"err", err,
		)
	}
}
