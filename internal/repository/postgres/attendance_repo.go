package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"attendancetracker/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type attendanceRepository struct {
	DB *sql.DB
}

// NewAttendanceRepository returns an AttendanceRepository backed by the
// attendance_records table. The (employee_id, date) unique index makes
// Create an atomic check-then-insert: the losing side of a concurrent
// check-in gets ErrAlreadyCheckedIn, not a generic conflict.
func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

func (r *attendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (employee_id, date, check_in_time, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rec.EmployeeID, rec.Date, rec.CheckInTime, rec.CreatedAt).
		Scan(&rec.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("%w: create attendance record: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, employee_id, date, check_in_time, check_out_time, created_at
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`
	rec := &domain.AttendanceRecord{}
	// lib/pq decodes a date column as time.Time; format it back to the
	// wire layout so reads agree with what check-in returned.
	var day time.Time
	err := r.DB.QueryRowContext(ctx, query, employeeID, date).
		Scan(&rec.ID, &rec.EmployeeID, &day, &rec.CheckInTime, &rec.CheckOutTime, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get attendance record: %v", domain.ErrStoreUnavailable, err)
	}
	rec.Date = domain.DateOf(day)
	return rec, nil
}

// SetCheckOut sets check_out_time exactly once. The IS NULL guard makes the
// update atomic under concurrent check-outs: the loser affects zero rows.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, recordID string, checkOutTime time.Time) error {
	query := `
		UPDATE attendance_records
		SET check_out_time = $1
		WHERE id = $2 AND check_out_time IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, checkOutTime, recordID)
	if err != nil {
		return fmt.Errorf("%w: set check-out: %v", domain.ErrStoreUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: set check-out: %v", domain.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return domain.ErrAlreadyCheckedOut
	}
	return nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date string, params domain.PaginationParams) ([]*domain.AttendanceWithEmployee, error) {
	query := `
		SELECT a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time, a.created_at,
		       e.id, e.name, e.email, e.created_at, e.updated_at
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1
		ORDER BY a.check_in_time, a.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, date, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: list attendance by date: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var result []*domain.AttendanceWithEmployee
	for rows.Next() {
		rec := &domain.AttendanceRecord{}
		emp := &domain.Employee{}
		var day time.Time
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &day, &rec.CheckInTime, &rec.CheckOutTime, &rec.CreatedAt,
			&emp.ID, &emp.Name, &emp.Email, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan attendance row: %v", domain.ErrStoreUnavailable, err)
		}
		rec.Date = domain.DateOf(day)
		result = append(result, &domain.AttendanceWithEmployee{Record: rec, Employee: emp})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list attendance by date: %v", domain.ErrStoreUnavailable, err)
	}
	if result == nil {
		result = []*domain.AttendanceWithEmployee{}
	}
	return result, nil
}

func (r *attendanceRepository) CountByDate(ctx context.Context, date string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE date = $1
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, query, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: count attendance by date: %v", domain.ErrStoreUnavailable, err)
	}
	return total, nil
}
