package domain

import (
	"context"
	"time"
)

// DateLayout is the wire and storage format for attendance dates.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's location, formatted with
// DateLayout. A check-in at 23:59:59 and a check-out at 00:00:01 the next
// day fall on different dates and form two independent half-open sessions.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// AttendanceRecord tracks one employee's attendance for one calendar date.
// At most one record exists per (employee_id, date). CheckOutTime is set
// once, and only after CheckInTime.
// swagger:model AttendanceRecord
type AttendanceRecord struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Date         string     `json:"date"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewAttendanceRecord creates an open attendance record for the given date.
// ID is typically set by the repository on create.
func NewAttendanceRecord(employeeID, date string, checkInTime, createdAt time.Time) *AttendanceRecord {
	return &AttendanceRecord{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: checkInTime,
		CreatedAt:   createdAt,
	}
}

// AttendanceWithEmployee bundles a record with its employee for reads.
type AttendanceWithEmployee struct {
	Record   *AttendanceRecord `json:"record"`
	Employee *Employee         `json:"employee"`
}

// AttendanceRepository defines storage operations for attendance records.
// Create must enforce the (employee_id, date) uniqueness atomically: of two
// concurrent creates for the same pair, exactly one succeeds and the other
// fails with ErrAlreadyCheckedIn. SetCheckOut sets check_out_time exactly
// once; it fails with ErrAlreadyCheckedOut if it is already set.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *AttendanceRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*AttendanceRecord, error)
	SetCheckOut(ctx context.Context, recordID string, checkOutTime time.Time) error
	ListByDate(ctx context.Context, date string, params PaginationParams) ([]*AttendanceWithEmployee, error)
	CountByDate(ctx context.Context, date string) (int, error)
}

// AttendanceService defines the check-in/check-out state machine. Per
// (employee, date) the states are NotStarted -> CheckedIn -> CheckedOut;
// no transition skips a state or moves backward. Successful transitions
// persist first, then enqueue a notification event.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string) (*AttendanceRecord, error)
	CheckOut(ctx context.Context, employeeID string) (*AttendanceRecord, error)
	GetByDate(ctx context.Context, date string, params PaginationParams) ([]*AttendanceWithEmployee, int, error)
}
