package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"attendancetracker/internal/domain"
)

func TestAttendanceRepository_Create(t *testing.T) {
	ctx := context.Background()
	nine := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *domain.AttendanceRecord
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			rec:  domain.NewAttendanceRecord("emp-uuid-1", "2026-02-08", nine, nine),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendance_records`).
					WithArgs("emp-uuid-1", "2026-02-08", nine, nine).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rec-uuid-1"))
			},
			wantErr: false,
		},
		{
			name: "unique violation means a concurrent check-in won",
			rec:  domain.NewAttendanceRecord("emp-uuid-1", "2026-02-08", nine, nine),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendance_records`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyCheckedIn,
		},
		{
			name: "db error is transient",
			rec:  domain.NewAttendanceRecord("emp-uuid-1", "2026-02-08", nine, nine),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendance_records`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendanceRepository(db)
			err = repo.Create(ctx, tt.rec)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "rec-uuid-1", tt.rec.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendanceRepository_GetByEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	nine := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// The driver delivers a date column as time.Time, not a string.
		day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"id", "employee_id", "date", "check_in_time", "check_out_time", "created_at"}).
			AddRow("rec-uuid-1", "emp-uuid-1", day, nine, nil, nine)
		mock.ExpectQuery(`SELECT id, employee_id, date, check_in_time, check_out_time, created_at`).
			WithArgs("emp-uuid-1", "2026-02-08").
			WillReturnRows(rows)

		repo := NewAttendanceRepository(db)
		rec, err := repo.GetByEmployeeAndDate(ctx, "emp-uuid-1", "2026-02-08")
		require.NoError(t, err)
		require.Equal(t, "rec-uuid-1", rec.ID)
		require.Equal(t, "2026-02-08", rec.Date, "date must come back in the wire layout, not RFC3339")
		require.Nil(t, rec.CheckOutTime)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, employee_id, date, check_in_time, check_out_time, created_at`).
			WithArgs("emp-uuid-1", "2026-02-08").
			WillReturnError(sql.ErrNoRows)

		repo := NewAttendanceRepository(db)
		_, err = repo.GetByEmployeeAndDate(ctx, "emp-uuid-1", "2026-02-08")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_SetCheckOut(t *testing.T) {
	ctx := context.Background()
	five := time.Date(2026, 2, 8, 17, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE attendance_records`).
			WithArgs(five, "rec-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewAttendanceRepository(db)
		require.NoError(t, repo.SetCheckOut(ctx, "rec-uuid-1", five))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means already checked out", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE attendance_records`).
			WithArgs(five, "rec-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewAttendanceRepository(db)
		err = repo.SetCheckOut(ctx, "rec-uuid-1", five)
		require.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_ListByDate(t *testing.T) {
	ctx := context.Background()
	nine := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	five := time.Date(2026, 2, 8, 17, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"id", "employee_id", "date", "check_in_time", "check_out_time", "created_at",
		"e_id", "e_name", "e_email", "e_created_at", "e_updated_at",
	}
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols).
		AddRow("rec-uuid-1", "emp-uuid-1", day, nine, five, nine,
			"emp-uuid-1", "E001", "e@x.com", nine, nine)
	mock.ExpectQuery(`JOIN employees e ON e.id = a.employee_id`).
		WithArgs("2026-02-08", 50, 0).
		WillReturnRows(rows)

	repo := NewAttendanceRepository(db)
	result, err := repo.ListByDate(ctx, "2026-02-08", domain.PaginationParams{Page: 1, PageSize: 50})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "E001", result[0].Employee.Name)
	require.Equal(t, "e@x.com", result[0].Employee.Email)
	require.Equal(t, "2026-02-08", result[0].Record.Date, "date must come back in the wire layout, not RFC3339")
	require.NotNil(t, result[0].Record.CheckOutTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CountByDate(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("2026-02-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewAttendanceRepository(db)
	total, err := repo.CountByDate(ctx, "2026-02-08")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
