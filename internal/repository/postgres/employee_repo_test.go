package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"attendancetracker/internal/domain"
)

func TestEmployeeDirectory_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow("emp-uuid-1", "E001", "e@x.com", now, now)
		mock.ExpectQuery(`SELECT id, name, email, created_at, updated_at`).
			WithArgs("emp-uuid-1").
			WillReturnRows(rows)

		dir := NewEmployeeDirectory(db)
		emp, err := dir.GetByID(ctx, "emp-uuid-1")
		require.NoError(t, err)
		require.Equal(t, "E001", emp.Name)
		require.Equal(t, "e@x.com", emp.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, created_at, updated_at`).
			WithArgs("nonexistent").
			WillReturnError(sql.ErrNoRows)

		dir := NewEmployeeDirectory(db)
		_, err = dir.GetByID(ctx, "nonexistent")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error is transient", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, created_at, updated_at`).
			WillReturnError(sql.ErrConnDone)

		dir := NewEmployeeDirectory(db)
		_, err = dir.GetByID(ctx, "emp-uuid-1")
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
