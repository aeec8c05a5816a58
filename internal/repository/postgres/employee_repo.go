package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendancetracker/internal/domain"
)

type employeeDirectory struct {
	DB *sql.DB
}

// NewEmployeeDirectory returns a read-only EmployeeDirectory backed by the
// employees table. The table is owned by the employee management system;
// this service never writes to it.
func NewEmployeeDirectory(db *sql.DB) domain.EmployeeDirectory {
	return &employeeDirectory{DB: db}
}

func (r *employeeDirectory) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM employees
		WHERE id = $1
	`
	e := &domain.Employee{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get employee: %v", domain.ErrStoreUnavailable, err)
	}
	return e, nil
}
