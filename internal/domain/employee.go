package domain

import (
	"context"
	"time"
)

// Employee is a directory entry referenced by attendance records. The
// directory is owned by another system; this service only reads it.
// swagger:model Employee
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeDirectory defines read-only employee lookups.
type EmployeeDirectory interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
}
