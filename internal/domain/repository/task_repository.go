package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// Task list states accepted by TaskFilterParams.State
const (
	TaskStateOpen    = "open"
	TaskStateDone    = "done"
	TaskStateOverdue = "overdue"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TaskFilterParams) ([]entity.Task, int64, error)
}

// TaskFilterParams contains filtering parameters for task queries
type TaskFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	State      string
	LeadID     *uuid.UUID
	CustomerID *uuid.UUID
	// Today is the reference date for the overdue state
	Today time.Time
}
