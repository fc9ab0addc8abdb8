package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// TaskService handles to-do items
type TaskService struct {
	taskRepo     repository.TaskRepository
	leadRepo     repository.LeadRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repository.TaskRepository,
	leadRepo repository.LeadRepository,
	customerRepo repository.CustomerRepository,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		leadRepo:     leadRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// TaskInput represents the create task input
type TaskInput struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	Priority    *enum.TaskPriority
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
	LeadID      *uuid.UUID
	CustomerID  *uuid.UUID
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, input *TaskInput) (*entity.Task, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	fieldErrors := requiredField("title", input.Title, "Title is required")
	if input.Priority != nil && !input.Priority.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "priority", Message: "Priority must be low, medium or high"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if err := s.checkLinks(ctx, input.LeadID, input.CustomerID); err != nil {
		return nil, err
	}

	task := &entity.Task{
		BusinessID:  businessID,
		UserID:      input.UserID,
		AssigneeID:  input.AssigneeID,
		LeadID:      input.LeadID,
		CustomerID:  input.CustomerID,
		Title:       strings.TrimSpace(input.Title),
		Description: optional(input.Description),
		Priority:    enum.TaskPriorityMedium,
		DueDate:     dateOnly(input.DueDate),
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) checkLinks(ctx context.Context, leadID, customerID *uuid.UUID) error {
	if leadID != nil {
		lead, err := s.leadRepo.GetByID(ctx, *leadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return apperror.NewNotFoundError("Lead")
		}
	}
	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
	}
	return nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NewNotFoundError("Task")
	}
	return task, nil
}

// ListTasks lists tasks. State is one of open, done or overdue; empty means all.
func (s *TaskService) ListTasks(ctx context.Context, params *repository.TaskFilterParams) (*pagination.PaginatedResult[entity.Task], error) {
	switch params.State {
	case "", repository.TaskStateOpen, repository.TaskStateDone, repository.TaskStateOverdue:
	default:
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: "Status must be open, done or overdue"},
		})
	}
	if params.Today.IsZero() {
		params.Today = *dateOnly(ptrTime(s.now()))
	}

	params.Pagination.Validate()
	tasks, total, err := s.taskRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(tasks, pag), nil
}

// UpdateTaskInput represents the update task input. Nil fields are left
// unchanged; ClearDueDate removes the due date.
type UpdateTaskInput struct {
	ID           uuid.UUID
	Title        *string
	Description  *string
	Priority     *enum.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	AssigneeID   *uuid.UUID
	LeadID       *uuid.UUID
	CustomerID   *uuid.UUID
}

// UpdateTask updates a task
func (s *TaskService) UpdateTask(ctx context.Context, input *UpdateTaskInput) (*entity.Task, error) {
	var fieldErrors []apperror.FieldError
	if input.Title != nil {
		fieldErrors = requiredField("title", *input.Title, "Title is required")
	}
	if input.Priority != nil && !input.Priority.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "priority", Message: "Priority must be low, medium or high"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	task, err := s.GetTask(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, input.LeadID, input.CustomerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = optional(input.Description)
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = dateOnly(input.DueDate)
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.LeadID != nil {
		task.LeadID = input.LeadID
		task.Lead = nil
	}
	if input.CustomerID != nil {
		task.CustomerID = input.CustomerID
		task.Customer = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetCompleted marks a task done or reopens it
func (s *TaskService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*entity.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Completed == completed {
		return task, nil
	}

	task.Completed = completed
	task.CompletedAt = nil
	if completed {
		task.CompletedAt = ptrTime(s.now())
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

// dateOnly truncates t to midnight UTC of its calendar day
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
