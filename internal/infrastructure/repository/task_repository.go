package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domainRepo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Omit("Lead", "Customer").Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var task entity.Task
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Lead").
		Preload("Customer").
		First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Omit("Lead", "Customer").Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(BusinessScope(ctx)).Delete(&entity.Task{}, "id = ?", id).Error
}

func (r *taskRepository) List(ctx context.Context, params *domainRepo.TaskFilterParams) ([]entity.Task, int64, error) {
	var tasks []entity.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Task{}).
		Scopes(BusinessScope(ctx), SearchScope(params.Search, "title", "description"))

	switch params.State {
	case domainRepo.TaskStateOpen:
		query = query.Where("completed = ?", false)
	case domainRepo.TaskStateDone:
		query = query.Where("completed = ?", true)
	case domainRepo.TaskStateOverdue:
		query = query.Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, params.Today)
	}

	if params.LeadID != nil {
		query = query.Where("lead_id = ?", *params.LeadID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("completed ASC, due_date IS NULL, due_date ASC, priority DESC, created_at DESC").
		Find(&tasks).Error

	return tasks, total, err
}
