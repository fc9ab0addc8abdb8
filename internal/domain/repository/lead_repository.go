package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	CreateBatch(ctx context.Context, leads []entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	// Convert creates customer and saves lead in one transaction
	Convert(ctx context.Context, lead *entity.Lead, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LeadFilterParams) ([]entity.Lead, int64, error)
	ListWithCursor(ctx context.Context, params *LeadCursorFilterParams) ([]entity.Lead, error)
}

// LeadFilterParams contains filtering parameters for lead queries
type LeadFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.LeadStatus
}

// LeadCursorFilterParams contains cursor-based filtering for lead queries
type LeadCursorFilterParams struct {
	Cursor *pagination.CursorParams
	Search string
	Status *enum.LeadStatus
}
