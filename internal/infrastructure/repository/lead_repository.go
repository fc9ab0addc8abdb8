package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"gorm.io/gorm"
)

var leadSearchColumns = []string{"name", "email", "phone", "company", "source"}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) domainRepo.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) CreateBatch(ctx context.Context, leads []entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(leads, 100).Error
}

func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Customer").
		First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lead, err
}

func (r *leadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Omit("Customer").Save(lead).Error
}

func (r *leadRepository) Convert(ctx context.Context, lead *entity.Lead, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		lead.CustomerID = &customer.ID
		return tx.Omit("Customer").Save(lead).Error
	})
}

func (r *leadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(BusinessScope(ctx)).Delete(&entity.Lead{}, "id = ?", id).Error
}

func (r *leadRepository) List(ctx context.Context, params *domainRepo.LeadFilterParams) ([]entity.Lead, int64, error) {
	var leads []entity.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Scopes(BusinessScope(ctx), SearchScope(params.Search, leadSearchColumns...))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&leads).Error

	return leads, total, err
}

// ListWithCursor returns leads using cursor-based pagination
func (r *leadRepository) ListWithCursor(ctx context.Context, params *domainRepo.LeadCursorFilterParams) ([]entity.Lead, error) {
	var leads []entity.Lead

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Scopes(BusinessScope(ctx), SearchScope(params.Search, leadSearchColumns...))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	query, err := applyCursor(query, params.Cursor)
	if err != nil {
		return nil, err
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order(params.Cursor.Order()).
		Find(&leads).Error

	return leads, err
}
