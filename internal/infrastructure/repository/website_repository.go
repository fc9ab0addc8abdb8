package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type websiteRepository struct {
	db *gorm.DB
}

// NewWebsiteRepository creates a new website repository
func NewWebsiteRepository(db *gorm.DB) domainRepo.WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) Create(ctx context.Context, website *entity.Website) error {
	return r.db.WithContext(ctx).Create(website).Error
}

func (r *websiteRepository) Get(ctx context.Context) (*entity.Website, error) {
	var website entity.Website
	err := r.db.WithContext(ctx).Scopes(BusinessScope(ctx)).First(&website).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &website, err
}

func (r *websiteRepository) GetBySlug(ctx context.Context, slug string) (*entity.Website, error) {
	var website entity.Website
	err := r.db.WithContext(ctx).Preload("Business").First(&website, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &website, err
}

func (r *websiteRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&entity.Website{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *websiteRepository) Update(ctx context.Context, website *entity.Website) error {
	return r.db.WithContext(ctx).Omit("Business").Save(website).Error
}
