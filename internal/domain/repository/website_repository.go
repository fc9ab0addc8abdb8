package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
)

// WebsiteRepository defines the interface for website data operations
type WebsiteRepository interface {
	Create(ctx context.Context, website *entity.Website) error
	// Get returns the website of the business in ctx
	Get(ctx context.Context) (*entity.Website, error)
	// GetBySlug is not business scoped; it serves public pages
	GetBySlug(ctx context.Context, slug string) (*entity.Website, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, website *entity.Website) error
}
