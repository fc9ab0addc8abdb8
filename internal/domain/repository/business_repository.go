package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	// Create creates a new business
	Create(ctx context.Context, business *entity.Business) error

	// CreateWithOwner creates a business and its owner membership atomically
	CreateWithOwner(ctx context.Context, business *entity.Business) error

	// GetByID retrieves a business by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// Update updates an existing business
	Update(ctx context.Context, business *entity.Business) error

	// GetUserBusinesses retrieves all businesses a user belongs to, oldest membership first
	GetUserBusinesses(ctx context.Context, userID uuid.UUID) ([]entity.Business, error)

	// AddMember adds a user as a member of a business
	AddMember(ctx context.Context, membership *entity.BusinessMembership) error

	// RemoveMember removes a user from a business
	RemoveMember(ctx context.Context, businessID, userID uuid.UUID) error

	// GetMembers retrieves all members of a business
	GetMembers(ctx context.Context, businessID uuid.UUID) ([]entity.BusinessMembership, error)

	// GetMembership retrieves a specific membership
	GetMembership(ctx context.Context, businessID, userID uuid.UUID) (*entity.BusinessMembership, error)

	// UpdateMemberRole updates a member's role in a business
	UpdateMemberRole(ctx context.Context, businessID, userID uuid.UUID, role string) error

	// ListAll retrieves every business (used by background jobs)
	ListAll(ctx context.Context) ([]entity.Business, error)
}
