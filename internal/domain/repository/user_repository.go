package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// UserRepository stores platform accounts. Users are not scoped to a business.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UsernameTaken reports whether another user than except holds username
	UsernameTaken(ctx context.Context, username string, except uuid.UUID) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete soft deletes the user and drops its role links
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
	// GetWithRoles loads roles and their permissions
	GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error
	// ReplaceRoles sets the complete role set of a user atomically
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roleIDs []uint) error
}

// RoleRepository reads the seeded roles
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	GetWithPermissions(ctx context.Context, id uint) (*entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
}

// PermissionRepository reads the seeded permissions
type PermissionRepository interface {
	List(ctx context.Context) ([]entity.Permission, error)
}

// PasswordResetTokenRepository stores hashed reset tokens
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	// GetByHash returns nil when no token has the hash
	GetByHash(ctx context.Context, hash string) (*entity.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
