package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// UserService handles platform user administration
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// ListUsers returns a page of users matching search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetUser returns a user with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserRolesInput names the complete set of roles a user should hold
type UpdateUserRolesInput struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	Roles   []string
}

// UpdateUserRoles replaces the roles of a user. Unknown role names are
// rejected as a whole; admins cannot strip their own user-management access.
func (s *UserService) UpdateUserRoles(ctx context.Context, input *UpdateUserRolesInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	desired := make(map[uint]*entity.Role)
	var fieldErrors []apperror.FieldError
	for _, name := range input.Roles {
		name = strings.TrimSpace(name)
		role, err := s.roleRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if role == nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "roles", Message: "Unknown role: " + name})
			continue
		}
		desired[role.ID] = role
	}
	if fieldErrors != nil {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.ActorID == input.UserID && !s.keepsUserManagement(ctx, desired) {
		return nil, apperror.NewBadRequestError("You cannot remove your own user management access")
	}

	ids := make([]uint, 0, len(desired))
	for id := range desired {
		ids = append(ids, id)
	}
	if err := s.userRepo.ReplaceRoles(ctx, user.ID, ids); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, user.ID)
}

func (s *UserService) keepsUserManagement(ctx context.Context, roles map[uint]*entity.Role) bool {
	for id, role := range roles {
		if role.Name == entity.RoleSuperAdmin {
			return true
		}
		withPerms, err := s.roleRepo.GetWithPermissions(ctx, id)
		if err != nil || withPerms == nil {
			continue
		}
		for _, p := range withPerms.Permissions {
			if p.Name == entity.PermissionManageUsers {
				return true
			}
		}
	}
	return false
}

// DeleteUser soft deletes a user. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewConflictError("You cannot delete your own account")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all available roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all available permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}
