package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *service.UserService {
	return service.NewUserService(
		infraRepo.NewUserRepository(db),
		infraRepo.NewRoleRepository(db),
		infraRepo.NewPermissionRepository(db),
	)
}

func TestListUsers(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newUserService(db)
	testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)
	testutil.CreateUser(t, db, "bob@example.com", entity.RoleStaff)

	page, err := svc.ListUsers(context.Background(), &pagination.PaginationParams{Page: 1, PerPage: 1}, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)

	page, err = svc.ListUsers(context.Background(), nil, "ALICE")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice@example.com", page.Items[0].Email)
}

func TestUpdateUserRoles(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin)
	user := testutil.CreateUser(t, db, "user@example.com", entity.RoleUser)

	updated, err := svc.UpdateUserRoles(ctx, &service.UpdateUserRolesInput{
		ActorID: admin.ID,
		UserID:  user.ID,
		Roles:   []string{entity.RoleStaff},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleStaff}, updated.GetRoleNames())
	assert.False(t, updated.HasPermission(entity.PermissionManageCompliance))

	_, err = svc.UpdateUserRoles(ctx, &service.UpdateUserRolesInput{
		ActorID: admin.ID,
		UserID:  user.ID,
		Roles:   []string{"wizard"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	_, err = svc.UpdateUserRoles(ctx, &service.UpdateUserRolesInput{
		ActorID: admin.ID,
		UserID:  admin.ID,
		Roles:   []string{entity.RoleStaff},
	})
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	_, err = svc.UpdateUserRoles(ctx, &service.UpdateUserRolesInput{
		ActorID: admin.ID,
		UserID:  admin.ID,
		Roles:   []string{entity.RoleAdmin, entity.RoleStaff},
	})
	require.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin)
	user := testutil.CreateUser(t, db, "gone@example.com", entity.RoleUser)

	assert.Equal(t, http.StatusConflict, appCode(t, svc.DeleteUser(ctx, admin.ID, admin.ID)))

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, user.ID))
	_, err := svc.GetUser(ctx, user.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
	assert.Equal(t, http.StatusNotFound, appCode(t, svc.DeleteUser(ctx, admin.ID, user.ID)))
}

func TestListRolesAndPermissions(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newUserService(db)

	roles, err := svc.ListRoles(context.Background())
	require.NoError(t, err)
	assert.Len(t, roles, 4)

	perms, err := svc.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, perms, 9)
}
