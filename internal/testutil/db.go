// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/config"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated and seeded in-memory sqlite database private to t
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + name + "?mode=memory&cache=shared",
	}, logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, config.AdminConfig{}))
	return db
}

// CreateUser inserts a user with the given role
func CreateUser(t *testing.T, db *gorm.DB, email, roleName string) *entity.User {
	t.Helper()

	var role entity.Role
	require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)

	user := &entity.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  strings.Split(email, "@")[0] + "-" + uuid.NewString()[:4],
		Email:     email,
		Roles:     []entity.Role{role},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateBusiness inserts a business owned by owner and returns a context
// scoped to it
func CreateBusiness(t *testing.T, db *gorm.DB, owner *entity.User, name string) (*entity.Business, context.Context) {
	t.Helper()

	biz := &entity.Business{
		Name:     name,
		OwnerID:  owner.ID,
		Settings: entity.DefaultBusinessSettings(),
	}
	require.NoError(t, db.Omit(clause.Associations).Create(biz).Error)
	require.NoError(t, db.Create(&entity.BusinessMembership{
		BusinessID: biz.ID,
		UserID:     owner.ID,
		Role:       entity.MemberRoleOwner,
	}).Error)

	return biz, infraRepo.WithBusiness(context.Background(), biz.ID)
}
