package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/sangkips/bizhub-api/internal/config"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. Postgres is the production
// driver; sqlite serves local development and tests.
func Open(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	log.Printf("Successfully connected to %s database", dialector.Name())
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Users and access control
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Businesses
		&entity.Business{},
		&entity.BusinessMembership{},

		// CRM
		&entity.Customer{},
		&entity.Lead{},
		&entity.Task{},

		// Sales documents
		&entity.Quote{},
		&entity.Sale{},

		// Compliance and website
		&entity.ComplianceDocument{},
		&entity.Website{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Permissions seeded on startup
var Permissions = []string{
	entity.PermissionViewDashboard,
	entity.PermissionManageLeads,
	entity.PermissionManageCustomers,
	entity.PermissionManageSales,
	entity.PermissionManageQuotes,
	entity.PermissionManageTasks,
	entity.PermissionManageCompliance,
	entity.PermissionManageWebsite,
	entity.PermissionManageUsers,
}

// RolePermissions lists the permissions each seeded role carries
var RolePermissions = map[string][]string{
	entity.RoleSuperAdmin: Permissions,
	entity.RoleAdmin:      Permissions,
	entity.RoleStaff: {
		entity.PermissionViewDashboard,
		entity.PermissionManageLeads,
		entity.PermissionManageCustomers,
		entity.PermissionManageSales,
		entity.PermissionManageQuotes,
		entity.PermissionManageTasks,
	},
	entity.RoleUser: {
		entity.PermissionViewDashboard,
		entity.PermissionManageLeads,
		entity.PermissionManageCustomers,
		entity.PermissionManageSales,
		entity.PermissionManageQuotes,
		entity.PermissionManageTasks,
		entity.PermissionManageCompliance,
		entity.PermissionManageWebsite,
	},
}

// SeedDefaultData creates the default permissions and roles and, when
// configured, a super admin user. Seeding is idempotent: role permissions
// are reset to the lists above on every run.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	log.Println("Seeding default data...")

	byName := make(map[string]entity.Permission, len(Permissions))
	for _, name := range Permissions {
		p := entity.Permission{Name: name, GuardName: "web"}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
		byName[name] = p
	}

	for _, roleName := range []string{entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleStaff, entity.RoleUser} {
		role := entity.Role{Name: roleName, GuardName: "web"}
		if err := db.Where(entity.Role{Name: roleName}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", roleName, err)
		}

		perms := make([]entity.Permission, 0, len(RolePermissions[roleName]))
		for _, name := range RolePermissions[roleName] {
			perms = append(perms, byName[name])
		}
		if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			log.Printf("Warning: failed to set permissions for role %s: %v", roleName, err)
		}
	}

	if admin.Email != "" && admin.Password != "" {
		if err := seedSuperAdmin(db, admin); err != nil {
			log.Printf("Warning: failed to create super admin user: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

func seedSuperAdmin(db *gorm.DB, admin config.AdminConfig) error {
	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Super admin user already exists: %s", admin.Email)
		return nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	var role entity.Role
	if err := db.Where("name = ?", entity.RoleSuperAdmin).First(&role).Error; err != nil {
		return err
	}

	name := admin.Name
	if name == "" {
		name = "Super Admin"
	}
	firstName, lastName, _ := strings.Cut(name, " ")

	user := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  strings.Split(admin.Email, "@")[0],
		Email:     admin.Email,
		Password:  hashedPassword,
		Roles:     []entity.Role{role},
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("Super admin user created: %s", admin.Email)
	return nil
}
