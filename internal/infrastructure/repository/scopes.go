package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// BusinessIDKey is the context key for the active business ID
	BusinessIDKey ctxKey = "business_id"
)

// BusinessScope returns a GORM scope that filters by the business in ctx.
// It must be applied to every query on business-owned tables.
func BusinessScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		businessID, ok := ctx.Value(BusinessIDKey).(uuid.UUID)
		if !ok || businessID == uuid.Nil {
			// Fail-safe: no business in context means no rows
			return db.Where("1 = 0")
		}
		return db.Where("business_id = ?", businessID)
	}
}

// SearchScope matches term case-insensitively against any of columns.
// LOWER/LIKE is used instead of ILIKE so the query also runs on SQLite.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// WithBusiness adds the business ID to context
func WithBusiness(ctx context.Context, businessID uuid.UUID) context.Context {
	return context.WithValue(ctx, BusinessIDKey, businessID)
}

// GetBusinessID extracts the business ID from context
func GetBusinessID(ctx context.Context) (uuid.UUID, bool) {
	businessID, ok := ctx.Value(BusinessIDKey).(uuid.UUID)
	return businessID, ok && businessID != uuid.Nil
}
