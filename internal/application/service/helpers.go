package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func businessIDFrom(ctx context.Context) (uuid.UUID, bool) {
	return infraRepo.GetBusinessID(ctx)
}

// requireBusiness returns the business in ctx or a 400 error
func requireBusiness(ctx context.Context) (uuid.UUID, error) {
	id, ok := businessIDFrom(ctx)
	if !ok {
		return uuid.Nil, apperror.NewBadRequestError("Business context required")
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional trims s and returns nil when nothing is left
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func requiredField(field, value, message string) []apperror.FieldError {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return []apperror.FieldError{{Field: field, Message: message}}
}

// currentBusiness loads the business in ctx
func currentBusiness(ctx context.Context, repo repository.BusinessRepository) (*entity.Business, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	business, err := repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return business, nil
}

// validTaxRate checks an explicit tax rate override
func validTaxRate(rate *decimal.Decimal) []apperror.FieldError {
	if rate == nil || (!rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))) {
		return nil
	}
	return []apperror.FieldError{{Field: "tax_rate", Message: "Tax rate must be between 0 and 100"}}
}
