package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SaleService handles sale-related operations
type SaleService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	businessRepo repository.BusinessRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	businessRepo repository.BusinessRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		businessRepo: businessRepo,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID       uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	QuoteID      *uuid.UUID
	SaleDate     time.Time
	Status       enum.SaleStatus
	Items        []pricing.LineItem
	// TaxRate overrides the business rate when set
	TaxRate     *decimal.Decimal
	PaymentType string
	Notes       *string
}

// CreateSale records a sale and computes its totals
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	fieldErrors := validTaxRate(input.TaxRate)
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	if !input.Status.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Unknown sale status"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	business, err := currentBusiness(ctx, s.businessRepo)
	if err != nil {
		return nil, err
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
	}

	rate := business.Settings.EffectiveTaxRate()
	if input.TaxRate != nil {
		rate = *input.TaxRate
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	sale := &entity.Sale{
		BusinessID:   business.ID,
		UserID:       input.UserID,
		CustomerID:   input.CustomerID,
		QuoteID:      input.QuoteID,
		SaleDate:     saleDate,
		Status:       input.Status,
		InvoiceNo:    utils.GenerateInvoiceNo(business.Settings.InvoicePrefix),
		CustomerName: customerName,
		Items:        pricing.Normalize(input.Items),
		PaymentType:  input.PaymentType,
		Notes:        optional(input.Notes),
	}
	sale.ApplyTotals(pricing.Compute(sale.Items, rate))
	if sale.Status == enum.SaleStatusPaid {
		now := time.Now()
		sale.PaidAt = &now
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filters
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	params.Pagination.Validate()
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateSaleInput represents the update sale input. Nil fields are left unchanged.
type UpdateSaleInput struct {
	ID           uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName *string
	SaleDate     *time.Time
	Items        []pricing.LineItem
	TaxRate      *decimal.Decimal
	PaymentType  *string
	Notes        *string
}

// UpdateSale edits a sale. Totals are recomputed with the new rate, or the
// rate implied by the stored amounts.
func (s *SaleService) UpdateSale(ctx context.Context, input *UpdateSaleInput) (*entity.Sale, error) {
	fieldErrors := validTaxRate(input.TaxRate)
	if input.Items != nil && len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	sale, err := s.GetSale(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		sale.CustomerID = &customer.ID
		sale.CustomerName = customer.Name
		sale.Customer = nil
	} else if input.CustomerName != nil {
		sale.CustomerName = strings.TrimSpace(*input.CustomerName)
	}
	if input.SaleDate != nil {
		sale.SaleDate = *input.SaleDate
	}
	if input.PaymentType != nil {
		sale.PaymentType = *input.PaymentType
	}
	if input.Notes != nil {
		sale.Notes = optional(input.Notes)
	}

	rate := sale.TaxRate()
	if input.TaxRate != nil {
		rate = *input.TaxRate
	}
	if input.Items != nil {
		sale.Items = pricing.Normalize(input.Items)
	}
	sale.ApplyTotals(pricing.Compute(sale.Items, rate))

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// UpdateSaleStatus changes the payment state of a sale
func (s *SaleService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) (*entity.Sale, error) {
	if !status.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "Unknown sale status"}})
	}
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if status == enum.SaleStatusPaid {
		paidAt = sale.PaidAt
		if paidAt == nil {
			now := time.Now()
			paidAt = &now
		}
	}
	if err := s.saleRepo.UpdateStatus(ctx, id, status, paidAt); err != nil {
		return nil, err
	}
	sale.Status = status
	sale.PaidAt = paidAt
	return sale, nil
}

// DeleteSale deletes a sale
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSale(ctx, id); err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, id)
}
