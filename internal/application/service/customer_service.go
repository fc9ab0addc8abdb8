package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create customer input
type CustomerInput struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	Company *string
	VATNo   *string
	Address *string
	Notes   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if fieldErrors := requiredField("name", input.Name, "Customer name is required"); fieldErrors != nil {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	customer := &entity.Customer{
		BusinessID: businessID,
		UserID:     input.UserID,
		Name:       strings.TrimSpace(input.Name),
		Email:      optional(input.Email),
		Phone:      optional(input.Phone),
		Company:    optional(input.Company),
		VATNo:      optional(input.VATNo),
		Address:    optional(input.Address),
		Notes:      optional(input.Notes),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists the customers of the current business
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search)
	if errors.Is(err, pagination.ErrInvalidCursor) {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPaginatedResult(customers, params, func(c entity.Customer) pagination.Cursor {
		return pagination.Cursor{ID: c.ID.String(), CreatedAt: c.CreatedAt}
	}), nil
}

// UpdateCustomerInput represents the update customer input. Nil fields are left unchanged.
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	VATNo   *string
	Address *string
	Notes   *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	if input.Name != nil {
		if fieldErrors := requiredField("name", *input.Name, "Customer name is required"); fieldErrors != nil {
			return nil, apperror.NewValidationError(fieldErrors)
		}
	}

	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		customer.Email = optional(input.Email)
	}
	if input.Phone != nil {
		customer.Phone = optional(input.Phone)
	}
	if input.Company != nil {
		customer.Company = optional(input.Company)
	}
	if input.VATNo != nil {
		customer.VATNo = optional(input.VATNo)
	}
	if input.Address != nil {
		customer.Address = optional(input.Address)
	}
	if input.Notes != nil {
		customer.Notes = optional(input.Notes)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
