package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// LeadService handles the sales pipeline
type LeadService struct {
	leadRepo repository.LeadRepository
}

// NewLeadService creates a new lead service
func NewLeadService(leadRepo repository.LeadRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo}
}

// LeadInput represents the create lead input
type LeadInput struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	Company *string
	Source  *string
	Status  enum.LeadStatus
	Value   decimal.Decimal
	Notes   *string
}

// CreateLead creates a new lead
func (s *LeadService) CreateLead(ctx context.Context, input *LeadInput) (*entity.Lead, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	fieldErrors := requiredField("name", input.Name, "Lead name is required")
	if !input.Status.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Unknown lead status"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	lead := &entity.Lead{
		BusinessID: businessID,
		UserID:     input.UserID,
		Name:       strings.TrimSpace(input.Name),
		Email:      optional(input.Email),
		Phone:      optional(input.Phone),
		Company:    optional(input.Company),
		Source:     optional(input.Source),
		Status:     input.Status,
		Value:      nonNegative(input.Value),
		Notes:      optional(input.Notes),
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// GetLead retrieves a lead by ID
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, apperror.NewNotFoundError("Lead")
	}
	return lead, nil
}

// ListLeads lists leads with page-based pagination
func (s *LeadService) ListLeads(ctx context.Context, params *repository.LeadFilterParams) (*pagination.PaginatedResult[entity.Lead], error) {
	params.Pagination.Validate()
	leads, total, err := s.leadRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(leads, pag), nil
}

// ListLeadsWithCursor lists leads using cursor-based pagination
func (s *LeadService) ListLeadsWithCursor(ctx context.Context, params *repository.LeadCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Lead], error) {
	leads, err := s.leadRepo.ListWithCursor(ctx, params)
	if errors.Is(err, pagination.ErrInvalidCursor) {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPaginatedResult(leads, params.Cursor, func(l entity.Lead) pagination.Cursor {
		return pagination.Cursor{ID: l.ID.String(), CreatedAt: l.CreatedAt}
	}), nil
}

// UpdateLeadInput represents the update lead input. Nil fields are left unchanged.
type UpdateLeadInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Source  *string
	Status  *enum.LeadStatus
	Value   *decimal.Decimal
	Notes   *string
}

// UpdateLead updates a lead
func (s *LeadService) UpdateLead(ctx context.Context, input *UpdateLeadInput) (*entity.Lead, error) {
	var fieldErrors []apperror.FieldError
	if input.Name != nil {
		fieldErrors = requiredField("name", *input.Name, "Lead name is required")
	}
	if input.Status != nil && !input.Status.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Unknown lead status"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	lead, err := s.GetLead(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		lead.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		lead.Email = optional(input.Email)
	}
	if input.Phone != nil {
		lead.Phone = optional(input.Phone)
	}
	if input.Company != nil {
		lead.Company = optional(input.Company)
	}
	if input.Source != nil {
		lead.Source = optional(input.Source)
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.Value != nil {
		lead.Value = nonNegative(*input.Value)
	}
	if input.Notes != nil {
		lead.Notes = optional(input.Notes)
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// DeleteLead deletes a lead
func (s *LeadService) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetLead(ctx, id); err != nil {
		return err
	}
	return s.leadRepo.Delete(ctx, id)
}

// ConvertLead turns a lead into a customer and marks it won. A lead converts once.
func (s *LeadService) ConvertLead(ctx context.Context, userID, id uuid.UUID) (*entity.Lead, error) {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.IsConverted() {
		return nil, apperror.NewConflictError("Lead has already been converted")
	}

	customer := entity.NewCustomerFromLead(lead, userID)

	now := time.Now()
	lead.Status = enum.LeadStatusWon
	lead.ConvertedAt = &now
	if err := s.leadRepo.Convert(ctx, lead, customer); err != nil {
		return nil, err
	}
	lead.Customer = customer
	return lead, nil
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
