package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/application/export"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"github.com/shopspring/decimal"
)

const referenceAttempts = 3

// QuoteService handles quote-related operations
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	customerRepo repository.CustomerRepository
	businessRepo repository.BusinessRepository
	saleService  *SaleService
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	customerRepo repository.CustomerRepository,
	businessRepo repository.BusinessRepository,
	saleService *SaleService,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		businessRepo: businessRepo,
		saleService:  saleService,
	}
}

// CreateQuoteInput represents the create quote input
type CreateQuoteInput struct {
	UserID      uuid.UUID
	CustomerID  *uuid.UUID
	ClientName  string
	ClientEmail *string
	Date        time.Time
	ValidUntil  *time.Time
	Status      enum.QuoteStatus
	Items       []pricing.LineItem
	// TaxRate overrides the business rate when set
	TaxRate *decimal.Decimal
	Notes   *string
}

// CreateQuote creates a quote with the next reference of the business
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	fieldErrors := validTaxRate(input.TaxRate)
	if input.CustomerID == nil {
		fieldErrors = append(fieldErrors, requiredField("client_name", input.ClientName, "Client name is required")...)
	}
	if !input.Status.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Unknown quote status"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	business, err := currentBusiness(ctx, s.businessRepo)
	if err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		BusinessID:  business.ID,
		UserID:      input.UserID,
		CustomerID:  input.CustomerID,
		Date:        input.Date,
		ValidUntil:  input.ValidUntil,
		ClientName:  strings.TrimSpace(input.ClientName),
		ClientEmail: optional(input.ClientEmail),
		Items:       pricing.Normalize(input.Items),
		Status:      input.Status,
		Notes:       optional(input.Notes),
	}
	if quote.Date.IsZero() {
		quote.Date = time.Now()
	}
	if err := s.applyCustomer(ctx, quote, input.CustomerID); err != nil {
		return nil, err
	}

	rate := business.Settings.EffectiveTaxRate()
	if input.TaxRate != nil {
		rate = *input.TaxRate
	}
	quote.ApplyTotals(pricing.Compute(quote.Items, rate))

	for attempt := 1; ; attempt++ {
		seq, err := s.quoteRepo.NextSequence(ctx)
		if err != nil {
			return nil, err
		}
		quote.ID = uuid.Nil
		quote.Sequence = seq
		quote.Reference = utils.FormatQuoteReference(business.Settings.QuotePrefix, seq)

		err = s.quoteRepo.Create(ctx, quote)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, repository.ErrDuplicateReference) || attempt == referenceAttempts {
			return nil, err
		}
	}
}

func (s *QuoteService) applyCustomer(ctx context.Context, quote *entity.Quote, customerID *uuid.UUID) error {
	if customerID == nil {
		return nil
	}
	customer, err := s.customerRepo.GetByID(ctx, *customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	quote.CustomerID = &customer.ID
	quote.Customer = nil
	if quote.ClientName == "" {
		quote.ClientName = customer.Name
	}
	if quote.ClientEmail == nil {
		quote.ClientEmail = customer.Email
	}
	return nil
}

// GetQuote retrieves a quote by ID
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes lists quotes with filters
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) (*pagination.PaginatedResult[entity.Quote], error) {
	params.Pagination.Validate()
	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// UpdateQuoteInput represents the update quote input. Nil fields are left unchanged.
type UpdateQuoteInput struct {
	ID          uuid.UUID
	CustomerID  *uuid.UUID
	ClientName  *string
	ClientEmail *string
	Date        *time.Time
	ValidUntil  *time.Time
	Items       []pricing.LineItem
	TaxRate     *decimal.Decimal
	Notes       *string
}

// UpdateQuote edits a quote. Without a new rate the totals are recomputed
// with the rate implied by the stored amounts.
func (s *QuoteService) UpdateQuote(ctx context.Context, input *UpdateQuoteInput) (*entity.Quote, error) {
	fieldErrors := validTaxRate(input.TaxRate)
	if input.ClientName != nil {
		fieldErrors = append(fieldErrors, requiredField("client_name", *input.ClientName, "Client name is required")...)
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	quote, err := s.GetQuote(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if quote.SaleID != nil {
		return nil, apperror.NewConflictError("Quote has already been converted to a sale")
	}

	if input.ClientName != nil {
		quote.ClientName = strings.TrimSpace(*input.ClientName)
	}
	if input.ClientEmail != nil {
		quote.ClientEmail = optional(input.ClientEmail)
	}
	if input.CustomerID != nil {
		if err := s.applyCustomer(ctx, quote, input.CustomerID); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		quote.Date = *input.Date
	}
	if input.ValidUntil != nil {
		quote.ValidUntil = input.ValidUntil
	}
	if input.Notes != nil {
		quote.Notes = optional(input.Notes)
	}

	rate := quote.TaxRate
	if input.TaxRate != nil {
		rate = *input.TaxRate
	}
	if input.Items != nil {
		quote.Items = pricing.Normalize(input.Items)
	}
	quote.ApplyTotals(pricing.Compute(quote.Items, rate))

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// UpdateQuoteStatus changes the status of a quote
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	if !status.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "Unknown quote status"}})
	}
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	quote.Status = status
	return quote, nil
}

// DeleteQuote deletes a quote
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetQuote(ctx, id); err != nil {
		return err
	}
	return s.quoteRepo.Delete(ctx, id)
}

// ExportedFile is a rendered quote ready to download
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportQuote renders a quote as pdf, xlsx or txt
func (s *QuoteService) ExportQuote(ctx context.Context, id uuid.UUID, format string) (*ExportedFile, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(quote.Items) == 0 {
		return nil, apperror.NewUnprocessableError("Quote has no items to export")
	}

	business, err := currentBusiness(ctx, s.businessRepo)
	if err != nil {
		return nil, err
	}

	client := export.Party{Name: quote.ClientName, Email: deref(quote.ClientEmail)}
	if quote.Customer != nil {
		client.Address = deref(quote.Customer.Address)
		client.VATNo = deref(quote.Customer.VATNo)
	}

	layout, err := export.Build(export.Input{
		Business: export.Party{
			Name:    business.Name,
			Address: deref(business.Address),
			Phone:   deref(business.Phone),
			Email:   deref(business.Email),
			VATNo:   deref(business.VATNo),
		},
		Client:     client,
		Reference:  quote.Reference,
		Date:       quote.Date,
		ValidUntil: quote.ValidUntil,
		Items:      quote.Items,
		Notes:      deref(quote.Notes),
		TaxRate:    quote.TaxRate,
		TaxLabel:   business.Settings.TaxLabel,
		Currency:   business.Settings.Currency,
	})
	if errors.Is(err, export.ErrNoItems) {
		return nil, apperror.NewUnprocessableError("Quote has no items to export")
	}
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(layout)
	if err != nil {
		return nil, err
	}

	return &ExportedFile{
		Filename:    export.Filename(quote.Date, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// ConvertToSale creates a pending sale with the quote's items and tax rate
// and marks the quote accepted
func (s *QuoteService) ConvertToSale(ctx context.Context, userID, id uuid.UUID) (*entity.Sale, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.SaleID != nil {
		return nil, apperror.NewConflictError("Quote has already been converted to a sale")
	}
	if quote.Status == enum.QuoteStatusDeclined {
		return nil, apperror.NewConflictError("A declined quote cannot be converted")
	}

	rate := quote.TaxRate
	sale, err := s.saleService.CreateSale(ctx, &CreateSaleInput{
		UserID:       userID,
		CustomerID:   quote.CustomerID,
		CustomerName: quote.ClientName,
		QuoteID:      &quote.ID,
		Status:       enum.SaleStatusPending,
		Items:        quote.Items,
		TaxRate:      &rate,
		Notes:        quote.Notes,
	})
	if err != nil {
		return nil, err
	}

	quote.Status = enum.QuoteStatusAccepted
	quote.SaleID = &sale.ID
	quote.Customer = nil
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return sale, nil
}
