package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// BusinessService handles onboarding, the business profile, its members and settings
type BusinessService struct {
	businessRepo   repository.BusinessRepository
	userRepo       repository.UserRepository
	websiteService *WebsiteService
}

// NewBusinessService creates a new business service
func NewBusinessService(
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	websiteService *WebsiteService,
) *BusinessService {
	return &BusinessService{
		businessRepo:   businessRepo,
		userRepo:       userRepo,
		websiteService: websiteService,
	}
}

// OnboardingStatus tells the client whether the user still has to onboard
type OnboardingStatus struct {
	Onboarded bool             `json:"onboarded"`
	Business  *entity.Business `json:"business"`
}

// GetOnboarding returns the onboarding state of a user
func (s *BusinessService) GetOnboarding(ctx context.Context, userID uuid.UUID) (*OnboardingStatus, error) {
	businesses, err := s.businessRepo.GetUserBusinesses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return &OnboardingStatus{}, nil
	}
	return &OnboardingStatus{Onboarded: true, Business: &businesses[0]}, nil
}

// BusinessProfileInput carries the editable business profile
type BusinessProfileInput struct {
	Name           string
	Type           enum.BusinessType
	RegistrationNo *string
	VATNo          *string
	Address        *string
	Phone          *string
	Email          *string
}

func (in *BusinessProfileInput) validate() error {
	fieldErrors := requiredField("name", in.Name, "Business name is required")
	if in.Type == "" {
		in.Type = enum.BusinessTypeGeneral
	}
	if !in.Type.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "business_type", Message: "Unknown business type"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Onboard creates the business of a user together with the owner membership
// and a draft website. A user can onboard only once.
func (s *BusinessService) Onboard(ctx context.Context, userID uuid.UUID, input *BusinessProfileInput) (*entity.Business, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.businessRepo.GetUserBusinesses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperror.NewConflictError("Onboarding already completed")
	}

	business := &entity.Business{
		Name:           strings.TrimSpace(input.Name),
		Type:           input.Type,
		RegistrationNo: optional(input.RegistrationNo),
		VATNo:          optional(input.VATNo),
		Address:        optional(input.Address),
		Phone:          optional(input.Phone),
		Email:          optional(input.Email),
		OwnerID:        userID,
		Settings:       entity.DefaultBusinessSettings(),
	}
	if business.Email != nil {
		business.Settings.AlertEmail = *business.Email
	}
	if business.Phone != nil {
		business.Settings.AlertPhone = *business.Phone
	}

	if err := s.businessRepo.CreateWithOwner(ctx, business); err != nil {
		return nil, err
	}

	if s.websiteService != nil {
		scoped := infraRepo.WithBusiness(ctx, business.ID)
		if _, err := s.websiteService.CreateDefault(scoped, business); err != nil {
			log.Printf("Warning: failed to create website for business %s: %v", business.ID, err)
		}
	}

	return business, nil
}

// GetBusiness returns the business in ctx
func (s *BusinessService) GetBusiness(ctx context.Context) (*entity.Business, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return business, nil
}

// UpdateBusiness replaces the profile of the business in ctx
func (s *BusinessService) UpdateBusiness(ctx context.Context, input *BusinessProfileInput) (*entity.Business, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	business, err := s.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}

	business.Name = strings.TrimSpace(input.Name)
	business.Type = input.Type
	business.RegistrationNo = optional(input.RegistrationNo)
	business.VATNo = optional(input.VATNo)
	business.Address = optional(input.Address)
	business.Phone = optional(input.Phone)
	business.Email = optional(input.Email)

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// ListMembers returns the members of the business in ctx
func (s *BusinessService) ListMembers(ctx context.Context) ([]entity.BusinessMembership, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.businessRepo.GetMembers(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PopulateUserDetails()
	}
	return members, nil
}

// AddMemberInput represents input for adding an existing user to the business
type AddMemberInput struct {
	Email string
	Role  string
}

// AddMember adds a registered user to the business in ctx
func (s *BusinessService) AddMember(ctx context.Context, input *AddMemberInput) (*entity.BusinessMembership, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	role, err := assignableRole(input.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	existing, err := s.businessRepo.GetMembership(ctx, businessID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User is already a member of this business")
	}

	membership := &entity.BusinessMembership{
		BusinessID: businessID,
		UserID:     user.ID,
		Role:       role,
		User:       *user,
	}
	if err := s.businessRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	membership.PopulateUserDetails()
	return membership, nil
}

// UpdateMemberRole changes the role of a member. The owner's role is fixed.
func (s *BusinessService) UpdateMemberRole(ctx context.Context, userID uuid.UUID, role string) error {
	membership, err := s.memberForChange(ctx, userID)
	if err != nil {
		return err
	}
	role, err = assignableRole(role)
	if err != nil {
		return err
	}
	return s.businessRepo.UpdateMemberRole(ctx, membership.BusinessID, userID, role)
}

// RemoveMember removes a member. The owner cannot be removed.
func (s *BusinessService) RemoveMember(ctx context.Context, userID uuid.UUID) error {
	membership, err := s.memberForChange(ctx, userID)
	if err != nil {
		return err
	}
	return s.businessRepo.RemoveMember(ctx, membership.BusinessID, userID)
}

func (s *BusinessService) memberForChange(ctx context.Context, userID uuid.UUID) (*entity.BusinessMembership, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	membership, err := s.businessRepo.GetMembership(ctx, businessID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	if membership.Role == entity.MemberRoleOwner {
		return nil, apperror.NewForbiddenError("The business owner cannot be changed or removed")
	}
	return membership, nil
}

func assignableRole(role string) (string, error) {
	switch role {
	case "":
		return entity.MemberRoleMember, nil
	case entity.MemberRoleAdmin, entity.MemberRoleMember:
		return role, nil
	}
	return "", apperror.NewValidationError([]apperror.FieldError{
		{Field: "role", Message: "Role must be admin or member"},
	})
}

// GetSettings returns the settings of the business in ctx
func (s *BusinessService) GetSettings(ctx context.Context) (*entity.BusinessSettings, error) {
	business, err := s.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	return &business.Settings, nil
}

// UpdateSettingsInput represents input for updating business settings. Nil
// fields are left unchanged.
type UpdateSettingsInput struct {
	Currency      *string
	Timezone      *string
	TaxRate       *decimal.Decimal
	TaxLabel      *string
	InvoicePrefix *string
	QuotePrefix   *string
	EmailAlerts   *bool
	SMSAlerts     *bool
	AlertEmail    *string
	AlertPhone    *string
}

// UpdateSettings updates the settings of the business in ctx
func (s *BusinessService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.BusinessSettings, error) {
	var fieldErrors []apperror.FieldError
	if input.TaxRate != nil && (input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax_rate", Message: "Tax rate must be between 0 and 100"})
	}
	if input.InvoicePrefix != nil && len(*input.InvoicePrefix) > 10 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "invoice_prefix", Message: "Prefix must be at most 10 characters"})
	}
	if input.QuotePrefix != nil && len(*input.QuotePrefix) > 10 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quote_prefix", Message: "Prefix must be at most 10 characters"})
	}
	if input.Currency != nil && len(strings.TrimSpace(*input.Currency)) != 3 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "currency", Message: "Currency must be a 3 letter code"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	business, err := s.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}

	settings := &business.Settings
	if input.Currency != nil {
		settings.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	if input.TaxLabel != nil {
		settings.TaxLabel = *input.TaxLabel
	}
	if input.InvoicePrefix != nil {
		settings.InvoicePrefix = *input.InvoicePrefix
	}
	if input.QuotePrefix != nil {
		settings.QuotePrefix = *input.QuotePrefix
	}
	if input.EmailAlerts != nil {
		settings.EmailAlerts = *input.EmailAlerts
	}
	if input.SMSAlerts != nil {
		settings.SMSAlerts = *input.SMSAlerts
	}
	if input.AlertEmail != nil {
		settings.AlertEmail = strings.TrimSpace(*input.AlertEmail)
	}
	if input.AlertPhone != nil {
		settings.AlertPhone = strings.TrimSpace(*input.AlertPhone)
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return settings, nil
}
