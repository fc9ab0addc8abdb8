package request

import (
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// BusinessProfileRequest is used for onboarding and business profile updates
type BusinessProfileRequest struct {
	Name           string            `json:"name"`
	Type           enum.BusinessType `json:"business_type"`
	RegistrationNo *string           `json:"registration_no"`
	VATNo          *string           `json:"vat_no"`
	Address        *string           `json:"address"`
	Phone          *string           `json:"phone"`
	Email          *string           `json:"email" binding:"omitempty,email"`
}

// AddMemberRequest adds an existing user to the business
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// UpdateMemberRoleRequest changes a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateSettingsRequest updates business settings; omitted fields are kept
type UpdateSettingsRequest struct {
	Currency      *string          `json:"currency"`
	Timezone      *string          `json:"timezone"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	TaxLabel      *string          `json:"tax_label"`
	InvoicePrefix *string          `json:"invoice_prefix"`
	QuotePrefix   *string          `json:"quote_prefix"`
	EmailAlerts   *bool            `json:"email_alerts"`
	SMSAlerts     *bool            `json:"sms_alerts"`
	AlertEmail    *string          `json:"alert_email" binding:"omitempty,email"`
	AlertPhone    *string          `json:"alert_phone"`
}
