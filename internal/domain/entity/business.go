package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business is the profile created during onboarding. Every lead, sale, quote,
// task, compliance document and website belongs to exactly one business.
type Business struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Type           enum.BusinessType `gorm:"size:50;not null;default:'general'" json:"business_type"`
	RegistrationNo *string           `gorm:"size:100" json:"registration_no,omitempty"`
	VATNo          *string           `gorm:"size:100;column:vat_no" json:"vat_no,omitempty"`
	Address        *string           `gorm:"type:text" json:"address,omitempty"`
	Phone          *string           `gorm:"size:50" json:"phone,omitempty"`
	Email          *string           `gorm:"size:255" json:"email,omitempty"`
	OwnerID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings       BusinessSettings  `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Owner   User                 `gorm:"foreignKey:OwnerID" json:"-"`
	Members []BusinessMembership `gorm:"foreignKey:BusinessID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}

// Membership roles
const (
	MemberRoleOwner  = "owner"
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// BusinessMembership represents a user's membership in a business
type BusinessMembership struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primaryKey" json:"business_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role       string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (bm *BusinessMembership) PopulateUserDetails() {
	if bm.User.ID != uuid.Nil {
		bm.MemberUser = &MemberUser{
			ID:        bm.User.ID,
			FirstName: bm.User.FirstName,
			LastName:  bm.User.LastName,
			Email:     bm.User.Email,
		}
	}
}

// CanManage reports whether the member may administer the business
func (bm *BusinessMembership) CanManage() bool {
	return bm.Role == MemberRoleOwner || bm.Role == MemberRoleAdmin
}

// TableName returns the table name for the BusinessMembership model
func (BusinessMembership) TableName() string {
	return "business_memberships"
}

// BusinessSettings holds the per-business configuration
type BusinessSettings struct {
	// Localization
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	// Documents
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxLabel      string          `json:"tax_label,omitempty"`
	InvoicePrefix string          `json:"invoice_prefix,omitempty"`
	QuotePrefix   string          `json:"quote_prefix,omitempty"`

	// Compliance alerts
	EmailAlerts bool   `json:"email_alerts"`
	SMSAlerts   bool   `json:"sms_alerts"`
	AlertEmail  string `json:"alert_email,omitempty"`
	AlertPhone  string `json:"alert_phone,omitempty"`
}

// Scan implements the sql.Scanner interface for BusinessSettings
func (bs *BusinessSettings) Scan(value interface{}) error {
	if value == nil {
		*bs = BusinessSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan BusinessSettings: unsupported type")
	}

	return json.Unmarshal(bytes, bs)
}

// Value implements the driver.Valuer interface for BusinessSettings
func (bs BusinessSettings) Value() (driver.Value, error) {
	return json.Marshal(bs)
}

// EffectiveTaxRate returns the configured rate or the default VAT rate
func (bs BusinessSettings) EffectiveTaxRate() decimal.Decimal {
	if bs.TaxRate.IsNegative() || (bs.TaxRate.IsZero() && bs.TaxLabel == "") {
		return pricing.DefaultTaxRate
	}
	return bs.TaxRate
}

// DefaultBusinessSettings returns default settings for new businesses
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		Currency:      "ZAR",
		Timezone:      "Africa/Johannesburg",
		TaxRate:       pricing.DefaultTaxRate,
		TaxLabel:      "VAT",
		InvoicePrefix: "INV-",
		QuotePrefix:   "QT-",
		EmailAlerts:   true,
		SMSAlerts:     false,
	}
}
