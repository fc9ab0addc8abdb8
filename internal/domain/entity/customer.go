package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a buyer a business sells to or quotes for
type Customer struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID      `gorm:"type:uuid;not null;index" json:"business_id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Phone      *string        `gorm:"size:50" json:"phone,omitempty"`
	Company    *string        `gorm:"size:255" json:"company,omitempty"`
	VATNo      *string        `gorm:"size:100;column:vat_no" json:"vat_no,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	Notes      *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Sales    []Sale   `gorm:"foreignKey:CustomerID" json:"-"`
	Quotes   []Quote  `gorm:"foreignKey:CustomerID" json:"-"`
}

// NewCustomerFromLead copies the contact details of lead into a new customer
// owned by userID in the lead's business.
func NewCustomerFromLead(lead *Lead, userID uuid.UUID) *Customer {
	return &Customer{
		BusinessID: lead.BusinessID,
		UserID:     userID,
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Company:    lead.Company,
		Notes:      lead.Notes,
	}
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}
