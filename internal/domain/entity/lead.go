package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lead is a prospective customer tracked through the sales pipeline
type Lead struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Email       *string         `gorm:"size:255" json:"email,omitempty"`
	Phone       *string         `gorm:"size:50" json:"phone,omitempty"`
	Company     *string         `gorm:"size:255" json:"company,omitempty"`
	Source      *string         `gorm:"size:100" json:"source,omitempty"`
	Status      enum.LeadStatus `gorm:"default:0;index" json:"status"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"value"`
	Notes       *string         `gorm:"type:text" json:"notes,omitempty"`
	ConvertedAt *time.Time      `json:"converted_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}

// IsConverted reports whether the lead has already become a customer
func (l *Lead) IsConverted() bool {
	return l.CustomerID != nil
}
