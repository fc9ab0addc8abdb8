package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sale represents a recorded sale with its line items
type Sale struct {
	ID           uuid.UUID                             `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID   uuid.UUID                             `gorm:"type:uuid;not null;index" json:"business_id"`
	UserID       uuid.UUID                             `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID                            `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	QuoteID      *uuid.UUID                            `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	SaleDate     time.Time                             `gorm:"type:date;not null" json:"sale_date"`
	Status       enum.SaleStatus                       `gorm:"default:0;index" json:"status"`
	InvoiceNo    string                                `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	CustomerName string                                `gorm:"size:255" json:"customer_name"`
	Items        datatypes.JSONSlice[pricing.LineItem] `gorm:"type:jsonb" json:"items"`
	SubTotal     decimal.Decimal                       `gorm:"type:decimal(24,10);default:0" json:"sub_total"`
	VAT          decimal.Decimal                       `gorm:"type:decimal(24,10);default:0" json:"vat"`
	Total        decimal.Decimal                       `gorm:"type:decimal(24,10);default:0" json:"total"`
	PaymentType  string                                `gorm:"size:50" json:"payment_type"`
	Notes        *string                               `gorm:"type:text" json:"notes,omitempty"`
	PaidAt       *time.Time                            `json:"paid_at,omitempty"`
	CreatedAt    time.Time                             `json:"created_at"`
	UpdatedAt    time.Time                             `json:"updated_at"`
	DeletedAt    gorm.DeletedAt                        `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ApplyTotals stores the computed amounts on the sale
func (s *Sale) ApplyTotals(t pricing.Totals) {
	s.SubTotal = t.Subtotal
	s.VAT = t.TaxAmount
	s.Total = t.Total
}

// TaxRate recovers the rate the stored VAT was computed with
func (s *Sale) TaxRate() decimal.Decimal {
	return pricing.ImpliedTaxRate(s.SubTotal, s.VAT)
}
