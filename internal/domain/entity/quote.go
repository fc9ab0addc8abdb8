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

// Quote represents a price quote sent to a client. The tax rate is not
// stored; it is recovered from sub_total and vat when the quote is loaded.
type Quote struct {
	ID          uuid.UUID                             `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID                             `gorm:"type:uuid;not null;index;uniqueIndex:idx_quotes_business_seq" json:"business_id"`
	UserID      uuid.UUID                             `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID  *uuid.UUID                            `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Sequence    int                                   `gorm:"not null;uniqueIndex:idx_quotes_business_seq" json:"-"`
	Reference   string                                `gorm:"size:100;not null" json:"reference"`
	Date        time.Time                             `gorm:"type:date;not null" json:"date"`
	ValidUntil  *time.Time                            `gorm:"type:date" json:"valid_until,omitempty"`
	ClientName  string                                `gorm:"size:255;not null" json:"client_name"`
	ClientEmail *string                               `gorm:"size:255" json:"client_email,omitempty"`
	Items       datatypes.JSONSlice[pricing.LineItem] `gorm:"type:jsonb" json:"items"`
	SubTotal    decimal.Decimal                       `gorm:"type:decimal(24,10);default:0" json:"sub_total"`
	VAT         decimal.Decimal                       `gorm:"type:decimal(24,10);default:0" json:"vat"`
	Total       decimal.Decimal                       `gorm:"type:decimal(24,10);default:0" json:"total"`
	TaxRate     decimal.Decimal                       `gorm:"-" json:"tax_rate"`
	Status      enum.QuoteStatus                      `gorm:"default:0;index" json:"status"`
	Notes       *string                               `gorm:"type:text" json:"notes,omitempty"`
	SaleID      *uuid.UUID                            `gorm:"type:uuid" json:"sale_id,omitempty"`
	CreatedAt   time.Time                             `json:"created_at"`
	UpdatedAt   time.Time                             `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                        `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// AfterFind restores the tax rate from the stored amounts
func (q *Quote) AfterFind(tx *gorm.DB) error {
	q.TaxRate = pricing.ImpliedTaxRate(q.SubTotal, q.VAT)
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// ApplyTotals stores the computed amounts on the quote
func (q *Quote) ApplyTotals(t pricing.Totals) {
	q.SubTotal = t.Subtotal
	q.VAT = t.TaxAmount
	q.Total = t.Total
	q.TaxRate = t.TaxRate
}

// Totals returns the stored amounts together with the implied rate
func (q *Quote) Totals() pricing.Totals {
	return pricing.Totals{
		Subtotal:  q.SubTotal,
		TaxRate:   pricing.ImpliedTaxRate(q.SubTotal, q.VAT),
		TaxAmount: q.VAT,
		Total:     q.Total,
	}
}
