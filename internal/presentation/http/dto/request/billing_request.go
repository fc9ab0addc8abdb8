package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one item of a sale or quote. Quantity and unit price
// accept numbers or numeric strings; invalid or negative values become 0.
type LineItemRequest struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    interface{} `json:"quantity"`
	UnitPrice   interface{} `json:"unit_price"`
}

// LineItems converts request items into priced line items
func LineItems(items []LineItemRequest) []pricing.LineItem {
	if items == nil {
		return nil
	}
	out := make([]pricing.LineItem, len(items))
	for i, item := range items {
		out[i] = pricing.LineItem{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    pricing.Coerce(item.Quantity),
			UnitPrice:   pricing.Coerce(item.UnitPrice),
		}
	}
	return out
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID   *uuid.UUID        `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	SaleDate     *string           `json:"sale_date"`
	Status       enum.SaleStatus   `json:"status"`
	Items        []LineItemRequest `json:"items"`
	TaxRate      *decimal.Decimal  `json:"tax_rate"`
	PaymentType  string            `json:"payment_type"`
	Notes        *string           `json:"notes"`
}

// UpdateSaleRequest represents a sale update request
type UpdateSaleRequest struct {
	CustomerID   *uuid.UUID        `json:"customer_id"`
	CustomerName *string           `json:"customer_name"`
	SaleDate     *string           `json:"sale_date"`
	Items        []LineItemRequest `json:"items"`
	TaxRate      *decimal.Decimal  `json:"tax_rate"`
	PaymentType  *string           `json:"payment_type"`
	Notes        *string           `json:"notes"`
}

// SaleStatusRequest changes the status of a sale
type SaleStatusRequest struct {
	Status *enum.SaleStatus `json:"status" binding:"required"`
}

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	CustomerID  *uuid.UUID        `json:"customer_id"`
	ClientName  string            `json:"client_name"`
	ClientEmail *string           `json:"client_email" binding:"omitempty,email"`
	Date        *string           `json:"date"`
	ValidUntil  *string           `json:"valid_until"`
	Status      enum.QuoteStatus  `json:"status"`
	Items       []LineItemRequest `json:"items"`
	TaxRate     *decimal.Decimal  `json:"tax_rate"`
	Notes       *string           `json:"notes"`
}

// UpdateQuoteRequest represents a quote update request
type UpdateQuoteRequest struct {
	CustomerID  *uuid.UUID        `json:"customer_id"`
	ClientName  *string           `json:"client_name"`
	ClientEmail *string           `json:"client_email" binding:"omitempty,email"`
	Date        *string           `json:"date"`
	ValidUntil  *string           `json:"valid_until"`
	Items       []LineItemRequest `json:"items"`
	TaxRate     *decimal.Decimal  `json:"tax_rate"`
	Notes       *string           `json:"notes"`
}

// QuoteStatusRequest changes the status of a quote
type QuoteStatusRequest struct {
	Status *enum.QuoteStatus `json:"status" binding:"required"`
}
