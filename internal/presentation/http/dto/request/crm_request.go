package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
)

// CreateLeadRequest represents a lead creation request. Value accepts a
// number or a numeric string; anything else counts as 0.
type CreateLeadRequest struct {
	Name    string          `json:"name"`
	Email   *string         `json:"email" binding:"omitempty,email"`
	Phone   *string         `json:"phone"`
	Company *string         `json:"company"`
	Source  *string         `json:"source"`
	Status  enum.LeadStatus `json:"status"`
	Value   interface{}     `json:"value"`
	Notes   *string         `json:"notes"`
}

// UpdateLeadRequest represents a lead update request
type UpdateLeadRequest struct {
	Name    *string          `json:"name"`
	Email   *string          `json:"email" binding:"omitempty,email"`
	Phone   *string          `json:"phone"`
	Company *string          `json:"company"`
	Source  *string          `json:"source"`
	Status  *enum.LeadStatus `json:"status"`
	Value   interface{}      `json:"value"`
	Notes   *string          `json:"notes"`
}

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	VATNo   *string `json:"vat_no"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// TaskRequest represents a task create or update request. DueDate is
// YYYY-MM-DD; an empty string clears it on update.
type TaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Priority    *enum.TaskPriority `json:"priority"`
	DueDate     *string            `json:"due_date"`
	AssigneeID  *uuid.UUID         `json:"assignee_id"`
	LeadID      *uuid.UUID         `json:"lead_id"`
	CustomerID  *uuid.UUID         `json:"customer_id"`
}

// CompleteTaskRequest toggles task completion
type CompleteTaskRequest struct {
	Completed *bool `json:"completed"`
}
