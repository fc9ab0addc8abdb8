package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Task is a to-do item, optionally linked to a lead or a customer
type Task struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"business_id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	AssigneeID  *uuid.UUID        `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	LeadID      *uuid.UUID        `gorm:"type:uuid;index" json:"lead_id,omitempty"`
	CustomerID  *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Priority    enum.TaskPriority `gorm:"default:1" json:"priority"`
	DueDate     *time.Time        `gorm:"type:date;index" json:"due_date,omitempty"`
	Completed   bool              `gorm:"default:false;index" json:"completed"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Lead     *Lead     `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new task
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether an open task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := t.DueDate.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Before(today)
}
