package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Website is the public one-page site of a business
type Website struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"business_id"`
	TemplateID  string            `gorm:"size:50;not null" json:"template_id"`
	Slug        string            `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Title       string            `gorm:"size:255" json:"title"`
	Content     datatypes.JSONMap `gorm:"type:jsonb" json:"content"`
	Published   bool              `gorm:"default:false" json:"published"`
	PublishedAt *time.Time        `json:"published_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new website
func (w *Website) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Website model
func (Website) TableName() string {
	return "websites"
}
