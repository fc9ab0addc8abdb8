package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/compliance"
	"gorm.io/gorm"
)

// ComplianceDocument holds the metadata of one document slot. Whether a file
// exists comes from the storage listing; Status is only a cache of the last
// classification.
type ComplianceDocument struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_compliance_business_slot" json:"business_id"`
	Slot           string            `gorm:"size:100;not null;uniqueIndex:idx_compliance_business_slot" json:"slot"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Category       string            `gorm:"size:50" json:"category"`
	Custom         bool              `gorm:"default:false" json:"custom"`
	ExpiryDate     *time.Time        `gorm:"type:date" json:"expiry_date,omitempty"`
	FileName       *string           `gorm:"size:255" json:"file_name,omitempty"`
	Status         compliance.Status `gorm:"size:20;default:'missing'" json:"status"`
	UploadedAt     *time.Time        `json:"uploaded_at,omitempty"`
	LastNotifiedAt *time.Time        `json:"-"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Computed fields for JSON response
	HasFile  bool `gorm:"-" json:"has_file"`
	Progress int  `gorm:"-" json:"progress"`
}

// BeforeCreate generates a UUID before creating a new document record
func (d *ComplianceDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ComplianceDocument model
func (ComplianceDocument) TableName() string {
	return "compliance_documents"
}

// Evaluate reclassifies the document and reports whether the cached status
// changed.
func (d *ComplianceDocument) Evaluate(hasFile bool, now time.Time) bool {
	d.HasFile = hasFile
	status := compliance.Classify(hasFile, d.ExpiryDate, now)
	d.Progress = status.Progress()
	changed := d.Status != status
	d.Status = status
	return changed
}

// MarkUploaded records a fresh upload. The document reads as valid until the
// next evaluation pass applies the expiry rule.
func (d *ComplianceDocument) MarkUploaded(fileName string, at time.Time) {
	d.FileName = &fileName
	d.UploadedAt = &at
	d.HasFile = true
	d.Status = compliance.StatusValid
	d.Progress = compliance.StatusValid.Progress()
}

// DueForAlert reports whether an alert may be sent given the cooldown.
func (d *ComplianceDocument) DueForAlert(now time.Time, cooldown time.Duration) bool {
	if !d.Status.NeedsAttention() {
		return false
	}
	return d.LastNotifiedAt == nil || now.Sub(*d.LastNotifiedAt) >= cooldown
}

// NewComplianceDocumentFromTemplate builds an unsaved record for a catalog slot
func NewComplianceDocumentFromTemplate(businessID uuid.UUID, t compliance.Template) ComplianceDocument {
	return ComplianceDocument{
		BusinessID:  businessID,
		Slot:        t.Slot,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Status:      compliance.StatusMissing,
	}
}
