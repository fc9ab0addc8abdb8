package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/compliance"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
)

// ComplianceDocumentRepository stores document metadata for the business in ctx
type ComplianceDocumentRepository interface {
	List(ctx context.Context) ([]entity.ComplianceDocument, error)
	GetBySlot(ctx context.Context, slot string) (*entity.ComplianceDocument, error)
	// Save inserts a record without an ID and updates it otherwise
	Save(ctx context.Context, doc *entity.ComplianceDocument) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status compliance.Status) error
	MarkNotified(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
