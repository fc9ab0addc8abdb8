package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/compliance"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type complianceDocumentRepository struct {
	db *gorm.DB
}

// NewComplianceDocumentRepository creates a new compliance document repository
func NewComplianceDocumentRepository(db *gorm.DB) domainRepo.ComplianceDocumentRepository {
	return &complianceDocumentRepository{db: db}
}

func (r *complianceDocumentRepository) List(ctx context.Context) ([]entity.ComplianceDocument, error) {
	var docs []entity.ComplianceDocument
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Order("created_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *complianceDocumentRepository) GetBySlot(ctx context.Context, slot string) (*entity.ComplianceDocument, error) {
	var doc entity.ComplianceDocument
	err := r.db.WithContext(ctx).Scopes(BusinessScope(ctx)).First(&doc, "slot = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *complianceDocumentRepository) Save(ctx context.Context, doc *entity.ComplianceDocument) error {
	if doc.ID == uuid.Nil {
		return r.db.WithContext(ctx).Create(doc).Error
	}
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *complianceDocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status compliance.Status) error {
	return r.db.WithContext(ctx).Model(&entity.ComplianceDocument{}).
		Scopes(BusinessScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *complianceDocumentRepository) MarkNotified(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.ComplianceDocument{}).
		Scopes(BusinessScope(ctx)).
		Where("id IN ?", ids).
		Update("last_notified_at", at).Error
}
