package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/compliance"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/infrastructure/storage"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/utils"
)

// ComplianceService classifies a business's compliance documents and stores
// their files. The storage listing decides whether a file exists; the
// database only keeps expiry dates and a cached status.
type ComplianceService struct {
	docRepo      repository.ComplianceDocumentRepository
	businessRepo repository.BusinessRepository
	store        storage.FileStore
	files        *FileService
	now          func() time.Time
}

// NewComplianceService creates a new compliance service
func NewComplianceService(
	docRepo repository.ComplianceDocumentRepository,
	businessRepo repository.BusinessRepository,
	store storage.FileStore,
	files *FileService,
) *ComplianceService {
	return &ComplianceService{
		docRepo:      docRepo,
		businessRepo: businessRepo,
		store:        store,
		files:        files,
		now:          time.Now,
	}
}

// documentPrefix is the storage prefix of all compliance files of a business
func documentPrefix(businessID uuid.UUID) string {
	return businessID.String() + "/compliance/"
}

func slotPrefix(businessID uuid.UUID, slot string) string {
	return documentPrefix(businessID) + slot + "/"
}

// Catalog returns the templates required for a business type
func (s *ComplianceService) Catalog(bt enum.BusinessType) ([]compliance.Template, error) {
	if !bt.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "business_type", Message: "Unknown business type"},
		})
	}
	return compliance.RequiredFor(bt), nil
}

// ListDocuments returns the catalog slots of the business followed by its
// custom documents, each classified against the storage listing. Cached
// statuses that drifted are written back.
func (s *ComplianceService) ListDocuments(ctx context.Context) ([]entity.ComplianceDocument, error) {
	business, err := currentBusiness(ctx, s.businessRepo)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, business)
}

// Summary aggregates the current document statuses
func (s *ComplianceService) Summary(ctx context.Context) (*compliance.Summary, error) {
	docs, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	summary := summarize(docs)
	return &summary, nil
}

func summarize(docs []entity.ComplianceDocument) compliance.Summary {
	statuses := make([]compliance.Status, len(docs))
	for i := range docs {
		statuses[i] = docs[i].Status
	}
	return compliance.Summarize(statuses)
}

func (s *ComplianceService) evaluate(ctx context.Context, business *entity.Business) ([]entity.ComplianceDocument, error) {
	stored, err := s.docRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	bySlot := make(map[string]entity.ComplianceDocument, len(stored))
	for _, d := range stored {
		bySlot[d.Slot] = d
	}

	docs := make([]entity.ComplianceDocument, 0, len(stored))
	for _, t := range compliance.RequiredFor(business.Type) {
		if d, ok := bySlot[t.Slot]; ok {
			docs = append(docs, d)
			delete(bySlot, t.Slot)
			continue
		}
		docs = append(docs, entity.NewComplianceDocumentFromTemplate(business.ID, t))
	}
	for _, d := range stored {
		if _, ok := bySlot[d.Slot]; ok {
			docs = append(docs, d)
		}
	}

	files := s.filesBySlot(ctx, business.ID)
	now := s.now()
	for i := range docs {
		doc := &docs[i]
		name, hasFile := files[doc.Slot]
		if hasFile && doc.FileName == nil {
			doc.FileName = &name
		}
		if doc.Evaluate(hasFile, now) && doc.ID != uuid.Nil {
			if err := s.docRepo.UpdateStatus(ctx, doc.ID, doc.Status); err != nil {
				log.Printf("Warning: failed to cache status of %s for business %s: %v", doc.Slot, business.ID, err)
			}
		}
	}
	return docs, nil
}

// filesBySlot maps each slot that has a stored file to the newest file name.
// A listing failure is logged and reads as no files at all.
func (s *ComplianceService) filesBySlot(ctx context.Context, businessID uuid.UUID) map[string]string {
	prefix := documentPrefix(businessID)
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		log.Printf("Warning: failed to list compliance files for business %s: %v", businessID, err)
		return map[string]string{}
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Modified.Before(objects[j].Modified) })
	files := make(map[string]string)
	for _, obj := range objects {
		rest := strings.TrimPrefix(obj.Key, prefix)
		slot, name, ok := strings.Cut(rest, "/")
		if !ok || slot == "" || name == "" {
			continue
		}
		files[slot] = path.Base(name)
	}
	return files
}

// resolve returns the stored record for slot or a fresh one from the catalog
func (s *ComplianceService) resolve(ctx context.Context, business *entity.Business, slot string) (*entity.ComplianceDocument, error) {
	doc, err := s.docRepo.GetBySlot(ctx, slot)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	t, ok := compliance.Lookup(business.Type, slot)
	if !ok {
		return nil, apperror.NewNotFoundError("Document")
	}
	fresh := entity.NewComplianceDocumentFromTemplate(business.ID, t)
	return &fresh, nil
}

// UploadInput carries an uploaded document file
type UploadInput struct {
	Slot       string
	FileName   string
	File       io.Reader
	ExpiryDate *time.Time
}

// Upload stores the file for a slot, replacing earlier files, and returns the
// document as valid
func (s *ComplianceService) Upload(ctx context.Context, input *UploadInput) (*entity.ComplianceDocument, error) {
	business, err := currentBusiness(ctx, s.businessRepo)
	if err != nil {
		return nil, err
	}
	name := cleanFileName(input.FileName)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "file", Message: "A file is required"}})
	}

	doc, err := s.resolve(ctx, business, input.Slot)
	if err != nil {
		return nil, err
	}

	prefix := slotPrefix(business.ID, doc.Slot)
	previous, err := s.store.List(ctx, prefix)
	if err != nil {
		log.Printf("Warning: failed to list previous files of %s: %v", prefix, err)
	}

	key := prefix + name
	if _, err := s.store.Put(ctx, key, input.File); err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	for _, obj := range previous {
		if obj.Key == key {
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil {
			log.Printf("Warning: failed to delete replaced file %s: %v", obj.Key, err)
		}
	}

	if input.ExpiryDate != nil {
		doc.ExpiryDate = dateOnly(input.ExpiryDate)
	}
	doc.MarkUploaded(name, s.now())
	doc.LastNotifiedAt = nil
	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetExpiry sets or clears the expiry date of a slot and reclassifies it
func (s *ComplianceService) SetExpiry(ctx context.Context, slot string, expiry *time.Time) (*entity.ComplianceDocument, error) {
	business, err := currentBusiness(ctx, s.businessRepo)
	if err != nil {
		return nil, err
	}
	doc, err := s.resolve(ctx, business, slot)
	if err != nil {
		return nil, err
	}

	doc.ExpiryDate = dateOnly(expiry)
	_, hasFile := s.filesBySlot(ctx, business.ID)[doc.Slot]
	doc.Evaluate(hasFile, s.now())

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CustomDocumentInput represents a document the business tracks beyond the catalog
type CustomDocumentInput struct {
	Name        string
	Description string
	ExpiryDate  *time.Time
}

// CreateCustomDocument adds a custom document slot
func (s *ComplianceService) CreateCustomDocument(ctx context.Context, input *CustomDocumentInput) (*entity.ComplianceDocument, error) {
	if fieldErrors := requiredField("name", input.Name, "Document name is required"); fieldErrors != nil {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	base := utils.Slugify(name)
	if base == "" {
		base = "document"
	}
	if len(base) > 60 {
		base = strings.TrimRight(base[:60], "-")
	}

	doc := &entity.ComplianceDocument{
		BusinessID:  businessID,
		Slot:        "custom-" + base + "-" + utils.RandomSuffix(6),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    compliance.CategoryCustom,
		Custom:      true,
		ExpiryDate:  dateOnly(input.ExpiryDate),
	}
	doc.Evaluate(false, s.now())

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FileURL returns a signed link to the current file of a slot
func (s *ComplianceService) FileURL(ctx context.Context, slot string) (*SignedURL, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}
	objects, err := s.store.List(ctx, slotPrefix(businessID, slot))
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", slot, err)
	}
	if len(objects) == 0 {
		return nil, apperror.NewNotFoundError("File")
	}

	latest := objects[0]
	for _, obj := range objects[1:] {
		if obj.Modified.After(latest.Modified) {
			latest = obj
		}
	}
	return s.files.Sign(latest.Key, latest.Name)
}

func cleanFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(path.Base(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
