package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/domain/website"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"gorm.io/datatypes"
)

// WebsiteService manages the public one-page site of a business
type WebsiteService struct {
	websiteRepo  repository.WebsiteRepository
	businessRepo repository.BusinessRepository
}

// NewWebsiteService creates a new website service
func NewWebsiteService(websiteRepo repository.WebsiteRepository, businessRepo repository.BusinessRepository) *WebsiteService {
	return &WebsiteService{
		websiteRepo:  websiteRepo,
		businessRepo: businessRepo,
	}
}

// Templates returns the template catalog
func (s *WebsiteService) Templates() []website.Template {
	return website.Templates()
}

// CreateDefault creates a draft site for a newly onboarded business. ctx must
// carry the business scope.
func (s *WebsiteService) CreateDefault(ctx context.Context, business *entity.Business) (*entity.Website, error) {
	slug, err := s.uniqueSlug(ctx, utils.Slugify(business.Name))
	if err != nil {
		return nil, err
	}

	tpl, _ := website.Lookup(website.DefaultTemplateID)
	site := &entity.Website{
		BusinessID: business.ID,
		TemplateID: tpl.ID,
		Slug:       slug,
		Title:      business.Name,
		Content:    datatypes.JSONMap(website.DefaultContent(tpl, contactOf(business))),
	}
	if err := s.websiteRepo.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// Get returns the site of the current business, creating it if an older
// business never had one.
func (s *WebsiteService) Get(ctx context.Context) (*entity.Website, error) {
	site, err := s.websiteRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if site != nil {
		return site, nil
	}

	businessID, ok := businessIDFrom(ctx)
	if !ok {
		return nil, apperror.NewNotFoundError("Website")
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return s.CreateDefault(ctx, business)
}

// UpdateWebsiteInput represents input for editing a site. Nil fields are left unchanged.
type UpdateWebsiteInput struct {
	TemplateID *string
	Slug       *string
	Title      *string
	Content    map[string]interface{}
}

// Update edits the site of the current business
func (s *WebsiteService) Update(ctx context.Context, input *UpdateWebsiteInput) (*entity.Website, error) {
	site, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	if input.TemplateID != nil {
		if _, ok := website.Lookup(*input.TemplateID); !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "template_id", Message: "Unknown template"})
		}
	}
	var slug string
	if input.Slug != nil {
		slug = website.NormalizeSlug(*input.Slug)
		if !website.ValidSlug(slug) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "slug",
				Message: "Slug must be 3-100 lowercase letters, digits or single hyphens",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.Slug != nil && slug != site.Slug {
		taken, err := s.websiteRepo.SlugExists(ctx, slug, site.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewConflictError("Slug is already in use")
		}
		site.Slug = slug
	}
	if input.TemplateID != nil {
		site.TemplateID = *input.TemplateID
	}
	if input.Title != nil {
		site.Title = *input.Title
	}
	if input.Content != nil {
		site.Content = datatypes.JSONMap(input.Content)
	}

	if err := s.websiteRepo.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// Publish makes the site reachable at its public URL
func (s *WebsiteService) Publish(ctx context.Context) (*entity.Website, error) {
	return s.setPublished(ctx, true)
}

// Unpublish takes the site offline
func (s *WebsiteService) Unpublish(ctx context.Context) (*entity.Website, error) {
	return s.setPublished(ctx, false)
}

func (s *WebsiteService) setPublished(ctx context.Context, published bool) (*entity.Website, error) {
	site, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	site.Published = published
	if published {
		now := time.Now()
		site.PublishedAt = &now
	}
	if err := s.websiteRepo.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// RenderPublic returns the HTML of a published site
func (s *WebsiteService) RenderPublic(ctx context.Context, slug string) ([]byte, error) {
	site, err := s.websiteRepo.GetBySlug(ctx, website.NormalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if site == nil || !site.Published {
		return nil, apperror.NewNotFoundError("Site")
	}

	tpl, ok := website.Lookup(site.TemplateID)
	if !ok {
		tpl, _ = website.Lookup(website.DefaultTemplateID)
	}
	title := site.Title
	if title == "" {
		title = site.Business.Name
	}

	var buf bytes.Buffer
	if err := website.Render(&buf, website.Page{
		Title:    title,
		Template: tpl,
		Content:  site.Content,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *WebsiteService) uniqueSlug(ctx context.Context, base string) (string, error) {
	if len(base) < 3 {
		base = utils.Slugify("site-" + base)
	}
	if len(base) > 90 {
		base = strings.TrimRight(base[:90], "-")
	}
	slug := base
	for i := 0; i < 5; i++ {
		taken, err := s.websiteRepo.SlugExists(ctx, slug, uuid.Nil)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + utils.RandomSuffix(4)
	}
	return base + "-" + utils.RandomSuffix(8), nil
}

func contactOf(b *entity.Business) website.Contact {
	return website.Contact{
		Name:    b.Name,
		Phone:   deref(b.Phone),
		Email:   deref(b.Email),
		Address: deref(b.Address),
	}
}
