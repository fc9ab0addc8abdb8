package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domainRepo.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(business).Error
}

func (r *businessRepository) CreateWithOwner(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(business).Error; err != nil {
			return err
		}
		return tx.Create(&entity.BusinessMembership{
			BusinessID: business.ID,
			UserID:     business.OwnerID,
			Role:       entity.MemberRoleOwner,
		}).Error
	})
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(business).Error
}

func (r *businessRepository) GetUserBusinesses(ctx context.Context, userID uuid.UUID) ([]entity.Business, error) {
	var businesses []entity.Business
	err := r.db.WithContext(ctx).
		Joins("JOIN business_memberships ON business_memberships.business_id = businesses.id").
		Where("business_memberships.user_id = ?", userID).
		Order("business_memberships.created_at ASC").
		Find(&businesses).Error
	return businesses, err
}

func (r *businessRepository) AddMember(ctx context.Context, membership *entity.BusinessMembership) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(membership).Error
}

func (r *businessRepository) RemoveMember(ctx context.Context, businessID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.BusinessMembership{}, "business_id = ? AND user_id = ?", businessID, userID).Error
}

func (r *businessRepository) GetMembers(ctx context.Context, businessID uuid.UUID) ([]entity.BusinessMembership, error) {
	var members []entity.BusinessMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *businessRepository) GetMembership(ctx context.Context, businessID, userID uuid.UUID) (*entity.BusinessMembership, error) {
	var membership entity.BusinessMembership
	err := r.db.WithContext(ctx).
		Preload("Business").
		First(&membership, "business_id = ? AND user_id = ?", businessID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *businessRepository) UpdateMemberRole(ctx context.Context, businessID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Model(&entity.BusinessMembership{}).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		Update("role", role).Error
}

func (r *businessRepository) ListAll(ctx context.Context) ([]entity.Business, error) {
	var businesses []entity.Business
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&businesses).Error
	return businesses, err
}
