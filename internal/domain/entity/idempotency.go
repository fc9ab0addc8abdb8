package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyScope identifies one client key. The same key may be reused by
// another user or in another business.
type IdempotencyScope struct {
	BusinessID uuid.UUID
	UserID     uuid.UUID
	Key        string
}

// IdempotencyKey is the recorded outcome of a write request so a retry with
// the same key replays it instead of writing twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_scope"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_scope"`
	Key          string    `gorm:"column:client_key;size:255;not null;uniqueIndex:idx_idempotency_scope"`
	Endpoint     string    `gorm:"size:255;not null"`
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// Scope returns the identity the record is stored under
func (i *IdempotencyKey) Scope() IdempotencyScope {
	return IdempotencyScope{BusinessID: i.BusinessID, UserID: i.UserID, Key: i.Key}
}

// Live reports whether the record still answers retries at now
func (i *IdempotencyKey) Live(now time.Time) bool {
	return now.Before(i.ExpiresAt)
}

// Matches reports whether a retry is the same request as the recorded one
func (i *IdempotencyKey) Matches(endpoint, requestHash string) bool {
	return i.Endpoint == endpoint && i.RequestHash == requestHash
}
