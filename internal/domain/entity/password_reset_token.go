package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetTTL is how long an emailed reset link stays usable
const PasswordResetTTL = time.Hour

// PasswordResetToken is a single-use reset grant. Only the SHA-256 of the
// emailed token is stored.
type PasswordResetToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewPasswordResetToken binds the hash of token to a user
func NewPasswordResetToken(userID uuid.UUID, token string, now time.Time) *PasswordResetToken {
	return &PasswordResetToken{
		UserID:    userID,
		TokenHash: HashResetToken(token),
		ExpiresAt: now.Add(PasswordResetTTL),
	}
}

// HashResetToken is the lookup key for a token received from a client
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Usable reports whether the token can still reset a password at now
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
