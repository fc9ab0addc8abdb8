package repository

import (
	"context"

	"github.com/sangkips/bizhub-api/internal/domain/entity"
)

// IdempotencyRepository records the responses of keyed write requests
type IdempotencyRepository interface {
	// Find returns nil when nothing is recorded for scope
	Find(ctx context.Context, scope entity.IdempotencyScope) (*entity.IdempotencyKey, error)
	// Save records ikey, replacing an expired record with the same scope
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) (int64, error)
}
