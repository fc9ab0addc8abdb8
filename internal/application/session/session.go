// Package session carries the authenticated user and their active business
// through a request.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
)

type ctxKey struct{}

// Session is built per request after authentication and onboarding checks
type Session struct {
	UserID      uuid.UUID
	Email       string
	Roles       []string
	Permissions []string
	Business    *entity.Business
	MemberRole  string
}

// BusinessID returns the active business ID, or uuid.Nil before onboarding
func (s *Session) BusinessID() uuid.UUID {
	if s == nil || s.Business == nil {
		return uuid.Nil
	}
	return s.Business.ID
}

// Onboarded reports whether the session has an active business
func (s *Session) Onboarded() bool {
	return s.BusinessID() != uuid.Nil
}

// CanManageBusiness reports whether the user owns or administers the business
func (s *Session) CanManageBusiness() bool {
	return s != nil && (s.MemberRole == entity.MemberRoleOwner || s.MemberRole == entity.MemberRoleAdmin)
}

// HasPermission checks the permission list carried by the access token
func (s *Session) HasPermission(permission string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// With returns a copy of ctx carrying s
func With(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the session stored in ctx
func From(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
