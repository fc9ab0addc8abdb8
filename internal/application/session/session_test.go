package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Context(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)

	biz := &entity.Business{ID: uuid.New(), Name: "Acme"}
	s := &Session{UserID: uuid.New(), Business: biz, MemberRole: entity.MemberRoleAdmin, Permissions: []string{"manage-leads"}}
	got, ok := From(With(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, biz.ID, got.BusinessID())
	assert.True(t, got.Onboarded())
	assert.True(t, got.CanManageBusiness())
	assert.True(t, got.HasPermission("manage-leads"))
	assert.False(t, got.HasPermission("manage-users"))
}

func TestSession_NotOnboarded(t *testing.T) {
	var nilSession *Session
	assert.Equal(t, uuid.Nil, nilSession.BusinessID())
	assert.False(t, nilSession.CanManageBusiness())

	s := &Session{UserID: uuid.New(), MemberRole: entity.MemberRoleMember}
	assert.False(t, s.Onboarded())
	assert.False(t, s.CanManageBusiness())
}
