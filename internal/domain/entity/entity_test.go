package entity

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestUserPermissions(t *testing.T) {
	user := &User{Roles: []Role{
		{Name: RoleStaff, Permissions: []Permission{{Name: PermissionManageTasks}, {Name: PermissionManageLeads}}},
		{Name: RoleUser, Permissions: []Permission{{Name: PermissionManageLeads}, {Name: PermissionViewDashboard}}},
	}}

	assert.Equal(t, []string{RoleStaff, RoleUser}, user.GetRoleNames())
	assert.Equal(t, []string{PermissionManageLeads, PermissionManageTasks, PermissionViewDashboard}, user.GetPermissions())
	assert.True(t, user.HasPermission(PermissionViewDashboard))
	assert.False(t, user.HasPermission(PermissionManageUsers))

	empty := &User{}
	assert.Empty(t, empty.GetPermissions())
	assert.NotNil(t, empty.GetRoleNames())
}

func TestNewCustomerFromLead(t *testing.T) {
	email := "thandi@example.com"
	lead := &Lead{BusinessID: uuid.New(), Name: "Thandi", Email: &email}
	owner := uuid.New()

	customer := NewCustomerFromLead(lead, owner)
	assert.Equal(t, lead.BusinessID, customer.BusinessID)
	assert.Equal(t, owner, customer.UserID)
	assert.Equal(t, "Thandi", customer.Name)
	assert.Equal(t, &email, customer.Email)
	assert.Equal(t, uuid.Nil, customer.ID)
}

func TestPasswordResetToken(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	token := NewPasswordResetToken(uuid.New(), "plain-token", now)

	assert.NotContains(t, token.TokenHash, "plain-token")
	assert.Equal(t, HashResetToken("plain-token"), token.TokenHash)
	assert.Len(t, token.TokenHash, 64)

	assert.True(t, token.Usable(now.Add(59*time.Minute)))
	assert.False(t, token.Usable(now.Add(PasswordResetTTL)))

	used := now.Add(time.Minute)
	token.UsedAt = &used
	assert.False(t, token.Usable(now.Add(2*time.Minute)))
}

func TestIdempotencyKey(t *testing.T) {
	now := time.Now()
	record := &IdempotencyKey{
		BusinessID:  uuid.New(),
		UserID:      uuid.New(),
		Key:         "abc",
		Endpoint:    "POST /api/v1/sales",
		RequestHash: "h1",
		ExpiresAt:   now.Add(time.Hour),
	}

	assert.Equal(t, IdempotencyScope{BusinessID: record.BusinessID, UserID: record.UserID, Key: "abc"}, record.Scope())
	assert.True(t, record.Live(now))
	assert.False(t, record.Live(now.Add(2*time.Hour)))
	assert.True(t, record.Matches("POST /api/v1/sales", "h1"))
	assert.False(t, record.Matches("POST /api/v1/sales", "h2"))
	assert.False(t, record.Matches("POST /api/v1/quotes", "h1"))
}

// columnScale reads the scale of a decimal(p,s) column from its gorm tag
func columnScale(t *testing.T, model interface{}, field string) int32 {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	f := s.LookUpField(field)
	require.NotNil(t, f, field)

	var precision, scale int32
	_, err = fmt.Sscanf(f.TagSettings["TYPE"], "decimal(%d,%d)", &precision, &scale)
	require.NoError(t, err, f.TagSettings["TYPE"])
	return scale
}

func TestStoredAmountsKeepTaxRateRecoverable(t *testing.T) {
	items := []pricing.LineItem{{Name: "Bolt", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("0.005")}}
	totals := pricing.Compute(items, decimal.NewFromInt(15))

	for _, model := range []interface{}{&Quote{}, &Sale{}} {
		subtotal := totals.Subtotal.Round(columnScale(t, model, "SubTotal"))
		vat := totals.TaxAmount.Round(columnScale(t, model, "VAT"))
		rate := pricing.ImpliedTaxRate(subtotal, vat)
		assert.True(t, rate.Equal(decimal.NewFromInt(15)), "%T recovered %s", model, rate)
	}
}
