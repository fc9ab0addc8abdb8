package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBusinessService(db *gorm.DB) *service.BusinessService {
	businessRepo := infraRepo.NewBusinessRepository(db)
	websiteService := service.NewWebsiteService(infraRepo.NewWebsiteRepository(db), businessRepo)
	return service.NewBusinessService(businessRepo, infraRepo.NewUserRepository(db), websiteService)
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %v", err)
	return apperror.GetAppError(err).Code
}

func strp(s string) *string { return &s }

func TestOnboard(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newBusinessService(db)
	user := testutil.CreateUser(t, db, "owner@example.com", "user")
	ctx := context.Background()

	status, err := svc.GetOnboarding(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, status.Onboarded)

	biz, err := svc.Onboard(ctx, user.ID, &service.BusinessProfileInput{
		Name:  "  Acme Plumbing ",
		Type:  enum.BusinessTypeConstruction,
		Phone: strp("011 555 0101"),
		VATNo: strp(" "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", biz.Name)
	assert.Nil(t, biz.VATNo)
	assert.Equal(t, "011 555 0101", biz.Settings.AlertPhone)
	assert.True(t, biz.Settings.TaxRate.Equal(decimal.NewFromInt(15)))

	status, err = svc.GetOnboarding(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, status.Onboarded)
	assert.Equal(t, biz.ID, status.Business.ID)

	var site entity.Website
	require.NoError(t, db.First(&site, "business_id = ?", biz.ID).Error)
	assert.Equal(t, "acme-plumbing", site.Slug)
	assert.False(t, site.Published)

	var membership entity.BusinessMembership
	require.NoError(t, db.First(&membership, "business_id = ? AND user_id = ?", biz.ID, user.ID).Error)
	assert.Equal(t, entity.MemberRoleOwner, membership.Role)

	_, err = svc.Onboard(ctx, user.ID, &service.BusinessProfileInput{Name: "Again"})
	assert.Equal(t, http.StatusConflict, appCode(t, err))
}

func TestOnboardValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newBusinessService(db)
	user := testutil.CreateUser(t, db, "v@example.com", "user")

	_, err := svc.Onboard(context.Background(), user.ID, &service.BusinessProfileInput{
		Name: " ",
		Type: "spaceship",
	})
	require.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	assert.Len(t, apperror.GetAppError(err).Errors, 2)
}

func TestMembers(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newBusinessService(db)
	owner := testutil.CreateUser(t, db, "boss@example.com", "user")
	staff := testutil.CreateUser(t, db, "staff@example.com", "staff")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	member, err := svc.AddMember(ctx, &service.AddMemberInput{Email: "STAFF@example.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.MemberRoleMember, member.Role)
	require.NotNil(t, member.MemberUser)
	assert.Equal(t, "staff@example.com", member.MemberUser.Email)

	_, err = svc.AddMember(ctx, &service.AddMemberInput{Email: "staff@example.com"})
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	_, err = svc.AddMember(ctx, &service.AddMemberInput{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	_, err = svc.AddMember(ctx, &service.AddMemberInput{Email: "boss@example.com", Role: "owner"})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	require.NoError(t, svc.UpdateMemberRole(ctx, staff.ID, entity.MemberRoleAdmin))
	members, err := svc.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, entity.MemberRoleAdmin, members[1].Role)

	assert.Equal(t, http.StatusForbidden, appCode(t, svc.RemoveMember(ctx, owner.ID)))
	assert.Equal(t, http.StatusForbidden, appCode(t, svc.UpdateMemberRole(ctx, owner.ID, "member")))

	require.NoError(t, svc.RemoveMember(ctx, staff.ID))
	members, err = svc.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestSettings(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newBusinessService(db)
	owner := testutil.CreateUser(t, db, "s@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ZAR", settings.Currency)

	bad := decimal.NewFromInt(101)
	_, err = svc.UpdateSettings(ctx, &service.UpdateSettingsInput{TaxRate: &bad})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	rate := decimal.RequireFromString("7.5")
	sms := true
	settings, err = svc.UpdateSettings(ctx, &service.UpdateSettingsInput{
		TaxRate:     &rate,
		QuotePrefix: strp("Q-"),
		Currency:    strp("usd"),
		SMSAlerts:   &sms,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", settings.Currency)

	reloaded, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded.TaxRate.Equal(rate))
	assert.Equal(t, "Q-", reloaded.QuotePrefix)
	assert.True(t, reloaded.SMSAlerts)
	assert.Equal(t, "INV-", reloaded.InvoicePrefix)
}

func TestGetBusinessRequiresContext(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newBusinessService(db)

	_, err := svc.GetBusiness(context.Background())
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}
