package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/bizhub-api/internal/application/service"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsiteLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewWebsiteService(infraRepo.NewWebsiteRepository(db), infraRepo.NewBusinessRepository(db))
	owner := testutil.CreateUser(t, db, "w@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme Bakery")

	site, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acme-bakery", site.Slug)
	assert.Equal(t, "classic", site.TemplateID)

	_, err = svc.RenderPublic(context.Background(), "acme-bakery")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	site, err = svc.Update(ctx, &service.UpdateWebsiteInput{
		TemplateID: strp("bold"),
		Slug:       strp("Fresh-Bread"),
		Content: map[string]interface{}{
			"hero":     map[string]interface{}{"headline": "Fresh bread daily"},
			"services": map[string]interface{}{"heading": "Menu", "items": []interface{}{"Sourdough", "Rye"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-bread", site.Slug)

	_, err = svc.Publish(ctx)
	require.NoError(t, err)

	html, err := svc.RenderPublic(context.Background(), "fresh-bread")
	require.NoError(t, err)
	assert.Contains(t, string(html), "Fresh bread daily")
	assert.Contains(t, string(html), "<li>Rye</li>")

	site, err = svc.Unpublish(ctx)
	require.NoError(t, err)
	assert.False(t, site.Published)
	_, err = svc.RenderPublic(context.Background(), "fresh-bread")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestWebsiteUpdateErrors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewWebsiteService(infraRepo.NewWebsiteRepository(db), infraRepo.NewBusinessRepository(db))
	first := testutil.CreateUser(t, db, "a@example.com", "user")
	second := testutil.CreateUser(t, db, "b@example.com", "user")
	_, ctxA := testutil.CreateBusiness(t, db, first, "Alpha")
	_, ctxB := testutil.CreateBusiness(t, db, second, "Bravo")

	_, err := svc.Get(ctxA)
	require.NoError(t, err)

	_, err = svc.Update(ctxB, &service.UpdateWebsiteInput{TemplateID: strp("neon")})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	_, err = svc.Update(ctxB, &service.UpdateWebsiteInput{Slug: strp("no spaces")})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	_, err = svc.Update(ctxB, &service.UpdateWebsiteInput{Slug: strp("alpha")})
	assert.Equal(t, http.StatusConflict, appCode(t, err))
}

func TestWebsiteDefaultSlugIsUnique(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewWebsiteService(infraRepo.NewWebsiteRepository(db), infraRepo.NewBusinessRepository(db))
	first := testutil.CreateUser(t, db, "c@example.com", "user")
	second := testutil.CreateUser(t, db, "d@example.com", "user")
	_, ctxA := testutil.CreateBusiness(t, db, first, "Same Name")
	_, ctxB := testutil.CreateBusiness(t, db, second, "Same Name")

	a, err := svc.Get(ctxA)
	require.NoError(t, err)
	b, err := svc.Get(ctxB)
	require.NoError(t, err)
	assert.Equal(t, "same-name", a.Slug)
	assert.NotEqual(t, a.Slug, b.Slug)
	assert.Contains(t, b.Slug, "same-name-")
}
