package service_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuoteService(db *gorm.DB) *service.QuoteService {
	return service.NewQuoteService(
		infraRepo.NewQuoteRepository(db),
		infraRepo.NewCustomerRepository(db),
		infraRepo.NewBusinessRepository(db),
		newSaleService(db),
	)
}

func TestQuoteReferencesAreSequential(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuoteService(db)
	a := testutil.CreateUser(t, db, "qa@example.com", "user")
	b := testutil.CreateUser(t, db, "qb@example.com", "user")
	_, ctxA := testutil.CreateBusiness(t, db, a, "Alpha")
	_, ctxB := testutil.CreateBusiness(t, db, b, "Bravo")

	q1, err := svc.CreateQuote(ctxA, &service.CreateQuoteInput{UserID: a.ID, ClientName: "One"})
	require.NoError(t, err)
	q2, err := svc.CreateQuote(ctxA, &service.CreateQuoteInput{UserID: a.ID, ClientName: "Two"})
	require.NoError(t, err)
	other, err := svc.CreateQuote(ctxB, &service.CreateQuoteInput{UserID: b.ID, ClientName: "Elsewhere"})
	require.NoError(t, err)

	assert.Equal(t, "QT-000001", q1.Reference)
	assert.Equal(t, "QT-000002", q2.Reference)
	assert.Equal(t, "QT-000001", other.Reference)

	require.NoError(t, svc.DeleteQuote(ctxA, q2.ID))
	q3, err := svc.CreateQuote(ctxA, &service.CreateQuoteInput{UserID: a.ID, ClientName: "Three"})
	require.NoError(t, err)
	assert.Equal(t, "QT-000003", q3.Reference)
}

func TestQuoteTaxRateSurvivesReload(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuoteService(db)
	owner := testutil.CreateUser(t, db, "q@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	_, err := svc.CreateQuote(ctx, &service.CreateQuoteInput{UserID: owner.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	rate := decimal.RequireFromString("10")
	quote, err := svc.CreateQuote(ctx, &service.CreateQuoteInput{
		UserID:     owner.ID,
		ClientName: "Thandi",
		Items:      []pricing.LineItem{item("Tiles", "10", "25")},
		TaxRate:    &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", pricing.Format(quote.VAT))

	loaded, err := svc.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.True(t, loaded.TaxRate.Equal(rate), "got %s", loaded.TaxRate)

	updated, err := svc.UpdateQuote(ctx, &service.UpdateQuoteInput{
		ID:    quote.ID,
		Items: []pricing.LineItem{item("Tiles", "20", "25")},
	})
	require.NoError(t, err)
	assert.Equal(t, "50.00", pricing.Format(updated.VAT))
	assert.Equal(t, "550.00", pricing.Format(updated.Total))
}

func TestExportQuote(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuoteService(db)
	owner := testutil.CreateUser(t, db, "e@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	empty, err := svc.CreateQuote(ctx, &service.CreateQuoteInput{UserID: owner.ID, ClientName: "Nobody"})
	require.NoError(t, err)
	_, err = svc.ExportQuote(ctx, empty.ID, "pdf")
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	quote, err := svc.CreateQuote(ctx, &service.CreateQuoteInput{
		UserID:     owner.ID,
		ClientName: "Thandi",
		Date:       date,
		Items:      []pricing.LineItem{item("Tiles", "10", "25")},
	})
	require.NoError(t, err)

	_, err = svc.ExportQuote(ctx, quote.ID, "docx")
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	txt, err := svc.ExportQuote(ctx, quote.ID, "txt")
	require.NoError(t, err)
	assert.Equal(t, "Quote-2026-03-14.txt", txt.Filename)
	assert.Contains(t, string(txt.Data), "QT-000002")
	assert.Contains(t, string(txt.Data), "ZAR 287.50")

	pdf, err := svc.ExportQuote(ctx, quote.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF")))
}

func TestConvertQuoteToSale(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuoteService(db)
	owner := testutil.CreateUser(t, db, "cv@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	rate := decimal.RequireFromString("7.5")
	quote, err := svc.CreateQuote(ctx, &service.CreateQuoteInput{
		UserID:     owner.ID,
		ClientName: "Johan",
		Items:      []pricing.LineItem{item("Fence", "1", "1000")},
		TaxRate:    &rate,
	})
	require.NoError(t, err)

	sale, err := svc.ConvertToSale(ctx, owner.ID, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "75.00", pricing.Format(sale.VAT))
	assert.Equal(t, "Johan", sale.CustomerName)
	require.NotNil(t, sale.QuoteID)
	assert.Equal(t, quote.ID, *sale.QuoteID)
	assert.Equal(t, enum.SaleStatusPending, sale.Status)

	var stored entity.Quote
	require.NoError(t, db.First(&stored, "id = ?", quote.ID).Error)
	assert.Equal(t, enum.QuoteStatusAccepted, stored.Status)
	require.NotNil(t, stored.SaleID)

	_, err = svc.ConvertToSale(ctx, owner.ID, quote.ID)
	assert.Equal(t, http.StatusConflict, appCode(t, err))
}
