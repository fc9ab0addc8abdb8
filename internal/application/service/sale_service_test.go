package service_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSaleService(db *gorm.DB) *service.SaleService {
	return service.NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewCustomerRepository(db),
		infraRepo.NewBusinessRepository(db),
	)
}

func item(name, qty, price string) pricing.LineItem {
	return pricing.LineItem{
		Name:      name,
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCreateSale(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newSaleService(db)
	owner := testutil.CreateUser(t, db, "s@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	_, err := svc.CreateSale(ctx, &service.CreateSaleInput{UserID: owner.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	sale, err := svc.CreateSale(ctx, &service.CreateSaleInput{
		UserID:       owner.ID,
		CustomerName: "Walk-in",
		Status:       enum.SaleStatusPaid,
		Items: []pricing.LineItem{
			item("Paint", "2", "150.00"),
			item("Brush", "1", "45.50"),
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sale.InvoiceNo, "INV-"))
	assert.Len(t, sale.InvoiceNo, len("INV-")+8)
	assert.Equal(t, "345.50", pricing.Format(sale.SubTotal))
	assert.Equal(t, "51.83", pricing.Format(sale.VAT))
	assert.Equal(t, "397.33", pricing.Format(sale.Total))
	assert.NotNil(t, sale.PaidAt)
	assert.NotEmpty(t, sale.Items[0].ID)

	loaded, err := svc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, "Paint", loaded.Items[0].Name)
	assert.Equal(t, "Brush", loaded.Items[1].Name)
}

func TestSaleTaxOverrideAndUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newSaleService(db)
	owner := testutil.CreateUser(t, db, "o@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	bad := decimal.NewFromInt(-1)
	_, err := svc.CreateSale(ctx, &service.CreateSaleInput{UserID: owner.ID, Items: []pricing.LineItem{item("A", "1", "1")}, TaxRate: &bad})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	zero := decimal.Zero
	sale, err := svc.CreateSale(ctx, &service.CreateSaleInput{
		UserID:  owner.ID,
		Items:   []pricing.LineItem{item("Consulting", "3", "100")},
		TaxRate: &zero,
	})
	require.NoError(t, err)
	assert.True(t, sale.VAT.IsZero())

	updated, err := svc.UpdateSale(ctx, &service.UpdateSaleInput{
		ID:    sale.ID,
		Items: []pricing.LineItem{item("Consulting", "4", "100")},
	})
	require.NoError(t, err)
	assert.Equal(t, "400.00", pricing.Format(updated.Total))

	paid, err := svc.UpdateSaleStatus(ctx, sale.ID, enum.SaleStatusPaid)
	require.NoError(t, err)
	assert.NotNil(t, paid.PaidAt)

	cancelled, err := svc.UpdateSaleStatus(ctx, sale.ID, enum.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, cancelled.PaidAt)

	status := enum.SaleStatusCancelled
	page, err := svc.ListSales(ctx, &repository.SaleFilterParams{Pagination: &pagination.PaginationParams{}, Status: &status})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	require.NoError(t, svc.DeleteSale(ctx, sale.ID))
	_, err = svc.GetSale(ctx, sale.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestSaleWithUnknownCustomer(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newSaleService(db)
	owner := testutil.CreateUser(t, db, "u@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	missing := owner.ID
	_, err := svc.CreateSale(ctx, &service.CreateSaleInput{
		UserID:     owner.ID,
		CustomerID: &missing,
		Items:      []pricing.LineItem{item("A", "1", "1")},
	})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}
