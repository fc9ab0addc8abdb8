package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newComplianceFixture(t)
	db := f.db
	owner := testutil.CreateUser(t, db, "dash@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Dash Co")

	leads := service.NewLeadService(infraRepo.NewLeadRepository(db))
	for _, status := range []enum.LeadStatus{enum.LeadStatusNew, enum.LeadStatusNew, enum.LeadStatusWon} {
		_, err := leads.CreateLead(ctx, &service.LeadInput{UserID: owner.ID, Name: "Lead", Status: status})
		require.NoError(t, err)
	}

	customers := service.NewCustomerService(infraRepo.NewCustomerRepository(db))
	customer, err := customers.CreateCustomer(ctx, &service.CustomerInput{UserID: owner.ID, Name: "Big Spender"})
	require.NoError(t, err)

	sales := newSaleService(db)
	zero := decimal.Zero
	_, err = sales.CreateSale(ctx, &service.CreateSaleInput{
		UserID:     owner.ID,
		CustomerID: &customer.ID,
		Status:     enum.SaleStatusPaid,
		Items:      []pricing.LineItem{item("Service", "2", "50")},
		TaxRate:    &zero,
	})
	require.NoError(t, err)
	_, err = sales.CreateSale(ctx, &service.CreateSaleInput{
		UserID:       owner.ID,
		CustomerName: "Walk-in",
		Status:       enum.SaleStatusPending,
		Items:        []pricing.LineItem{item("Service", "1", "999")},
	})
	require.NoError(t, err)

	_, err = newQuoteService(db).CreateQuote(ctx, &service.CreateQuoteInput{
		UserID:     owner.ID,
		ClientName: "Prospect",
		Items:      []pricing.LineItem{item("Work", "1", "10")},
	})
	require.NoError(t, err)

	tasks := newTaskService(db)
	yesterday := time.Now().AddDate(0, 0, -1)
	_, err = tasks.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "Call back", DueDate: &yesterday})
	require.NoError(t, err)
	_, err = tasks.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "Later"})
	require.NoError(t, err)

	upload(t, f, ctx, "tax-clearance", "tcs.pdf", nil)

	dashboard := service.NewDashboardService(infraRepo.NewAnalyticsRepository(db), f.service)
	stats, err := dashboard.GetDashboardStats(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalLeads)
	assert.Equal(t, int64(2), stats.LeadsByStatus[enum.LeadStatusNew.String()])
	assert.Equal(t, int64(1), stats.LeadsByStatus[enum.LeadStatusWon.String()])
	assert.Equal(t, int64(0), stats.LeadsByStatus[enum.LeadStatusLost.String()])
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Equal(t, int64(2), stats.OpenTasks)
	assert.Equal(t, int64(1), stats.OverdueTasks)
	assert.Equal(t, int64(1), stats.PendingQuotes)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(100)), stats.TotalRevenue.String())
	assert.True(t, stats.MonthlyRevenue.Equal(decimal.NewFromInt(100)), stats.MonthlyRevenue.String())
	require.Len(t, stats.DailySalesData, 7)
	assert.True(t, stats.DailySalesData[6].Revenue.Equal(decimal.NewFromInt(100)))
	require.Len(t, stats.TopCustomers, 1)
	assert.Equal(t, "Big Spender", stats.TopCustomers[0].Name)
	assert.Equal(t, 1, stats.Compliance.ValidCount)
}

func TestDashboardRequiresBusiness(t *testing.T) {
	f := newComplianceFixture(t)
	dashboard := service.NewDashboardService(infraRepo.NewAnalyticsRepository(f.db), f.service)

	_, err := dashboard.GetDashboardStats(context.Background(), 0)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestDashboardRevenueWindow(t *testing.T) {
	f := newComplianceFixture(t)
	owner := testutil.CreateUser(t, f.db, "window@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, f.db, owner, "Window Co")
	dashboard := service.NewDashboardService(infraRepo.NewAnalyticsRepository(f.db), f.service)

	stats, err := dashboard.GetDashboardStats(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, stats.DailySalesData, 30)

	_, err = dashboard.GetDashboardStats(ctx, service.MaxRevenueDays+1)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}
