package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/bizhub-api/internal/domain/compliance"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	compliance    *ComplianceService
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, complianceService *ComplianceService) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		compliance:    complianceService,
		now:           time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	LeadsByStatus  map[string]int64   `json:"leads_by_status"`
	TotalLeads     int64              `json:"total_leads"`
	TotalCustomers int64              `json:"total_customers"`
	OpenTasks      int64              `json:"open_tasks"`
	OverdueTasks   int64              `json:"overdue_tasks"`
	PendingQuotes  int64              `json:"pending_quotes"`
	TotalRevenue   decimal.Decimal    `json:"total_revenue"`
	MonthlyRevenue decimal.Decimal    `json:"monthly_revenue"`
	DailySalesData []DailySalesPoint  `json:"daily_sales_data"`
	TopCustomers   []TopCustomer      `json:"top_customers"`
	Compliance     compliance.Summary `json:"compliance"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopCustomer represents a customer ranked by paid sales
type TopCustomer struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	TotalSpent float64 `json:"total_spent"`
	SaleCount  int     `json:"sale_count"`
}

const (
	DefaultRevenueDays    = 7
	MaxRevenueDays        = 90
	dashboardTopCustomers = 5
)

// GetDashboardStats gathers the dashboard figures of the business in ctx with
// daily revenue for the last days days (DefaultRevenueDays when zero).
// The queries run concurrently; the first failure cancels the rest.
func (s *DashboardService) GetDashboardStats(ctx context.Context, days int) (*DashboardStats, error) {
	if _, err := requireBusiness(ctx); err != nil {
		return nil, err
	}
	if days == 0 {
		days = DefaultRevenueDays
	}
	if days < 1 || days > MaxRevenueDays {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("days must be between 1 and %d", MaxRevenueDays))
	}

	now := s.now()
	today := *dateOnly(&now)
	startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	stats := &DashboardStats{}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		counts, err := s.analyticsRepo.CountLeadsByStatus(ctx)
		if err != nil {
			return err
		}
		stats.LeadsByStatus = make(map[string]int64, len(enum.LeadStatuses()))
		for _, status := range enum.LeadStatuses() {
			stats.LeadsByStatus[status.String()] = counts[status]
			stats.TotalLeads += counts[status]
		}
		return nil
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.TotalCustomers, err = s.analyticsRepo.CountCustomers(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.OpenTasks, stats.OverdueTasks, err = s.analyticsRepo.CountOpenTasks(ctx, today)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.PendingQuotes, err = s.analyticsRepo.CountPendingQuotes(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.TotalRevenue, err = s.analyticsRepo.GetRevenue(ctx, time.Time{})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		stats.MonthlyRevenue, err = s.analyticsRepo.GetRevenue(ctx, startOfMonth)
		return err
	})
	p.Go(func(ctx context.Context) error {
		daily, err := s.analyticsRepo.GetDailyRevenue(ctx, days, today)
		if err != nil {
			return err
		}
		stats.DailySalesData = make([]DailySalesPoint, len(daily))
		for i, d := range daily {
			stats.DailySalesData[i] = DailySalesPoint{Date: d.Date.Format("Jan 02"), Revenue: d.Revenue}
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		top, err := s.analyticsRepo.GetTopCustomers(ctx, dashboardTopCustomers)
		if err != nil {
			return err
		}
		stats.TopCustomers = make([]TopCustomer, len(top))
		for i, c := range top {
			stats.TopCustomers[i] = TopCustomer{
				CustomerID: c.CustomerID.String(),
				Name:       c.CustomerName,
				TotalSpent: c.TotalSpent,
				SaleCount:  c.SaleCount,
			}
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		summary, err := s.compliance.Summary(ctx)
		if err != nil {
			return err
		}
		stats.Compliance = *summary
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
