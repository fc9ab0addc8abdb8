package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   float64
	SaleCount    int
}

// DailyRevenueResult represents paid revenue for a single day
type DailyRevenueResult struct {
	Date    time.Time
	Revenue decimal.Decimal
}

// AnalyticsRepository defines aggregation queries for the dashboard. All
// queries are scoped to the business in ctx.
type AnalyticsRepository interface {
	// GetRevenue returns paid revenue on or after since; a zero since means all time
	GetRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// GetDailyRevenue returns paid revenue for each of the last days ending today
	GetDailyRevenue(ctx context.Context, days int, today time.Time) ([]DailyRevenueResult, error)

	// GetTopCustomers returns top customers by paid sales
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)

	// CountLeadsByStatus returns the number of leads per pipeline status
	CountLeadsByStatus(ctx context.Context) (map[enum.LeadStatus]int64, error)

	// CountCustomers returns the number of customers
	CountCustomers(ctx context.Context) (int64, error)

	// CountOpenTasks returns open tasks and, of those, the ones due before today
	CountOpenTasks(ctx context.Context, today time.Time) (open int64, overdue int64, err error)

	// CountPendingQuotes returns quotes still in draft or sent
	CountPendingQuotes(ctx context.Context) (int64, error)
}
