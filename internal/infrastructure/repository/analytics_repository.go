package repository

import (
	"context"
	"time"

	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) paidSales(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(BusinessScope(ctx)).
		Where("status = ?", enum.SaleStatusPaid)
}

func (r *analyticsRepository) GetRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := r.paidSales(ctx)
	if !since.IsZero() {
		query = query.Where("sale_date >= ?", since)
	}

	var revenue decimal.NullDecimal
	if err := query.Select("COALESCE(SUM(total), 0)").Scan(&revenue).Error; err != nil {
		return decimal.Zero, err
	}
	return revenue.Decimal, nil
}

func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, days int, today time.Time) ([]domainRepo.DailyRevenueResult, error) {
	results := make([]domainRepo.DailyRevenueResult, 0, days)
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	// Generate dates for the last N days and get revenue for each
	for i := days - 1; i >= 0; i-- {
		startOfDay := start.AddDate(0, 0, -i)
		endOfDay := startOfDay.AddDate(0, 0, 1)

		var revenue decimal.NullDecimal
		err := r.paidSales(ctx).
			Where("sale_date >= ? AND sale_date < ?", startOfDay, endOfDay).
			Select("COALESCE(SUM(total), 0)").
			Scan(&revenue).Error
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailyRevenueResult{
			Date:    startOfDay,
			Revenue: revenue.Decimal,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult
	businessID, _ := GetBusinessID(ctx)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id as customer_id,
			c.name as customer_name,
			COALESCE(SUM(s.total), 0) as total_spent,
			COUNT(s.id) as sale_count
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.business_id = ? AND s.status = ? AND s.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC
		LIMIT ?
	`, businessID, enum.SaleStatusPaid, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CountLeadsByStatus(ctx context.Context) (map[enum.LeadStatus]int64, error) {
	var rows []struct {
		Status enum.LeadStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).
		Scopes(BusinessScope(ctx)).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.LeadStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(BusinessScope(ctx)).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountOpenTasks(ctx context.Context, today time.Time) (int64, int64, error) {
	var open, overdue int64
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entity.Task{}).
			Scopes(BusinessScope(ctx)).
			Where("completed = ?", false)
	}

	if err := base().Count(&open).Error; err != nil {
		return 0, 0, err
	}
	if err := base().Where("due_date IS NOT NULL AND due_date < ?", today).Count(&overdue).Error; err != nil {
		return 0, 0, err
	}
	return open, overdue, nil
}

func (r *analyticsRepository) CountPendingQuotes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Scopes(BusinessScope(ctx)).
		Where("status IN ?", []enum.QuoteStatus{enum.QuoteStatusDraft, enum.QuoteStatusSent}).
		Count(&count).Error
	return count, err
}
