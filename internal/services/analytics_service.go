package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topCategoriesLimit = 5

type AnalyticsService interface {
	GetMonthly(ctx context.Context, userID uuid.UUID, month string) (output *models.AnalyticsOut, err error)
}

type analytics service

var _ AnalyticsService = (*analytics)(nil)

// GetMonthly builds the month dashboard: summary and category breakdown are
// served from analytics_cache while it is fresh, the weekly trend and
// transaction frequency are always computed live.
func (s *analytics) GetMonthly(ctx context.Context, userID uuid.UUID, month string) (output *models.AnalyticsOut, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	now := time.Now()

	from, to, err := monthRange(month, now)
	if err != nil {
		err = fmt.Errorf("%w, root cause: %v", common.ErrValidation, err)
		return
	}
	monthKey := from.Format(monthLayout)

	summary, breakdown, err := s.monthlySummary(ctx, userID, monthKey, from, to)
	if err != nil {
		return
	}

	trend, err := s.weeklyTrend(ctx, userID, now)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	frequency, err := s.srv.sqlRepo.GetTransactionRepository().CountBetween(ctx, userID, from, to)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	output = &models.AnalyticsOut{
		Kind:                 "analytics",
		Summary:              *summary,
		CategoryBreakdown:    breakdown,
		WeeklyTrend:          trend,
		TransactionFrequency: frequency,
	}

	return
}

func (s *analytics) monthlySummary(ctx context.Context, userID uuid.UUID, monthKey string, from, to time.Time) (*models.MonthlySummary, []models.CategoryBreakdown, error) {
	cached, err := s.srv.sqlRepo.GetAnalyticsCacheRepository().GetByUserMonth(ctx, userID, monthKey)
	if err != nil {
		return nil, nil, common.ErrInternalServerError
	}
	if cached != nil && time.Since(cached.UpdatedAt) < s.srv.conf.Analytics.CacheTTL {
		summary := &models.MonthlySummary{
			Month:        cached.Month,
			TotalIncome:  cached.TotalIncome.InexactFloat64(),
			TotalExpense: cached.TotalExpense.InexactFloat64(),
			NetIncome:    cached.NetIncome.InexactFloat64(),
			ExpenseRatio: cached.ExpenseRatio,
			SavingRatio:  cached.SavingRatio,
		}

		var breakdown []models.CategoryBreakdown
		if err := json.Unmarshal([]byte(cached.TopCategories), &breakdown); err != nil {
			// A corrupt cache entry is recomputed, not surfaced.
			logging.Warn(ctx, "[ANALYTICS.CACHE.UNMARSHAL]", logging.Err(err))
		} else {
			return summary, breakdown, nil
		}
	}

	return s.computeMonthlySummary(ctx, userID, monthKey, from, to)
}

func (s *analytics) computeMonthlySummary(ctx context.Context, userID uuid.UUID, monthKey string, from, to time.Time) (*models.MonthlySummary, []models.CategoryBreakdown, error) {
	trxRepo := s.srv.sqlRepo.GetTransactionRepository()

	income, expense, err := trxRepo.SumByTypeBetween(ctx, userID, from, to)
	if err != nil {
		return nil, nil, common.ErrInternalServerError
	}
	net := income.Sub(expense)

	var expenseRatio, savingRatio float64
	if income.IsPositive() {
		expenseRatio = expense.Div(income).InexactFloat64()
		savingRatio = net.Div(income).InexactFloat64()
	}

	aggregates, err := trxRepo.TopCategoriesBetween(ctx, userID, from, to, topCategoriesLimit)
	if err != nil {
		return nil, nil, common.ErrInternalServerError
	}

	breakdown := make([]models.CategoryBreakdown, 0, len(aggregates))
	for _, agg := range aggregates {
		var percentage float64
		if expense.IsPositive() {
			percentage = agg.Total.Div(expense).Mul(hundred).InexactFloat64()
		}
		breakdown = append(breakdown, models.CategoryBreakdown{
			Category:   agg.Name,
			Amount:     agg.Total.InexactFloat64(),
			Percentage: percentage,
			ColorHex:   agg.ColorHex,
			Icon:       agg.Icon,
		})
	}

	summary := &models.MonthlySummary{
		Month:        monthKey,
		TotalIncome:  income.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
		NetIncome:    net.InexactFloat64(),
		ExpenseRatio: expenseRatio,
		SavingRatio:  savingRatio,
	}

	s.storeCache(ctx, userID, monthKey, summary, breakdown)

	return summary, breakdown, nil
}

// storeCache is best effort: a failed upsert costs a recomputation next call,
// never the response.
func (s *analytics) storeCache(ctx context.Context, userID uuid.UUID, monthKey string, summary *models.MonthlySummary, breakdown []models.CategoryBreakdown) {
	serialized, err := json.Marshal(breakdown)
	if err != nil {
		logging.Warn(ctx, "[ANALYTICS.CACHE.MARSHAL]", logging.Err(err))
		return
	}

	_, err = s.srv.sqlRepo.GetAnalyticsCacheRepository().Upsert(ctx, &models.AnalyticsCache{
		UserID:        userID,
		Month:         monthKey,
		TotalIncome:   decimal.NewFromFloat(summary.TotalIncome),
		TotalExpense:  decimal.NewFromFloat(summary.TotalExpense),
		NetIncome:     decimal.NewFromFloat(summary.NetIncome),
		ExpenseRatio:  summary.ExpenseRatio,
		SavingRatio:   summary.SavingRatio,
		TopCategories: string(serialized),
	})
	if err != nil {
		logging.Warn(ctx, "[ANALYTICS.CACHE.UPSERT]", logging.Err(err))
	}
}

const weeklyTrendDays = 7

// weeklyTrend covers the trailing seven days ending today, with zero-filled
// gaps so the chart always has seven points.
func (s *analytics) weeklyTrend(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.WeeklyTrendPoint, error) {
	start, _ := dayRange(now.AddDate(0, 0, -(weeklyTrendDays - 1)))
	_, end := dayRange(now)

	days, err := s.srv.sqlRepo.GetTransactionRepository().DailyExpenseBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, len(days))
	for _, day := range days {
		byDate[day.Date.Format(time.DateOnly)] = day.Total.InexactFloat64()
	}

	trend := make([]models.WeeklyTrendPoint, 0, weeklyTrendDays)
	for i := 0; i < weeklyTrendDays; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		trend = append(trend, models.WeeklyTrendPoint{Date: date, Expense: byDate[date]})
	}

	return trend, nil
}
