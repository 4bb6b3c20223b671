package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/catatduit/go-catatduit/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAnalyticsService_GetMonthly(t *testing.T) {
	userID := uuid.New()
	monthKey := time.Now().Format("2006-01")

	t.Run("serves summary from fresh cache", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockAnalyticsCacheRepository.EXPECT().
			GetByUserMonth(gomock.Any(), userID, monthKey).
			Return(&models.AnalyticsCache{
				UserID:        userID,
				Month:         monthKey,
				TotalIncome:   decimal.NewFromInt(5000000),
				TotalExpense:  decimal.NewFromInt(1265000),
				NetIncome:     decimal.NewFromInt(3735000),
				ExpenseRatio:  0.253,
				SavingRatio:   0.747,
				TopCategories: `[{"category":"Tagihan","amount":1250000,"percentage":98.8,"colorHex":"#F39C12","icon":"bolt"}]`,
				UpdatedAt:     time.Now(),
			}, nil)
		h.mockTrxRepository.EXPECT().
			DailyExpenseBetween(gomock.Any(), userID, gomock.Any(), gomock.Any()).
			Return(nil, nil)
		h.mockTrxRepository.EXPECT().
			CountBetween(gomock.Any(), userID, gomock.Any(), gomock.Any()).
			Return(14, nil)

		out, err := h.services.Analytics.GetMonthly(context.Background(), userID, "")
		require.NoError(t, err)
		assert.Equal(t, monthKey, out.Summary.Month)
		assert.Equal(t, float64(5000000), out.Summary.TotalIncome)
		require.Len(t, out.CategoryBreakdown, 1)
		assert.Equal(t, "Tagihan", out.CategoryBreakdown[0].Category)
		assert.Len(t, out.WeeklyTrend, 7)
		assert.Equal(t, 14, out.TransactionFrequency)
	})

	t.Run("computes and caches on stale cache", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockAnalyticsCacheRepository.EXPECT().
			GetByUserMonth(gomock.Any(), userID, "2026-07").
			Return(&models.AnalyticsCache{
				UserID:    userID,
				Month:     "2026-07",
				UpdatedAt: time.Now().Add(-2 * time.Hour),
			}, nil)
		h.mockTrxRepository.EXPECT().
			SumByTypeBetween(gomock.Any(), userID, gomock.Any(), gomock.Any()).
			Return(decimal.NewFromInt(4000000), decimal.NewFromInt(1000000), nil)
		h.mockTrxRepository.EXPECT().
			TopCategoriesBetween(gomock.Any(), userID, gomock.Any(), gomock.Any(), uint64(5)).
			Return([]models.CategoryAggregate{
				{Name: "Makanan", ColorHex: "#E74C3C", Icon: "restaurant", Total: decimal.NewFromInt(600000)},
				{Name: "Transportasi", ColorHex: "#3498DB", Icon: "car", Total: decimal.NewFromInt(400000)},
			}, nil)
		h.mockAnalyticsCacheRepository.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in *models.AnalyticsCache) (*models.AnalyticsCache, error) {
				assert.Equal(t, "2026-07", in.Month)
				assert.InDelta(t, 0.25, in.ExpenseRatio, 1e-9)
				assert.InDelta(t, 0.75, in.SavingRatio, 1e-9)
				assert.Contains(t, in.TopCategories, "Makanan")
				return in, nil
			})
		h.mockTrxRepository.EXPECT().
			DailyExpenseBetween(gomock.Any(), userID, gomock.Any(), gomock.Any()).
			Return([]models.DailyExpense{
				{Date: time.Now().AddDate(0, 0, -1), Total: decimal.NewFromInt(50000)},
			}, nil)
		h.mockTrxRepository.EXPECT().
			CountBetween(gomock.Any(), userID, gomock.Any(), gomock.Any()).
			Return(30, nil)

		out, err := h.services.Analytics.GetMonthly(context.Background(), userID, "2026-07")
		require.NoError(t, err)
		assert.Equal(t, float64(3000000), out.Summary.NetIncome)
		require.Len(t, out.CategoryBreakdown, 2)
		assert.InDelta(t, 60.0, out.CategoryBreakdown[0].Percentage, 1e-9)
		assert.Len(t, out.WeeklyTrend, 7)

		var daily float64
		for _, point := range out.WeeklyTrend {
			daily += point.Expense
		}
		assert.Equal(t, float64(50000), daily)
	})

	t.Run("rejects malformed month", func(t *testing.T) {
		h := newTestServiceHelper(t)

		_, err := h.services.Analytics.GetMonthly(context.Background(), userID, "08-2026")
		assert.Error(t, err)
	})
}
