package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
)

type AnalyticsCacheRepository interface {
	Upsert(ctx context.Context, in *models.AnalyticsCache) (*models.AnalyticsCache, error)
	GetByUserMonth(ctx context.Context, userID uuid.UUID, month string) (*models.AnalyticsCache, error)
}

type analyticsCacheRepository sqlRepo

var _ AnalyticsCacheRepository = (*analyticsCacheRepository)(nil)

func (r *analyticsCacheRepository) Upsert(ctx context.Context, in *models.AnalyticsCache) (saved *models.AnalyticsCache, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	var result models.AnalyticsCache
	err = db.QueryRowContext(ctx, queryAnalyticsCacheUpsert,
		in.UserID,
		in.Month,
		in.TotalIncome,
		in.TotalExpense,
		in.NetIncome,
		in.ExpenseRatio,
		in.SavingRatio,
		in.TopCategories,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.Month,
		&result.TotalIncome,
		&result.TotalExpense,
		&result.NetIncome,
		&result.ExpenseRatio,
		&result.SavingRatio,
		&result.TopCategories,
		&result.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsCacheRepository) GetByUserMonth(ctx context.Context, userID uuid.UUID, month string) (cache *models.AnalyticsCache, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	var result models.AnalyticsCache
	err = db.QueryRowContext(ctx, queryAnalyticsCacheGetByUserMonth, userID, month).Scan(
		&result.ID,
		&result.UserID,
		&result.Month,
		&result.TotalIncome,
		&result.TotalExpense,
		&result.NetIncome,
		&result.ExpenseRatio,
		&result.SavingRatio,
		&result.TopCategories,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &result, nil
}
