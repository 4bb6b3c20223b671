package repositories

import (
	"context"
	"database/sql"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, in *models.CreateCategoryIn) (created *models.Category, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetByNameAndType(ctx context.Context, name string, txType models.TransactionType) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type categoryRepository sqlRepo

var _ CategoryRepository = (*categoryRepository)(nil)

func (r *categoryRepository) Create(ctx context.Context, in *models.CreateCategoryIn) (created *models.Category, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	if in.ColorHex == "" {
		in.ColorHex = models.DefaultCategoryColor
	}
	if in.Icon == "" {
		in.Icon = models.DefaultCategoryIcon
	}

	var result models.Category
	err = db.QueryRowContext(ctx, queryCategoryCreate,
		in.Name,
		in.ColorHex,
		in.Icon,
		in.Type,
		in.IsSystem,
	).Scan(
		&result.ID,
		&result.Name,
		&result.ColorHex,
		&result.Icon,
		&result.Type,
		&result.IsSystem,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDataExist
		}
		return nil, err
	}

	return &result, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (category *models.Category, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryCategoryGetByID, id)
}

func (r *categoryRepository) GetByNameAndType(ctx context.Context, name string, txType models.TransactionType) (category *models.Category, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryCategoryGetByNameAndType, name, txType)
}

func (r *categoryRepository) List(ctx context.Context) (categories []models.Category, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	rows, err := db.QueryContext(ctx, queryCategoryList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.ColorHex,
			&category.Icon,
			&category.Type,
			&category.IsSystem,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *categoryRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*models.Category, error) {
	db := r.r.extractTxRead(ctx)

	var category models.Category
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&category.ID,
		&category.Name,
		&category.ColorHex,
		&category.Icon,
		&category.Type,
		&category.IsSystem,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}
