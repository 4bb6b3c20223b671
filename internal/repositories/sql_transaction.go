package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, in *models.CreateTransactionIn) (*models.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetLastByUserID(ctx context.Context, userID uuid.UUID) (*models.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts models.GetTransactionListIn) ([]models.Transaction, error)
	CountAll(ctx context.Context, opts models.GetTransactionListIn) (total int, err error)
	SumByTypeBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (income, expense decimal.Decimal, err error)
	TopCategoriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, limit uint64) ([]models.CategoryAggregate, error)
	DailyExpenseBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.DailyExpense, error)
	CountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (total int, err error)
}

type transactionRepository sqlRepo

var _ TransactionRepository = (*transactionRepository)(nil)

func (r *transactionRepository) Create(ctx context.Context, in *models.CreateTransactionIn) (created *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	var result models.Transaction
	var description, rawInput, receiptImagePath sql.NullString

	err = db.QueryRowContext(ctx, queryTransactionCreate,
		in.UserID,
		in.WalletID,
		in.CategoryID,
		in.Type,
		in.Amount,
		in.Description,
		in.RawInput,
		in.AIConfidence,
		in.Source,
		in.ReceiptImagePath,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.WalletID,
		&result.CategoryID,
		&result.Type,
		&result.Amount,
		&description,
		&rawInput,
		&result.AIConfidence,
		&result.Source,
		&receiptImagePath,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	result.Description = description.String
	result.RawInput = rawInput.String
	result.ReceiptImagePath = receiptImagePath.String

	return &result, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (transaction *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryTransactionGetByID, id)
}

func (r *transactionRepository) GetLastByUserID(ctx context.Context, userID uuid.UUID) (transaction *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryTransactionGetLastByUser, userID)
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	res, err := db.ExecContext(ctx, queryTransactionDelete, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrNoRowsAffected
	}

	return nil
}

func (r *transactionRepository) List(ctx context.Context, opts models.GetTransactionListIn) (result []models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	query, args, err := buildListTransactionQuery(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var trx models.Transaction
		var description, rawInput, receiptImagePath sql.NullString

		err = rows.Scan(
			&trx.ID,
			&trx.UserID,
			&trx.WalletID,
			&trx.CategoryID,
			&trx.Type,
			&trx.Amount,
			&description,
			&rawInput,
			&trx.AIConfidence,
			&trx.Source,
			&receiptImagePath,
			&trx.CreatedAt,
			&trx.CategoryName,
			&trx.WalletName,
		)
		if err != nil {
			return nil, err
		}

		trx.Description = description.String
		trx.RawInput = rawInput.String
		trx.ReceiptImagePath = receiptImagePath.String

		result = append(result, trx)
	}

	if err := rows.Err(); err != nil {
		return result, err
	}

	return result, nil
}

func (r *transactionRepository) CountAll(ctx context.Context, opts models.GetTransactionListIn) (total int, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	query, args, err := buildCountTransactionQuery(opts)
	if err != nil {
		return total, fmt.Errorf("failed to build query: %w", err)
	}
	if err = db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return
	}

	return
}

func (r *transactionRepository) SumByTypeBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (income, expense decimal.Decimal, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	err = db.QueryRowContext(ctx, queryTransactionSumByTypeBetween, userID, from, to).
		Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return income, expense, nil
}

func (r *transactionRepository) TopCategoriesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, limit uint64) (result []models.CategoryAggregate, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	rows, err := db.QueryContext(ctx, queryTransactionTopCategoriesBetween, userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var agg models.CategoryAggregate
		if err := rows.Scan(&agg.Name, &agg.ColorHex, &agg.Icon, &agg.Total); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) DailyExpenseBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (result []models.DailyExpense, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	rows, err := db.QueryContext(ctx, queryTransactionDailyExpenseBetween, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day models.DailyExpense
		if err := rows.Scan(&day.Date, &day.Total); err != nil {
			return nil, err
		}
		result = append(result, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) CountBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (total int, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	if err = db.QueryRowContext(ctx, queryTransactionCountBetween, userID, from, to).Scan(&total); err != nil {
		return
	}

	return
}

func (r *transactionRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Transaction, error) {
	db := r.r.extractTxWrite(ctx)

	var trx models.Transaction
	var description, rawInput, receiptImagePath sql.NullString

	err := db.QueryRowContext(ctx, query, arg).Scan(
		&trx.ID,
		&trx.UserID,
		&trx.WalletID,
		&trx.CategoryID,
		&trx.Type,
		&trx.Amount,
		&description,
		&rawInput,
		&trx.AIConfidence,
		&trx.Source,
		&receiptImagePath,
		&trx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	trx.Description = description.String
	trx.RawInput = rawInput.String
	trx.ReceiptImagePath = receiptImagePath.String

	return &trx, nil
}
