package repositories

import (
	"context"
	"database/sql"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletRepository interface {
	Create(ctx context.Context, in *models.CreateWalletIn) (created *models.Wallet, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error)
	GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*models.Wallet, error)
	// AddBalance applies a signed delta to the stored balance.
	AddBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type walletRepository sqlRepo

var _ WalletRepository = (*walletRepository)(nil)

func (r *walletRepository) Create(ctx context.Context, in *models.CreateWalletIn) (created *models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	if in.ColorHex == "" {
		in.ColorHex = models.DefaultWalletColor
	}
	if in.Icon == "" {
		in.Icon = models.DefaultWalletIcon
	}

	var result models.Wallet
	err = db.QueryRowContext(ctx, queryWalletCreate,
		in.UserID,
		in.Name,
		in.Balance,
		in.ColorHex,
		in.Icon,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.Name,
		&result.Balance,
		&result.ColorHex,
		&result.Icon,
		&result.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDataExist
		}
		return nil, err
	}

	return &result, nil
}

func (r *walletRepository) GetByID(ctx context.Context, id uuid.UUID) (wallet *models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryWalletGetByID, id)
}

func (r *walletRepository) GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (wallet *models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryWalletGetByUserAndName, userID, name)
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (wallets []models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxRead(ctx)

	rows, err := db.QueryContext(ctx, queryWalletListByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Wallet
	for rows.Next() {
		var wallet models.Wallet
		if err := rows.Scan(
			&wallet.ID,
			&wallet.UserID,
			&wallet.Name,
			&wallet.Balance,
			&wallet.ColorHex,
			&wallet.Icon,
			&wallet.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, wallet)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *walletRepository) AddBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	res, err := db.ExecContext(ctx, queryWalletAddBalance, delta, id)
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

func (r *walletRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*models.Wallet, error) {
	db := r.r.extractTxRead(ctx)

	var wallet models.Wallet
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Name,
		&wallet.Balance,
		&wallet.ColorHex,
		&wallet.Icon,
		&wallet.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &wallet, nil
}
