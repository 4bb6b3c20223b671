package services

import (
	"context"
	"fmt"
	"time"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"
	"github.com/catatduit/go-catatduit/internal/repositories"

	"github.com/google/uuid"
)

type TransactionService interface {
	Create(ctx context.Context, in models.CreateTransactionIn) (output *models.Transaction, err error)
	GetByID(ctx context.Context, id uuid.UUID) (output *models.Transaction, err error)
	List(ctx context.Context, opts models.GetTransactionListIn) (output []models.Transaction, total int, err error)
	Undo(ctx context.Context, userID uuid.UUID) (undone *models.Transaction, err error)
	Today(ctx context.Context, userID uuid.UUID) (output *models.DailySummary, err error)
}

type transaction service

var _ TransactionService = (*transaction)(nil)

// Create records the transaction and applies it to the wallet balance in one
// database transaction. A rejected wallet or category fails before anything
// is written.
func (s *transaction) Create(ctx context.Context, in models.CreateTransactionIn) (output *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if !in.Amount.IsPositive() {
		err = common.ErrInvalidAmount
		return
	}

	wlt, err := s.srv.sqlRepo.GetWalletRepository().GetByID(ctx, in.WalletID)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if wlt == nil || wlt.UserID != in.UserID {
		err = common.ErrWalletNotFound
		return
	}

	cat, err := s.srv.sqlRepo.GetCategoryRepository().GetByID(ctx, in.CategoryID)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if cat == nil {
		err = common.ErrCategoryNotFound
		return
	}

	err = s.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		created, errAtomic := r.GetTransactionRepository().Create(ctx, &in)
		if errAtomic != nil {
			return fmt.Errorf("unable to create transaction: %w", errAtomic)
		}

		errAtomic = r.GetWalletRepository().AddBalance(ctx, in.WalletID, balanceDelta(in.Type, in.Amount))
		if errAtomic != nil {
			return fmt.Errorf("unable to adjust wallet balance: %w", errAtomic)
		}

		created.CategoryName = cat.Name
		created.WalletName = wlt.Name
		output = created
		return nil
	})

	return
}

func (s *transaction) GetByID(ctx context.Context, id uuid.UUID) (output *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetTransactionRepository().GetByID(ctx, id)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if output == nil {
		err = common.ErrTransactionNotFound
		return
	}

	return
}

func (s *transaction) List(ctx context.Context, opts models.GetTransactionListIn) (output []models.Transaction, total int, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetTransactionRepository().List(ctx, opts)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	total, err = s.srv.sqlRepo.GetTransactionRepository().CountAll(ctx, opts)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	return
}

// Undo removes the user's most recent transaction and rolls its amount back
// out of the wallet balance.
func (s *transaction) Undo(ctx context.Context, userID uuid.UUID) (undone *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	last, err := s.srv.sqlRepo.GetTransactionRepository().GetLastByUserID(ctx, userID)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if last == nil {
		err = common.ErrNothingToUndo
		return
	}

	err = s.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		errAtomic := r.GetTransactionRepository().Delete(ctx, last.ID)
		if errAtomic != nil {
			return fmt.Errorf("unable to delete transaction: %w", errAtomic)
		}

		errAtomic = r.GetWalletRepository().AddBalance(ctx, last.WalletID, balanceDelta(last.Type, last.Amount).Neg())
		if errAtomic != nil {
			return fmt.Errorf("unable to restore wallet balance: %w", errAtomic)
		}

		undone = last
		return nil
	})

	return
}

// Today summarizes the current day for the /today bot command.
func (s *transaction) Today(ctx context.Context, userID uuid.UUID) (output *models.DailySummary, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	from, to := dayRange(time.Now())

	income, expense, err := s.srv.sqlRepo.GetTransactionRepository().SumByTypeBetween(ctx, userID, from, to)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	transactions, err := s.srv.sqlRepo.GetTransactionRepository().List(ctx, models.GetTransactionListIn{
		UserID:   userID,
		DateFrom: from,
		DateTo:   to,
		SortBy:   models.SortByASC,
	})
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	output = &models.DailySummary{
		Date:         from,
		TotalIncome:  income,
		TotalExpense: expense,
		Transactions: transactions,
	}

	return
}
