package services_test

import (
	"context"
	"testing"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTransactionService_Create(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()
	categoryID := uuid.New()

	baseIn := models.CreateTransactionIn{
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(15000),
		Source:     models.TransactionSourceManual,
	}

	t.Run("rejects non positive amount", func(t *testing.T) {
		h := newTestServiceHelper(t)

		in := baseIn
		in.Amount = decimal.Zero

		_, err := h.services.Transaction.Create(context.Background(), in)
		assert.ErrorIs(t, err, common.ErrInvalidAmount)
	})

	t.Run("rejects wallet of another user", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockWalletRepository.EXPECT().
			GetByID(gomock.Any(), walletID).
			Return(&models.Wallet{ID: walletID, UserID: uuid.New()}, nil)

		_, err := h.services.Transaction.Create(context.Background(), baseIn)
		assert.ErrorIs(t, err, common.ErrWalletNotFound)
	})

	t.Run("records expense and debits wallet", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockWalletRepository.EXPECT().
			GetByID(gomock.Any(), walletID).
			Return(&models.Wallet{ID: walletID, UserID: userID, Name: "Cash"}, nil)
		h.mockCategoryRepository.EXPECT().
			GetByID(gomock.Any(), categoryID).
			Return(&models.Category{ID: categoryID, Name: "Makanan"}, nil)
		h.expectAtomic()
		h.mockTrxRepository.EXPECT().
			Create(gomock.Any(), &baseIn).
			Return(&models.Transaction{ID: uuid.New(), UserID: userID, WalletID: walletID, Amount: baseIn.Amount, Type: baseIn.Type}, nil)
		h.mockWalletRepository.EXPECT().
			AddBalance(gomock.Any(), walletID, decimal.NewFromInt(-15000)).
			Return(nil)

		got, err := h.services.Transaction.Create(context.Background(), baseIn)
		require.NoError(t, err)
		assert.Equal(t, "Makanan", got.CategoryName)
		assert.Equal(t, "Cash", got.WalletName)
	})

	t.Run("records income and credits wallet", func(t *testing.T) {
		h := newTestServiceHelper(t)

		in := baseIn
		in.Type = models.TransactionTypeIncome
		in.Amount = decimal.NewFromInt(5000000)

		h.mockWalletRepository.EXPECT().
			GetByID(gomock.Any(), walletID).
			Return(&models.Wallet{ID: walletID, UserID: userID, Name: "Cash"}, nil)
		h.mockCategoryRepository.EXPECT().
			GetByID(gomock.Any(), categoryID).
			Return(&models.Category{ID: categoryID, Name: "Pemasukan"}, nil)
		h.expectAtomic()
		h.mockTrxRepository.EXPECT().
			Create(gomock.Any(), &in).
			Return(&models.Transaction{ID: uuid.New(), Amount: in.Amount, Type: in.Type}, nil)
		h.mockWalletRepository.EXPECT().
			AddBalance(gomock.Any(), walletID, decimal.NewFromInt(5000000)).
			Return(nil)

		_, err := h.services.Transaction.Create(context.Background(), in)
		assert.NoError(t, err)
	})
}

func TestTransactionService_Undo(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()

	t.Run("nothing to undo", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockTrxRepository.EXPECT().
			GetLastByUserID(gomock.Any(), userID).
			Return(nil, nil)

		_, err := h.services.Transaction.Undo(context.Background(), userID)
		assert.ErrorIs(t, err, common.ErrNothingToUndo)
	})

	t.Run("deletes latest expense and restores balance", func(t *testing.T) {
		h := newTestServiceHelper(t)

		last := &models.Transaction{
			ID:       uuid.New(),
			UserID:   userID,
			WalletID: walletID,
			Type:     models.TransactionTypeExpense,
			Amount:   decimal.NewFromInt(15000),
		}

		h.mockTrxRepository.EXPECT().
			GetLastByUserID(gomock.Any(), userID).
			Return(last, nil)
		h.expectAtomic()
		h.mockTrxRepository.EXPECT().
			Delete(gomock.Any(), last.ID).
			Return(nil)
		h.mockWalletRepository.EXPECT().
			AddBalance(gomock.Any(), walletID, decimal.NewFromInt(15000)).
			Return(nil)

		got, err := h.services.Transaction.Undo(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, last.ID, got.ID)
	})
}

func TestTransactionService_List(t *testing.T) {
	userID := uuid.New()
	opts := models.GetTransactionListIn{UserID: userID, Limit: 10}

	t.Run("returns items with total", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockTrxRepository.EXPECT().
			List(gomock.Any(), opts).
			Return([]models.Transaction{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
		h.mockTrxRepository.EXPECT().
			CountAll(gomock.Any(), opts).
			Return(12, nil)

		items, total, err := h.services.Transaction.List(context.Background(), opts)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, 12, total)
	})
}
