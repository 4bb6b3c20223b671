package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/nlp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInferenceService_ParseText(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()
	categoryID := uuid.New()
	usr := &models.User{ID: userID, TelegramID: "123456789", Name: "Budi"}

	t.Run("confident parse is recorded immediately", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(usr, nil)
		h.mockWalletRepository.EXPECT().
			GetByUserAndName(gomock.Any(), userID, "GoPay").
			Return(&models.Wallet{ID: walletID, UserID: userID, Name: "GoPay"}, nil)
		h.mockCategoryRepository.EXPECT().
			GetByNameAndType(gomock.Any(), "Makanan", models.TransactionTypeExpense).
			Return(&models.Category{ID: categoryID, Name: "Makanan", Type: models.TransactionTypeExpense}, nil)

		// Transaction.Create validation and atomic write.
		h.mockWalletRepository.EXPECT().
			GetByID(gomock.Any(), walletID).
			Return(&models.Wallet{ID: walletID, UserID: userID, Name: "GoPay"}, nil)
		h.mockCategoryRepository.EXPECT().
			GetByID(gomock.Any(), categoryID).
			Return(&models.Category{ID: categoryID, Name: "Makanan"}, nil)
		h.expectAtomic()
		h.mockTrxRepository.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in *models.CreateTransactionIn) (*models.Transaction, error) {
				assert.Equal(t, models.TransactionSourceChat, in.Source)
				assert.Equal(t, "beli bakso 15rb pake gopay", in.RawInput)
				assert.True(t, in.Amount.Equal(decimal.NewFromInt(15000)))
				return &models.Transaction{ID: uuid.New(), Amount: in.Amount}, nil
			})
		h.mockWalletRepository.EXPECT().
			AddBalance(gomock.Any(), walletID, gomock.Any()).
			Return(nil)

		out, err := h.services.Inference.ParseText(context.Background(), models.ParseTextIn{
			TelegramID: "123456789",
			Text:       "beli bakso 15rb pake gopay",
		})
		require.NoError(t, err)
		assert.True(t, out.AutoAccepted)
		assert.Empty(t, out.PendingID)
		assert.Equal(t, nlp.IntentExpense, out.Result.Intent)
	})

	t.Run("weak parse is parked as pending", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(usr, nil)
		h.mockCacheRepository.EXPECT().
			Set(gomock.Any(), "pending_parse:123456789", gomock.Any(), 5*time.Minute).
			DoAndReturn(func(_ context.Context, _ string, value any, _ time.Duration) error {
				var pending models.PendingParse
				require.NoError(t, json.Unmarshal(value.([]byte), &pending))
				assert.Equal(t, "bayar parkir", pending.RawText)
				assert.NotEmpty(t, pending.ID)
				return nil
			})

		out, err := h.services.Inference.ParseText(context.Background(), models.ParseTextIn{
			TelegramID: "123456789",
			Text:       "bayar parkir",
		})
		require.NoError(t, err)
		assert.False(t, out.AutoAccepted)
		assert.NotEmpty(t, out.PendingID)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "404").
			Return(nil, nil)

		_, err := h.services.Inference.ParseText(context.Background(), models.ParseTextIn{
			TelegramID: "404",
			Text:       "beli kopi 20rb",
		})
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})
}

func TestInferenceService_ConfirmPending(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()
	categoryID := uuid.New()
	usr := &models.User{ID: userID, TelegramID: "123456789"}

	pending := models.PendingParse{
		ID:         uuid.NewString(),
		TelegramID: "123456789",
		RawText:    "bayar parkir 2000",
		Result: nlp.ParsedTransaction{
			Intent:      nlp.IntentExpense,
			Amount:      2000,
			Currency:    "IDR",
			Category:    "Transportasi",
			Description: "bayar parkir 2000",
			Confidence:  0.74,
		},
		CreatedAt: time.Now(),
	}
	payload, _ := json.Marshal(pending)

	t.Run("records the parked parse", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockCacheRepository.EXPECT().
			Get(gomock.Any(), "pending_parse:123456789").
			Return(string(payload), nil)
		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(usr, nil)
		h.mockWalletRepository.EXPECT().
			GetByUserAndName(gomock.Any(), userID, models.DefaultWalletName).
			Return(&models.Wallet{ID: walletID, UserID: userID, Name: models.DefaultWalletName}, nil)
		h.mockCategoryRepository.EXPECT().
			GetByNameAndType(gomock.Any(), "Transportasi", models.TransactionTypeExpense).
			Return(&models.Category{ID: categoryID, Name: "Transportasi"}, nil)
		h.mockWalletRepository.EXPECT().
			GetByID(gomock.Any(), walletID).
			Return(&models.Wallet{ID: walletID, UserID: userID, Name: models.DefaultWalletName}, nil)
		h.mockCategoryRepository.EXPECT().
			GetByID(gomock.Any(), categoryID).
			Return(&models.Category{ID: categoryID, Name: "Transportasi"}, nil)
		h.expectAtomic()
		h.mockTrxRepository.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&models.Transaction{ID: uuid.New()}, nil)
		h.mockWalletRepository.EXPECT().
			AddBalance(gomock.Any(), walletID, gomock.Any()).
			Return(nil)
		h.mockCacheRepository.EXPECT().
			Del(gomock.Any(), "pending_parse:123456789").
			Return(nil)

		_, err := h.services.Inference.ConfirmPending(context.Background(), "123456789")
		assert.NoError(t, err)
	})

	t.Run("nothing pending", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockCacheRepository.EXPECT().
			Get(gomock.Any(), "pending_parse:123456789").
			Return("", common.ErrDataNotFound)

		_, err := h.services.Inference.ConfirmPending(context.Background(), "123456789")
		assert.ErrorIs(t, err, common.ErrPendingParseNotFound)
	})
}

func TestInferenceService_RejectPending(t *testing.T) {
	t.Run("drops the parked parse", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockCacheRepository.EXPECT().
			Get(gomock.Any(), "pending_parse:123456789").
			Return(`{"id":"x","telegramId":"123456789"}`, nil)
		h.mockCacheRepository.EXPECT().
			Del(gomock.Any(), "pending_parse:123456789").
			Return(nil)

		assert.NoError(t, h.services.Inference.RejectPending(context.Background(), "123456789"))
	})

	t.Run("nothing pending", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockCacheRepository.EXPECT().
			Get(gomock.Any(), "pending_parse:123456789").
			Return("", common.ErrDataNotFound)

		err := h.services.Inference.RejectPending(context.Background(), "123456789")
		assert.ErrorIs(t, err, common.ErrPendingParseNotFound)
	})
}

func TestInferenceService_StructureReceipt(t *testing.T) {
	t.Run("structures a readable receipt", func(t *testing.T) {
		h := newTestServiceHelper(t)

		out, err := h.services.Inference.StructureReceipt(context.Background(), models.StructureReceiptIn{
			TelegramID: "123456789",
			RawText:    "Indomaret\nTOTAL: Rp 47.500",
		})
		require.NoError(t, err)
		assert.Equal(t, float64(47500), out.Result.TotalAmount)
		assert.Equal(t, "Indomaret", out.Result.MerchantName)
	})

	t.Run("rejects a receipt without a total", func(t *testing.T) {
		h := newTestServiceHelper(t)

		_, err := h.services.Inference.StructureReceipt(context.Background(), models.StructureReceiptIn{
			TelegramID: "123456789",
			RawText:    "tidak ada angka sama sekali",
		})
		assert.ErrorIs(t, err, common.ErrUnreadableReceipt)
	})
}
