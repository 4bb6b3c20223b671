package services_test

import (
	"context"
	"testing"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserService_Register(t *testing.T) {
	userID := uuid.New()

	t.Run("creates user with default wallet", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(nil, nil)
		h.expectAtomic()
		h.mockUserRepository.EXPECT().
			Create(gomock.Any(), &models.CreateUserIn{TelegramID: "123456789", Name: "Budi"}).
			Return(&models.User{ID: userID, TelegramID: "123456789", Name: "Budi"}, nil)
		h.mockWalletRepository.EXPECT().
			Create(gomock.Any(), &models.CreateWalletIn{UserID: userID, Name: models.DefaultWalletName}).
			Return(&models.Wallet{ID: uuid.New(), UserID: userID, Name: models.DefaultWalletName}, nil)

		got, err := h.services.User.Register(context.Background(), models.CreateUserIn{TelegramID: "123456789", Name: "Budi"})
		require.NoError(t, err)
		assert.Equal(t, userID, got.ID)
	})

	t.Run("rejects duplicate telegram id", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(&models.User{ID: userID, TelegramID: "123456789"}, nil)

		_, err := h.services.User.Register(context.Background(), models.CreateUserIn{TelegramID: "123456789", Name: "Budi"})
		assert.ErrorIs(t, err, common.ErrDataExist)
	})

	t.Run("rolls up wallet failure", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(nil, nil)
		h.expectAtomic()
		h.mockUserRepository.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&models.User{ID: userID}, nil)
		h.mockWalletRepository.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		_, err := h.services.User.Register(context.Background(), models.CreateUserIn{TelegramID: "123456789", Name: "Budi"})
		assert.Error(t, err)
	})
}

func TestUserService_GetByTelegramID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		h := newTestServiceHelper(t)

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "404").
			Return(nil, nil)

		_, err := h.services.User.GetByTelegramID(context.Background(), "404")
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})
}

func TestUserService_GetOrRegisterByTelegram(t *testing.T) {
	t.Run("returns existing user without registering", func(t *testing.T) {
		h := newTestServiceHelper(t)
		existing := &models.User{ID: uuid.New(), TelegramID: "123456789", Name: "Budi"}

		h.mockUserRepository.EXPECT().
			GetByTelegramID(gomock.Any(), "123456789").
			Return(existing, nil)

		got, err := h.services.User.GetOrRegisterByTelegram(context.Background(), "123456789", "Budi")
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})
}
