package services

import (
	"context"
	"fmt"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"
	"github.com/catatduit/go-catatduit/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, in models.CreateUserIn) (output *models.User, err error)
	GetByTelegramID(ctx context.Context, telegramID string) (output *models.User, err error)
	GetOrRegisterByTelegram(ctx context.Context, telegramID, name string) (output *models.User, err error)
}

type user service

var _ UserService = (*user)(nil)

// Register creates the user together with their default wallet so a fresh
// account can record transactions immediately.
func (s *user) Register(ctx context.Context, in models.CreateUserIn) (output *models.User, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	exist, err := s.srv.sqlRepo.GetUserRepository().GetByTelegramID(ctx, in.TelegramID)
	if err != nil {
		err = common.ErrUnableToCreate
		return
	}
	if exist != nil {
		err = common.ErrDataExist
		return
	}

	err = s.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		created, errAtomic := r.GetUserRepository().Create(ctx, &in)
		if errAtomic != nil {
			return fmt.Errorf("unable to create user: %w", errAtomic)
		}

		_, errAtomic = r.GetWalletRepository().Create(ctx, &models.CreateWalletIn{
			UserID: created.ID,
			Name:   models.DefaultWalletName,
		})
		if errAtomic != nil {
			return fmt.Errorf("unable to create default wallet: %w", errAtomic)
		}

		output = created
		return nil
	})

	return
}

func (s *user) GetByTelegramID(ctx context.Context, telegramID string) (output *models.User, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetUserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if output == nil {
		err = common.ErrUserNotFound
		return
	}

	return
}

// GetOrRegisterByTelegram is the bot entrypoint: every chat update maps to a
// user, creating one on first contact.
func (s *user) GetOrRegisterByTelegram(ctx context.Context, telegramID, name string) (output *models.User, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetUserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if output != nil {
		return
	}

	return s.Register(ctx, models.CreateUserIn{TelegramID: telegramID, Name: name})
}
