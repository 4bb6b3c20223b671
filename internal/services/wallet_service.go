package services

import (
	"context"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
)

type WalletService interface {
	Create(ctx context.Context, in models.CreateWalletIn) (output *models.Wallet, err error)
	GetAll(ctx context.Context, userID uuid.UUID) (output []models.Wallet, err error)
	GetByID(ctx context.Context, id uuid.UUID) (output *models.Wallet, err error)
}

type wallet service

var _ WalletService = (*wallet)(nil)

func (s *wallet) Create(ctx context.Context, in models.CreateWalletIn) (output *models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	exist, err := s.srv.sqlRepo.GetWalletRepository().GetByUserAndName(ctx, in.UserID, in.Name)
	if err != nil {
		err = common.ErrUnableToCreate
		return
	}
	if exist != nil {
		err = common.ErrDataExist
		return
	}

	output, err = s.srv.sqlRepo.GetWalletRepository().Create(ctx, &in)
	if err != nil {
		err = common.ErrUnableToCreate
		return
	}

	return
}

func (s *wallet) GetAll(ctx context.Context, userID uuid.UUID) (output []models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetWalletRepository().GetByUserID(ctx, userID)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	return
}

func (s *wallet) GetByID(ctx context.Context, id uuid.UUID) (output *models.Wallet, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetWalletRepository().GetByID(ctx, id)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}
	if output == nil {
		err = common.ErrWalletNotFound
		return
	}

	return
}
