package services

import (
	"context"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"
)

type CategoryService interface {
	Create(ctx context.Context, in models.CreateCategoryIn) (output *models.Category, err error)
	GetAll(ctx context.Context) (output []models.Category, err error)
}

type category service

var _ CategoryService = (*category)(nil)

func (s *category) Create(ctx context.Context, in models.CreateCategoryIn) (output *models.Category, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	exist, err := s.srv.sqlRepo.GetCategoryRepository().GetByNameAndType(ctx, in.Name, in.Type)
	if err != nil {
		err = common.ErrUnableToCreate
		return
	}
	if exist != nil {
		err = common.ErrDataExist
		return
	}

	output, err = s.srv.sqlRepo.GetCategoryRepository().Create(ctx, &in)
	if err != nil {
		err = common.ErrUnableToCreate
		return
	}

	return
}

func (s *category) GetAll(ctx context.Context) (output []models.Category, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	output, err = s.srv.sqlRepo.GetCategoryRepository().List(ctx)
	if err != nil {
		err = common.ErrInternalServerError
		return
	}

	return
}
