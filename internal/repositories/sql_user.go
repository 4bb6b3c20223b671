package repositories

import (
	"context"
	"database/sql"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, in *models.CreateUserIn) (created *models.User, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
}

type userRepository sqlRepo

var _ UserRepository = (*userRepository)(nil)

func (r *userRepository) Create(ctx context.Context, in *models.CreateUserIn) (created *models.User, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	db := r.r.extractTxWrite(ctx)

	var result models.User
	var email sql.NullString
	err = db.QueryRowContext(ctx, queryUserCreate,
		in.TelegramID,
		in.Name,
		sql.NullString{String: in.Email, Valid: in.Email != ""},
	).Scan(
		&result.ID,
		&result.TelegramID,
		&result.Name,
		&email,
		&result.IsPro,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDataExist
		}
		return nil, err
	}
	result.Email = email.String

	return &result, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (user *models.User, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryUserGetByID, id)
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID string) (user *models.User, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	return r.scanOne(ctx, queryUserGetByTelegramID, telegramID)
}

func (r *userRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	db := r.r.extractTxRead(ctx)

	var user models.User
	var email sql.NullString
	err := db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&email,
		&user.IsPro,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.Email = email.String

	return &user, nil
}
