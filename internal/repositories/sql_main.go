package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/catatduit/go-catatduit/internal/config"
	"github.com/catatduit/go-catatduit/internal/logging"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a postgres unique_violation. The
// services pre-check for duplicates, but a concurrent insert can still trip
// the unique index.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type sqlRepo struct {
	r *Repository
}

type Repository struct {
	dbWrite *sql.DB
	dbRead  *sql.DB
	config  config.Config
	common  sqlRepo

	ur  *userRepository
	wr  *walletRepository
	cr  *categoryRepository
	tr  *transactionRepository
	acr *analyticsCacheRepository
}

func NewSQLRepository(
	dbWrite *sql.DB,
	dbRead *sql.DB,
	cfg config.Config,
) *Repository {
	rtx := &Repository{
		dbWrite: dbWrite,
		dbRead:  dbRead,
		config:  cfg,
	}
	rtx.common.r = rtx
	rtx.ur = (*userRepository)(&rtx.common)
	rtx.wr = (*walletRepository)(&rtx.common)
	rtx.cr = (*categoryRepository)(&rtx.common)
	rtx.tr = (*transactionRepository)(&rtx.common)
	rtx.acr = (*analyticsCacheRepository)(&rtx.common)

	return rtx
}

type SQLRepository interface {
	Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) error
	GetUserRepository() UserRepository
	GetWalletRepository() WalletRepository
	GetCategoryRepository() CategoryRepository
	GetTransactionRepository() TransactionRepository
	GetAnalyticsCacheRepository() AnalyticsCacheRepository
}

var _ SQLRepository = (*Repository)(nil)

func (r *Repository) Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) (err error) {
	tx, err := r.dbWrite.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	logging.Info(ctx, "[DATABASE.TRANSACTION.BEGIN]")
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			err = fmt.Errorf("panic happened because: %v", p)
			logging.Panic(ctx, "[DATABASE.TRANSACTION.PANIC]", logging.Err(err))
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
			}
			logging.Warn(ctx, "[DATABASE.TRANSACTION.ROLLBACK]", logging.Err(err))
		} else {
			if err = tx.Commit(); err != nil {
				if errors.Is(err, sql.ErrTxDone) {
					logging.Warn(ctx, "[DATABASE.TRANSACTION.ALREADY_COMMITTED_OR_ROLLEDBACK]", logging.Err(err))
					err = nil
				}
			}

			logging.Info(ctx, "[DATABASE.TRANSACTION.COMMIT]")
		}
	}()
	ctx = injectTx(ctx, tx)
	err = steps(ctx, r)
	return
}

func (r *Repository) GetUserRepository() UserRepository {
	return r.ur
}

func (r *Repository) GetWalletRepository() WalletRepository {
	return r.wr
}

func (r *Repository) GetCategoryRepository() CategoryRepository {
	return r.cr
}

func (r *Repository) GetTransactionRepository() TransactionRepository {
	return r.tr
}

func (r *Repository) GetAnalyticsCacheRepository() AnalyticsCacheRepository {
	return r.acr
}
