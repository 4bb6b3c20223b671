package services

import (
	"github.com/catatduit/go-catatduit/internal/common/metrics"
	"github.com/catatduit/go-catatduit/internal/common/ocrclient"
	"github.com/catatduit/go-catatduit/internal/common/retry"
	"github.com/catatduit/go-catatduit/internal/common/telegram"
	"github.com/catatduit/go-catatduit/internal/config"
	"github.com/catatduit/go-catatduit/internal/nlp"
	"github.com/catatduit/go-catatduit/internal/receipt"
	"github.com/catatduit/go-catatduit/internal/repositories"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	sqlRepo   repositories.SQLRepository
	cacheRepo repositories.CacheRepository

	telegramClient telegram.Client
	ocrProvider    ocrclient.Provider
	ebRetry        retry.Retryer
	metrics        metrics.Metrics

	parser     *nlp.Parser
	structurer *receipt.Structurer

	common service

	User        *user
	Wallet      *wallet
	Category    *category
	Transaction *transaction
	Analytics   *analytics
	Inference   *inference
	Bot         *bot
}

func New(
	conf config.Config,
	sqlRepo repositories.SQLRepository,
	cacheRepo repositories.CacheRepository,
	telegramClient telegram.Client,
	ocrProvider ocrclient.Provider,
	ebRetry retry.Retryer,
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:           conf,
		sqlRepo:        sqlRepo,
		cacheRepo:      cacheRepo,
		telegramClient: telegramClient,
		ocrProvider:    ocrProvider,
		ebRetry:        ebRetry,
		metrics:        metrics,
		parser:         nlp.NewParser(),
		structurer:     receipt.NewStructurer(),
	}
	srv.common.srv = srv
	srv.User = (*user)(&srv.common)
	srv.Wallet = (*wallet)(&srv.common)
	srv.Category = (*category)(&srv.common)
	srv.Transaction = (*transaction)(&srv.common)
	srv.Analytics = (*analytics)(&srv.common)
	srv.Inference = (*inference)(&srv.common)
	srv.Bot = (*bot)(&srv.common)

	return srv
}
