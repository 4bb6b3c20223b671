package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/catatduit/go-catatduit/internal/common/graceful"
	"github.com/catatduit/go-catatduit/internal/common/metrics"
	"github.com/catatduit/go-catatduit/internal/common/ocrclient"
	"github.com/catatduit/go-catatduit/internal/common/retry"
	"github.com/catatduit/go-catatduit/internal/common/telegram"
	"github.com/catatduit/go-catatduit/internal/config"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/repositories"
	"github.com/catatduit/go-catatduit/internal/services"

	"github.com/go-resty/resty/v2"
	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

type Setup struct {
	Config    config.Config
	NewRelic  *newrelic.Application
	WriteDB   *sql.DB
	ReadDB    *sql.DB
	Cache     *redis.Client
	RepoCache repositories.CacheRepository
	Service   *services.Services
	Metrics   metrics.Metrics
}

func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load("/config", ".", "./config")
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	logging.Init(cfg.App.Name,
		logging.WithLevel(cfg.App.LogLevel),
		logging.WithEnv(cfg.App.Env),
		logging.WithCaller(true),
	)

	stopper = append(stopper, func(ctx context.Context) error {
		logging.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)

	// metrics
	mtc := metrics.New()

	// connect to db master
	writeDB, readDB, err := setupPostgres(cfg)
	if err != nil {
		err = fmt.Errorf("failed connect to database: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error {
		var errs error

		if writeDB != nil {
			if err := writeDB.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("failed to close writeDB: %w", err))
			}
		}

		if readDB != nil {
			if err := readDB.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("failed to close readDB: %w", err))
			}
		}

		return errs
	})

	// connect to redis
	cache := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	_, err = cache.Ping(ctx).Result()
	if err != nil {
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return cache.Close() })

	if mtc != nil {
		// register DB write stat prometheus metrics
		err = mtc.RegisterDB(writeDB, cfg.App.Name+"-"+command+"-write", cfg.Postgres.Write.DbName)
		if err != nil {
			err = fmt.Errorf("failed register DB stat prometheus: %w", err)
			return
		}
		// register DB read stat prometheus metrics
		err = mtc.RegisterDB(readDB, cfg.App.Name+"-"+command+"-read", cfg.Postgres.Read.DbName)
		if err != nil {
			err = fmt.Errorf("failed register DB stat prometheus: %w", err)
			return
		}

		// register redis prometheus metrics
		err = mtc.RegisterRedis(cache, cfg.App.Name, command)
		if err != nil {
			err = fmt.Errorf("failed register redis prometheus: %w", err)
			return
		}
	}

	// register repository
	sqlRepo := repositories.NewSQLRepository(writeDB, readDB, cfg)
	cacheRepo := repositories.NewCacheRepository(cache)

	telegramClient := telegram.New(cfg.Telegram, newRestyClient(cfg.Telegram.Timeout, cfg.Telegram.RetryCount), mtc)
	if cfg.Telegram.WebhookURL != "" {
		if err = telegramClient.SetWebhook(ctx, cfg.Telegram.WebhookURL); err != nil {
			err = fmt.Errorf("failed to register telegram webhook: %w", err)
			return
		}
	}
	ocrProvider := ocrclient.New(cfg.OCRProvider, newRestyClient(cfg.OCRProvider.Timeout, cfg.OCRProvider.RetryCount), mtc)

	ebRetry := retry.NewExponentialBackOff(&cfg.ExponentialBackoff)

	// register service
	srv := services.New(
		cfg,
		sqlRepo,
		cacheRepo,
		telegramClient,
		ocrProvider,
		ebRetry,
		mtc,
	)

	return &Setup{
		Config:    cfg,
		NewRelic:  newRelic,
		WriteDB:   writeDB,
		ReadDB:    readDB,
		Cache:     cache,
		RepoCache: cacheRepo,
		Service:   srv,
		Metrics:   mtc,
	}, stopper, nil
}

func newRestyClient(timeout time.Duration, retryCount int) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if retryCount > 0 {
		client.SetRetryCount(retryCount)
	}
	return client
}

func setupPostgres(conf config.Config) (*sql.DB, *sql.DB, error) {
	writeDB, err := initDB(conf.Postgres.Write)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init write DB: %w", err)
	}

	readDB, err := initDB(conf.Postgres.Read)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init read DB: %w", err)
	}

	return writeDB, readDB, nil
}

func initDB(pgConf config.Database) (*sql.DB, error) {
	const (
		DefaultMaxOpen     = 10
		DefaultMaxIdle     = 10
		DefaultMaxLifetime = 3 // minutes
	)

	dsName := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		pgConf.DbHost, pgConf.DbPort, pgConf.DbUser, pgConf.DbPass, pgConf.DbName, pgConf.DbSchema,
	)

	db, err := sql.Open("nrpgx", dsName)
	if err != nil {
		return nil, err
	}

	if pgConf.MaxOpenConnection > 0 {
		db.SetMaxOpenConns(pgConf.MaxOpenConnection)
	} else {
		db.SetMaxOpenConns(DefaultMaxOpen)
	}

	if pgConf.MaxIdleConnection > 0 {
		db.SetMaxIdleConns(pgConf.MaxIdleConnection)
	} else {
		db.SetMaxIdleConns(DefaultMaxIdle)
	}

	if pgConf.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(pgConf.ConnMaxLifetime) * time.Minute)
	} else {
		db.SetConnMaxLifetime(time.Duration(DefaultMaxLifetime) * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if env := config.StringToEnvironment(cfg.App.Env); env == config.PROD_ENV {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.App.Name),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			func(config *newrelic.Config) {
				config.Logger = nrzap.Transform(logging.Logger())
			},
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logging.Errorf(ctx, "setupNR.NewApplication - %v", err)
		}
		if err = app.WaitForConnection(15 * time.Second); nil != err {
			logging.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
		}
		return app
	}
	return nil
}
