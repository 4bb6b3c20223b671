package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/catatduit/go-catatduit/internal/common/graceful"
	commonhttp "github.com/catatduit/go-catatduit/internal/common/http"
	"github.com/catatduit/go-catatduit/internal/common/http/middleware"
	"github.com/catatduit/go-catatduit/internal/config"
	"github.com/catatduit/go-catatduit/internal/deliveries/http/health"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/services"

	v1analytics "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/analytics"
	v1category "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/category"
	v1inference "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/inference"
	v1telegramhook "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/telegramhook"
	v1transaction "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/transaction"
	v1user "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/user"
	v1wallet "github.com/catatduit/go-catatduit/internal/deliveries/http/v1/wallet"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		return s.e.Start(s.addr)
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			logging.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			logging.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// @title CATATDUIT API DOCUMENTATION
// @version 1.0
// @description Financial note-taking backend: transactions, wallets, analytics and the chat inference engine.

// @host localhost:9567
// @BasePath /api
// @schemes http
func NewHTTPServer(
	ctx context.Context,
	conf config.Config,
	nr *newrelic.Application,
	userService services.UserService,
	walletService services.WalletService,
	categoryService services.CategoryService,
	transactionService services.TransactionService,
	analyticsService services.AnalyticsService,
	inferenceService services.InferenceService,
	botService services.BotService,
) *svc {
	app := echo.New()

	svc := &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}

	m := middleware.NewMiddleware(conf)
	// options middleware
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())
	app.Use(m.Context())
	app.Use(m.Logger())

	if nr != nil {
		app.Use(nrecho.Middleware(nr))

		app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				txn := newrelic.FromContext(c.Request().Context())
				if txn != nil {
					txn.AddAttribute("x-correlation-id", logging.GetCorrelationID(c.Request().Context()))
				}

				return next(c)
			}
		})
	}

	// pprof
	// Endpoint debug/pprof/
	env := config.StringToEnvironment(conf.App.Env)
	if env != config.PROD_ENV {
		pprof.Register(app)
	}

	// prometheus metrics
	app.Use(echoprometheus.NewMiddleware(conf.App.Name))
	app.GET("/metrics", echoprometheus.NewHandler())

	// apiGroup
	apiGroup := app.Group("/api")

	// health check
	health.New(apiGroup)

	// v1Group
	v1Group := apiGroup.Group("/v1")

	// The webhook carries Telegram's own secret token, not the internal key.
	hookGroup := v1Group.Group("", m.TelegramWebhookAuth())
	v1telegramhook.New(hookGroup, botService)

	// v1Group middleware
	v1Group.Use(m.InternalAuth())
	// v1Group register api
	v1user.New(v1Group, userService)
	v1wallet.New(v1Group, walletService)
	v1category.New(v1Group, categoryService)
	v1transaction.New(v1Group, transactionService)
	v1analytics.New(v1Group, analyticsService)
	v1inference.New(v1Group, inferenceService)

	// prepare an endpoint for 'Not Found'.
	app.Any("*", func(c echo.Context) error {
		errorMessage := fmt.Errorf("route '%s' does not exist in this API", c.Request().URL)
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound, errorMessage)
	})

	return svc
}
