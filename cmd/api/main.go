package main

import (
	"context"
	"sync"
	"time"

	"github.com/catatduit/go-catatduit/cmd/setup"
	"github.com/catatduit/go-catatduit/internal/common/graceful"
	"github.com/catatduit/go-catatduit/internal/deliveries/http"
	"github.com/catatduit/go-catatduit/internal/logging"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("api")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stopperContract...)

		logging.Fatalf(ctx, "failed to setup app: %v", err)
	}

	httpServer := http.NewHTTPServer(ctx, s.Config, s.NewRelic,
		s.Service.User,
		s.Service.Wallet,
		s.Service.Category,
		s.Service.Transaction,
		s.Service.Analytics,
		s.Service.Inference,
		s.Service.Bot,
	)

	starters = append(starters, httpServer.Start())
	stoppers = append(stoppers, httpServer.Stop())
	stoppers = append(stoppers, stopperContract...)

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		graceful.StartProcessAtBackground(starters...)
		graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
		wg.Done()
	}()
	wg.Wait()
	logging.Info(ctx, "http server stopped!")
}
