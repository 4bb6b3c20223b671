package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slices"
)

// ProcessStarter blocks until its process exits.
type ProcessStarter func() error

// ProcessStopper shuts one process down within the ctx deadline.
type ProcessStopper func(ctx context.Context) error

type ProcessStartStopper interface {
	Start() ProcessStarter
	Stop() ProcessStopper
}

func StartProcessAtBackground(starters ...ProcessStarter) {
	for _, start := range starters {
		if start == nil {
			continue
		}
		go func(run func() error) {
			_ = run()
		}(start)
	}
}

// StopProcessAtBackground blocks until SIGINT/SIGTERM (or SIGUSR1, which some
// schedulers send first), then runs the stoppers.
func StopProcessAtBackground(duration time.Duration, stoppers ...ProcessStopper) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)

	<-sig
	StopProcess(duration, stoppers...)
}

// StopProcess runs stoppers in reverse registration order, each with its own
// timeout, so dependents shut down before their dependencies.
func StopProcess(duration time.Duration, stoppers ...ProcessStopper) {
	slices.Reverse(stoppers)

	for _, stop := range stoppers {
		if stop == nil {
			continue
		}
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), duration)
			defer cancel()
			_ = stop(ctx)
		}()
	}
}
