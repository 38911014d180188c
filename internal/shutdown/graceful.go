// Package shutdown stops long-running components on OS signals.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/careerhub/frontdesk/internal/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives or parent is done, then
// shuts s down within timeout.
func Graceful(parent context.Context, signals []os.Signal, s Stoppable, timeout time.Duration, log *logging.Logger) error {
	sigCtx, stop := signal.NotifyContext(parent, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
		return err
	}
	log.Info("graceful shutdown completed successfully")
	return nil
}
