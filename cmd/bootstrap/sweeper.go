package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/pkg/config"
	"foodbridge/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the expiration sweep on a fixed cadence for the life
// of the process. The admin endpoint triggers the same command on demand.
func StartSweeper(lc fx.Lifecycle, sweep commands.SweepCommands, clk clock.Clock, cfg config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go runSweepLoop(ctx, done, sweep, clk, cfg.Sweep.Interval, logger)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func runSweepLoop(ctx context.Context, done chan<- struct{}, sweep commands.SweepCommands, clk clock.Clock, interval time.Duration, logger *slog.Logger) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("expiration sweeper started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("expiration sweeper stopped")
			return
		case <-ticker.C:
			result, err := sweep.SweepExpiredListings(ctx, clk.Now())
			if err != nil {
				logger.Error("expiration sweep failed", "error", err.Error())
				continue
			}
			if result.Processed > 0 || result.Failed > 0 {
				logger.Info("expiration sweep completed",
					"processed", result.Processed,
					"failed", result.Failed,
					"total_wasted", result.TotalWasted)
			}
		}
	}
}
