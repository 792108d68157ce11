package main

import (
	"context"
	"log/slog"
	"time"

	appanalysis "github.com/bryanwahyu/skinai/internal/application/analysis"
	appcapture "github.com/bryanwahyu/skinai/internal/application/capture"
	"github.com/bryanwahyu/skinai/internal/config"
)

// janitor hapus handoff expired dan flow yang ditinggal, sampai ctx selesai
func janitor(ctx context.Context, cfg *config.Config, flows *appcapture.Service, results *appanalysis.Service, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.PurgeEvery())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if n, err := results.PurgeExpired(ctx); err != nil {
			logger.Warn("purge expired results failed", "error", err)
		} else if n > 0 {
			logger.Info("purged expired results", "count", n)
		}
		if n, err := flows.PurgeIdle(ctx, cfg.FlowIdle()); err != nil {
			logger.Warn("purge idle flows failed", "error", err)
		} else if n > 0 {
			logger.Debug("purged idle flows", "count", n)
		}
	}
}
