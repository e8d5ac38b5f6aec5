package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/fathomdata/retrieval/pkg/logger"
)

// FXModule defines the Fx module for the metrics package.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the /metrics server on application
// start and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", err, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}
			}()
			log.Info("metrics server started", nil, map[string]interface{}{
				"address": m.Server.Addr,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
