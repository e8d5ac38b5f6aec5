// Package logger provides structured logging for the retrieval engine.
//
// It wraps Uber's Zap logger with a small surface: leveled methods that
// take a message, an optional error, and optional field maps. Every
// component of the engine receives a *Logger through its constructor;
// there is no package-level global.
//
// Basic usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "retrieval",
//	})
//
//	log.Info("collection searched", nil, map[string]interface{}{
//		"collection": "ds_orders",
//		"hits":       12,
//	})
//
//	log.Error("keyword scan failed", err, map[string]interface{}{
//		"collection": "ds_orders",
//	})
//
// FX integration:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//
// All methods are safe for concurrent use.
package logger
