// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the request id set by the rayid middleware and attaches it
// to every entry, so all logs of one request can be correlated. WithActor tags
// entries with the authenticated operator performing a stock-take operation.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Scan failed", zap.Error(err))
package logger
