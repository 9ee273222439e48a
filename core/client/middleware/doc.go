// Package middleware provides ready-made [client.MiddlewareConfig]
// implementations.
//
// Currently it ships a structured logging middleware on log/slog with
// three verbosity levels. Attach middleware at client construction:
//
//	c := client.New(provider,
//		client.WithMiddlewares(middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard)),
//	)
package middleware
