// Package logger provides a thin factory around log/slog used across the
// storefront SDK. It produces loggers with consistent formatting, static
// attributes and optional context-based attribute injection (for example
// per-request IDs attached by the API client).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("storefront"),
//	    logger.WithContextValue("request_id", apiclient.RequestIDKey),
//	)
//	log.Info("cart refreshed", logger.CartID(cart.ID))
//
// The zero-configuration default is production-safe: JSON output at info
// level on stdout.
package logger
