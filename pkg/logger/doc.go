// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers that keep key names consistent across fieldkit.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithJSONFormatter(),
//	    logger.WithAttr(logger.Component("fieldcheck")),
//	)
//	log.Debug("field validation failed",
//	    logger.Field("email"),
//	    logger.Error(err),
//	)
//
// ParseLevel and ParseFormat turn configuration strings into options;
// Discard gives a logger for components that log only when asked to.
//
// Helpers such as Error and Kind return an empty Attr for empty input, which
// slog drops, so callers need no nil checks.
package logger
