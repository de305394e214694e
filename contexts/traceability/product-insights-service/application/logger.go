package application

import "log/slog"

// ResolveLogger returns the supplied logger or the process default, so use
// cases never need nil checks before logging.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
