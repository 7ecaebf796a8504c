// Package logging provides structured logging with per-module log level
// configuration.
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"indicator": "debug", // Per-module overrides
//			"api":       "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("indicator")
//	logger.Info("Starting up", "leds", 4)
//
// When running under systemd:
//
//	journalctl -t statusledd -f
//	journalctl -t statusledd MODULE=indicator
package logging
