package led

import "log/slog"

// noop implements Driver as a no-op for hosts without LED hardware.
type noop struct {
	logger *slog.Logger
}

// newNoop creates a new no-op LED driver.
func newNoop(logger *slog.Logger) *noop {
	return &noop{logger: logger}
}

// SetBrightness logs the request but performs no hardware write.
func (n *noop) SetBrightness(led Index, percent uint8) error {
	n.logger.Debug("LED hardware not available (no-op)",
		"led", led,
		"percent", percent)
	return nil
}

// Off logs the request but performs no hardware write.
func (n *noop) Off(led Index) error {
	n.logger.Debug("LED hardware not available (no-op)", "led", led)
	return nil
}
