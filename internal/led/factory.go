package led

import (
	"log/slog"
	"os"
	"strings"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// Config selects the sysfs LED entries backing the four status LEDs.
// Empty names fall back to board detection.
type Config struct {
	SysfsPath string   // defaults to /sys/class/leds
	Names     []string // exactly Count entries when set
}

// New creates an LED driver for the current board.
// Falls back to the no-op driver if the configured or detected sysfs entries
// are not present.
func New(cfg Config, logger *slog.Logger) Driver {
	root := cfg.SysfsPath
	if root == "" {
		root = defaultSysfsLEDPath
	}

	names, ok := configuredNames(cfg)
	if !ok {
		names, ok = detectNames()
	}
	if ok {
		drv, err := newSysfs(root, names)
		if err == nil {
			logger.Info("Using sysfs LED driver", "root", root, "leds", names[:])
			return drv
		}
		logger.Warn("sysfs LED driver unavailable, using no-op driver", "error", err)
	} else {
		logger.Info("No LED support detected, using no-op driver")
	}
	return newNoop(logger)
}

func configuredNames(cfg Config) ([Count]string, bool) {
	var names [Count]string
	if len(cfg.Names) != Count {
		return names, false
	}
	for i, n := range cfg.Names {
		if n == "" {
			return names, false
		}
		names[i] = n
	}
	return names, true
}

// detectNames reads the device tree model to pick the LED naming scheme.
func detectNames() ([Count]string, bool) {
	var names [Count]string

	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return names, false
	}
	// Device tree model contains null bytes, trim them
	model := strings.TrimRight(string(data), "\x00")

	switch {
	case strings.Contains(model, "Kabarga"):
		return [Count]string{"kabarga:status0", "kabarga:status1", "kabarga:status2", "kabarga:status3"}, true
	case strings.Contains(model, "Raspberry Pi"):
		return [Count]string{"led0", "led1", "led2", "led3"}, true
	default:
		return names, false
	}
}
