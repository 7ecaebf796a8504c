// Package power reads battery and USB supply state from the Linux
// power_supply sysfs class.
package power

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultSysfsPowerPath = "/sys/class/power_supply"

// Battery reads the state of charge of one power supply.
type Battery struct {
	root   string
	supply string
	logger *slog.Logger
}

// NewBattery creates a battery reader for the named power supply
// (e.g. "BAT0").
func NewBattery(supply string, logger *slog.Logger) *Battery {
	return &Battery{root: defaultSysfsPowerPath, supply: supply, logger: logger}
}

// newBatteryAt is used by tests to point at a fake sysfs tree.
func newBatteryAt(root, supply string, logger *slog.Logger) *Battery {
	return &Battery{root: root, supply: supply, logger: logger}
}

// StateOfCharge returns the battery percentage, clamped to 0-100.
// Read failures report 0; the indicator layer treats the reading as
// best-effort.
func (b *Battery) StateOfCharge() uint8 {
	path := filepath.Join(b.root, b.supply, "capacity")
	data, err := os.ReadFile(path)
	if err != nil {
		b.logger.Debug("Battery capacity unavailable", "path", path, "error", err)
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		b.logger.Debug("Battery capacity unreadable", "path", path, "error", err)
		return 0
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return uint8(v)
}
