package led

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultSysfsLEDPath = "/sys/class/leds"

// sysfs implements Driver using the Linux sysfs LED class interface.
// Each status LED maps to one /sys/class/leds entry; percentages are scaled
// by the entry's max_brightness.
type sysfs struct {
	root  string
	names [Count]string
	max   [Count]int
}

// newSysfs creates a sysfs LED driver rooted at root (normally
// /sys/class/leds). All four LED entries must exist; max_brightness is read
// once at construction and falls back to 255 if unreadable.
func newSysfs(root string, names [Count]string) (*sysfs, error) {
	s := &sysfs{root: root, names: names}
	for i, name := range names {
		ledPath := filepath.Join(root, name)
		if _, err := os.Stat(ledPath); err != nil {
			return nil, fmt.Errorf("LED %q not found at %s: %w", name, ledPath, err)
		}
		s.max[i] = 255
		if data, err := os.ReadFile(filepath.Join(ledPath, "max_brightness")); err == nil {
			if v, convErr := strconv.Atoi(strings.TrimSpace(string(data))); convErr == nil && v > 0 {
				s.max[i] = v
			}
		}
	}
	return s, nil
}

// SetBrightness writes the scaled brightness value for one LED.
func (s *sysfs) SetBrightness(led Index, percent uint8) error {
	if int(led) >= Count {
		return fmt.Errorf("led index %d out of range", led)
	}
	if percent > 100 {
		percent = 100
	}
	raw := s.max[led] * int(percent) / 100
	path := filepath.Join(s.root, s.names[led], "brightness")
	if err := os.WriteFile(path, []byte(strconv.Itoa(raw)), 0644); err != nil {
		return fmt.Errorf("failed to set LED brightness: %w", err)
	}
	return nil
}

// Off turns one LED fully off.
func (s *sysfs) Off(led Index) error {
	if int(led) >= Count {
		return fmt.Errorf("led index %d out of range", led)
	}
	path := filepath.Join(s.root, s.names[led], "brightness")
	if err := os.WriteFile(path, []byte("0"), 0644); err != nil {
		return fmt.Errorf("failed to turn LED off: %w", err)
	}
	return nil
}
