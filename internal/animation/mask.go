package animation

import "github.com/kabarga/statusledd/internal/led"

// Mask selects which LEDs participate in a simultaneous blink.
// Bit (led.Count-1-k) corresponds to LED index k, so the mask reads MSB-first
// across the LED row: 0b1000 is LED 0, 0b0001 is LED 3.
type Mask uint8

// On reports whether LED i participates in the mask.
func (m Mask) On(i led.Index) bool {
	return m&(1<<(led.Count-1-uint8(i))) != 0
}

// ProfileMask returns the blink mask for a BLE profile index: profile 0
// lights LED 0, profile 1 lights LED 1, and so on.
func ProfileMask(index int) Mask {
	return Mask(0b1000 >> index)
}
