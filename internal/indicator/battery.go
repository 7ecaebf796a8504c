package indicator

import "github.com/kabarga/statusledd/internal/animation"

// BatteryPattern maps a battery state of charge to the blink mask and repeat
// count for the battery status animation. Thresholds are inclusive upper
// bounds checked in ascending order; a near-empty battery blinks the first
// LED three times, a full one blinks three LEDs three times.
func BatteryPattern(percent uint8) (animation.Mask, int) {
	switch {
	case percent <= 15:
		return 0b1000, 3
	case percent <= 30:
		return 0b1000, 1
	case percent <= 50:
		return 0b1100, 1
	case percent <= 80:
		return 0b1110, 1
	default:
		return 0b1110, 3
	}
}
