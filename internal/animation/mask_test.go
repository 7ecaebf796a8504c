package animation

import (
	"testing"

	"github.com/kabarga/statusledd/internal/led"
)

func TestMask_On(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want [led.Count]bool
	}{
		{"all off", 0b0000, [led.Count]bool{false, false, false, false}},
		{"all on", 0b1111, [led.Count]bool{true, true, true, true}},
		{"msb is led 0", 0b1000, [led.Count]bool{true, false, false, false}},
		{"lsb is led 3", 0b0001, [led.Count]bool{false, false, false, true}},
		{"upper half", 0b1100, [led.Count]bool{true, true, false, false}},
		{"three leds", 0b1110, [led.Count]bool{true, true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := led.Index(0); i < led.Count; i++ {
				if got := tt.mask.On(i); got != tt.want[i] {
					t.Errorf("Mask(%04b).On(%d) = %v, want %v", tt.mask, i, got, tt.want[i])
				}
			}
		})
	}
}

func TestProfileMask(t *testing.T) {
	tests := []struct {
		index int
		want  Mask
	}{
		{0, 0b1000},
		{1, 0b0100},
		{2, 0b0010},
	}

	for _, tt := range tests {
		if got := ProfileMask(tt.index); got != tt.want {
			t.Errorf("ProfileMask(%d) = %04b, want %04b", tt.index, got, tt.want)
		}
	}
}
