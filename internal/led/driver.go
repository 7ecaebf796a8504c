package led

import "fmt"

// Count is the number of status LEDs on the shield. The indicator layer is
// built around exactly four LEDs; boards with fewer map the missing ones to
// the no-op driver.
const Count = 4

// Index identifies one of the status LEDs (0..Count-1).
type Index uint8

// NewIndex validates i and converts it to an Index.
func NewIndex(i int) (Index, error) {
	if i < 0 || i >= Count {
		return 0, fmt.Errorf("led index %d out of range [0,%d)", i, Count)
	}
	return Index(i), nil
}

// Driver abstracts brightness-capable LED hardware.
// Brightness is a percentage (0-100); implementations scale to whatever
// resolution the hardware supports.
type Driver interface {
	// SetBrightness sets an LED to the given brightness percentage.
	SetBrightness(led Index, percent uint8) error

	// Off turns an LED fully off.
	Off(led Index) error
}
