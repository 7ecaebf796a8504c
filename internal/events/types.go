package events

// Event type constants for kelindar/event.
const (
	TypeProfileChanged uint32 = iota + 1
	TypeProfileConnection
	TypeUSBConnStateChanged
	TypeBatteryReport
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// USBConnState is the USB connection state reported by the USB subsystem.
type USBConnState uint8

const (
	// USBNone means no USB connection is present.
	USBNone USBConnState = iota
	// USBPowered means the port supplies power but no host session is active.
	USBPowered
	// USBSuspended means the host put the device to sleep.
	USBSuspended
	// USBHID means an active host session is established.
	USBHID
)

// String returns the lowercase wire name of the state.
func (s USBConnState) String() string {
	switch s {
	case USBNone:
		return "none"
	case USBPowered:
		return "powered"
	case USBSuspended:
		return "suspended"
	case USBHID:
		return "hid"
	default:
		return "unknown"
	}
}

// ParseUSBConnState converts a wire name back to a state.
// Unrecognized names map to USBNone with ok=false.
func ParseUSBConnState(s string) (USBConnState, bool) {
	switch s {
	case "none":
		return USBNone, true
	case "powered":
		return USBPowered, true
	case "suspended":
		return USBSuspended, true
	case "hid":
		return USBHID, true
	default:
		return USBNone, false
	}
}

// ProfileChangedEvent is published when the active BLE profile changes.
type ProfileChangedEvent struct {
	Index int `json:"index" example:"0" doc:"Zero-based BLE profile index"`
}

// Type returns the event type identifier for ProfileChangedEvent.
func (e ProfileChangedEvent) Type() uint32 { return TypeProfileChanged }

// ProfileConnectionEvent is published when the active profile's connectivity
// changes.
type ProfileConnectionEvent struct {
	Connected bool `json:"connected" example:"true" doc:"Whether the active profile has a connected host"`
}

// Type returns the event type identifier for ProfileConnectionEvent.
func (e ProfileConnectionEvent) Type() uint32 { return TypeProfileConnection }

// USBConnStateChangedEvent is published when the USB connection state changes.
type USBConnStateChangedEvent struct {
	State USBConnState `json:"state" doc:"New USB connection state"`
}

// Type returns the event type identifier for USBConnStateChangedEvent.
func (e USBConnStateChangedEvent) Type() uint32 { return TypeUSBConnStateChanged }

// BatteryReportEvent carries a battery state-of-charge report.
type BatteryReportEvent struct {
	Percent uint8 `json:"percent" example:"80" doc:"State of charge, 0-100"`
}

// Type returns the event type identifier for BatteryReportEvent.
func (e BatteryReportEvent) Type() uint32 { return TypeBatteryReport }
