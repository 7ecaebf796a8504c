package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kabarga/statusledd/internal/events"
)

// ProfileReportRequest reports a BLE profile selection or connectivity
// change.
type ProfileReportRequest struct {
	Body struct {
		Index     int   `json:"index" minimum:"0" maximum:"7" doc:"Zero-based BLE profile index"`
		Connected *bool `json:"connected,omitempty" doc:"Connectivity of the active profile, when known"`
	}
}

// USBReportRequest reports a USB connection state change.
type USBReportRequest struct {
	Body struct {
		State string `json:"state" enum:"none,powered,suspended,hid" doc:"USB connection state"`
	}
}

// BatteryReportRequest reports a battery state of charge.
type BatteryReportRequest struct {
	Body struct {
		Percent uint8 `json:"percent" minimum:"0" maximum:"100" doc:"State of charge, 0-100"`
	}
}

// registerReportRoutes registers the report-injection endpoints. Whatever
// transport carries the keyboard's state to the host posts here; the
// handlers only publish bus events and never touch LED state.
func (s *Server) registerReportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "report-profile",
		Method:      http.MethodPost,
		Path:        "/api/report/profile",
		Summary:     "Report Profile Change",
		Tags:        []string{"reports"},
		Security:    withAuth(),
	}, func(ctx context.Context, input *ProfileReportRequest) (*struct{}, error) {
		s.options.Bus.Publish(events.ProfileChangedEvent{Index: input.Body.Index})
		if input.Body.Connected != nil {
			s.options.Bus.Publish(events.ProfileConnectionEvent{Connected: *input.Body.Connected})
		}
		return &struct{}{}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "report-usb",
		Method:      http.MethodPost,
		Path:        "/api/report/usb",
		Summary:     "Report USB State",
		Tags:        []string{"reports"},
		Security:    withAuth(),
	}, func(ctx context.Context, input *USBReportRequest) (*struct{}, error) {
		state, ok := events.ParseUSBConnState(input.Body.State)
		if !ok {
			return nil, huma.Error400BadRequest("Unknown USB connection state")
		}
		s.options.Bus.Publish(events.USBConnStateChangedEvent{State: state})
		return &struct{}{}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "report-battery",
		Method:      http.MethodPost,
		Path:        "/api/report/battery",
		Summary:     "Report Battery Level",
		Tags:        []string{"reports"},
		Security:    withAuth(),
	}, func(ctx context.Context, input *BatteryReportRequest) (*struct{}, error) {
		s.options.Bus.Publish(events.BatteryReportEvent{Percent: input.Body.Percent})
		return &struct{}{}, nil
	})
}
