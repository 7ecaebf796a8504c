package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kabarga/statusledd/internal/indicator"
)

// LEDStateResponse reports the indicator state and the last brightness
// written per LED.
type LEDStateResponse struct {
	Body struct {
		Levels []uint8          `json:"levels" doc:"Last written brightness per LED, 0-100"`
		Status indicator.Status `json:"status" doc:"Indicator state snapshot"`
	}
}

// registerLEDRoutes registers LED state and battery trigger endpoints.
func (s *Server) registerLEDRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-led-state",
		Method:      http.MethodGet,
		Path:        "/api/leds",
		Summary:     "LED State",
		Description: "Get the last written brightness per LED and the indicator state.",
		Tags:        []string{"leds"},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*LEDStateResponse, error) {
		levels := s.options.Engine.Levels()
		resp := &LEDStateResponse{}
		resp.Body.Levels = levels[:]
		resp.Body.Status = s.options.Controller.Snapshot()
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "show-battery-status",
		Method:      http.MethodPost,
		Path:        "/api/battery/show",
		Summary:     "Show Battery Status",
		Description: "Enqueue the battery status animation immediately.",
		Tags:        []string{"battery"},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		s.options.Controller.ShowBattery()
		return &struct{}{}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "hide-battery-status",
		Method:      http.MethodDelete,
		Path:        "/api/battery",
		Summary:     "Hide Battery Status",
		Description: "Hide the battery status indication. Currently a no-op; animations run to completion.",
		Tags:        []string{"battery"},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		s.options.Controller.HideBattery()
		return &struct{}{}, nil
	})

	s.logger.Info("LED routes registered")
}
