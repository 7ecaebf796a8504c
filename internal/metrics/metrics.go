// Package metrics provides Prometheus metrics for the status LED daemon.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	animationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statusledd",
		Subsystem: "animation",
		Name:      "runs_total",
		Help:      "Animations executed by the worker, by kind",
	}, []string{"kind"})

	disconnectChecksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "statusledd",
		Subsystem: "indicator",
		Name:      "disconnect_checks_total",
		Help:      "Disconnect-check loop invocations that found no connectivity",
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "statusledd",
		Subsystem: "events",
		Name:      "received_total",
		Help:      "Events received from the bus, by type",
	}, []string{"type"})

	ledBrightness = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "statusledd",
		Subsystem: "led",
		Name:      "brightness_percent",
		Help:      "Last brightness written per LED",
	}, []string{"led"})

	batteryPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "statusledd",
		Subsystem: "battery",
		Name:      "percent",
		Help:      "Last observed battery state of charge",
	})
)

// CountAnimation records one executed animation of the given kind.
func CountAnimation(kind string) {
	animationsTotal.WithLabelValues(kind).Inc()
}

// CountDisconnectCheck records one disconnect-check tick that blinked.
func CountDisconnectCheck() {
	disconnectChecksTotal.Inc()
}

// CountEvent records one event received from the bus.
func CountEvent(eventType string) {
	eventsTotal.WithLabelValues(eventType).Inc()
}

// SetLEDBrightness records the last brightness written to an LED.
func SetLEDBrightness(led int, percent uint8) {
	ledBrightness.WithLabelValues(strconv.Itoa(led)).Set(float64(percent))
}

// SetBatteryPercent records the last observed battery state of charge.
func SetBatteryPercent(percent uint8) {
	batteryPercent.Set(float64(percent))
}
