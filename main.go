package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kabarga/statusledd/cmd"
	"github.com/kabarga/statusledd/internal/animation"
	"github.com/kabarga/statusledd/internal/api"
	"github.com/kabarga/statusledd/internal/ble"
	"github.com/kabarga/statusledd/internal/config"
	"github.com/kabarga/statusledd/internal/events"
	"github.com/kabarga/statusledd/internal/indicator"
	"github.com/kabarga/statusledd/internal/led"
	"github.com/kabarga/statusledd/internal/logging"
	"github.com/kabarga/statusledd/internal/power"
	"github.com/kabarga/statusledd/internal/workqueue"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8091" toml:"server.port" env:"SERVER_PORT"`

	// LED settings
	LEDSysfsPath string   `help:"Path to the sysfs LED class directory" default:"/sys/class/leds" toml:"led.sysfs_path" env:"LED_SYSFS_PATH"`
	LEDNames     []string `help:"LED names under the sysfs path (default autodetect)" toml:"led.names" env:"LED_NAMES"`

	// Power settings
	BatterySupply     string `help:"Power supply name for battery readings" default:"BAT0" toml:"power.battery_supply" env:"POWER_BATTERY_SUPPLY"`
	USBSupply         string `help:"Power supply name for USB state polling (empty disables)" default:"" toml:"power.usb_supply" env:"POWER_USB_SUPPLY"`
	USBPollIntervalMs int    `help:"USB supply poll interval in milliseconds" default:"2000" toml:"power.usb_poll_interval_ms" env:"POWER_USB_POLL_INTERVAL_MS"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Features settings
	FeaturesSuspendFadeOut bool `help:"Fade LEDs out on USB suspend" default:"true" toml:"features.suspend_fade_out" env:"FEATURES_SUSPEND_FADE_OUT"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingIndicator string `help:"Indicator logging level" default:"info" toml:"logging.indicator" env:"LOGGING_INDICATOR"`
	LoggingAnimation string `help:"Animation logging level" default:"info" toml:"logging.animation" env:"LOGGING_ANIMATION"`
	LoggingPower     string `help:"Power logging level" default:"info" toml:"logging.power" env:"LOGGING_POWER"`
	LoggingAPI       string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	// Create Huma CLI
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		loggingConfig := logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"indicator": opts.LoggingIndicator,
				"animation": opts.LoggingAnimation,
				"power":     opts.LoggingPower,
				"api":       opts.LoggingAPI,
			},
		}
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")

		// Create event bus for in-process event handling
		eventBus := events.New()

		// LED driver and animation engine
		driver := led.New(led.Config{
			SysfsPath: opts.LEDSysfsPath,
			Names:     opts.LEDNames,
		}, logging.GetLogger("led"))
		engine := animation.NewEngine(driver, logging.GetLogger("animation"))

		// Single-worker queue serializing all animations
		queue := workqueue.New(logging.GetLogger("workqueue"))

		// Connectivity and battery sources
		tracker := ble.NewTracker(eventBus, logging.GetLogger("ble"))
		battery := power.NewBattery(opts.BatterySupply, logging.GetLogger("power"))

		var usbMonitor *power.USBMonitor
		if opts.USBSupply != "" {
			usbMonitor = power.NewUSBMonitor(
				opts.USBSupply,
				time.Duration(opts.USBPollIntervalMs)*time.Millisecond,
				eventBus,
				logging.GetLogger("power"),
			)
		}

		controller := indicator.New(engine, queue, eventBus, tracker, battery,
			indicator.Config{SuspendFadeOut: opts.FeaturesSuspendFadeOut},
			logging.GetLogger("indicator"))

		server := api.NewServer(&api.Options{
			AuthUsername:      opts.AuthUsername,
			AuthPassword:      opts.AuthPassword,
			Controller:        controller,
			Engine:            engine,
			Bus:               eventBus,
			PrometheusHandler: promhttp.Handler(),
		})

		// Watch the config file so logging levels can change at runtime.
		watcher := config.NewWatcher(opts.Config, func(path string) (logging.Config, error) {
			return config.LoadLoggingConfig(path), nil
		}, logger)
		watcher.OnReload(func(cfg logging.Config) {
			logger.Info("Reloading logging configuration")
			logging.Initialize(cfg)
		})

		hooks.OnStart(func() {
			controller.Start()

			if usbMonitor != nil {
				usbMonitor.Start()
			}

			if startErr := watcher.Start(); startErr != nil {
				logger.Warn("Failed to start config watcher, hot-reload disabled", "error", startErr)
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Error("Error stopping config watcher", "error", stopErr)
			}

			if usbMonitor != nil {
				usbMonitor.Stop()
			}

			controller.Stop()
			tracker.Close()
		})
	})

	// Add blink command
	blinkCmd := cmd.CreateBlinkCmd()
	cli.Root().AddCommand(blinkCmd)

	// Add update command
	updateCmd := cmd.CreateUpdateCmd()
	cli.Root().AddCommand(updateCmd)

	// Run the CLI
	cli.Run()
}
