// Package cmd holds the daemon's cobra subcommands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kabarga/statusledd/internal/animation"
	"github.com/kabarga/statusledd/internal/led"
	"github.com/kabarga/statusledd/internal/logging"
)

// CreateBlinkCmd creates the blink command. It drives a single animation
// directly against the LED hardware, bypassing the indicator state machine.
// Useful for board bring-up and for checking LED name wiring.
func CreateBlinkCmd() *cobra.Command {
	var sysfsPath string
	var ledNames []string
	var mask uint8
	var count int
	var durationMs int
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "blink [animation]",
		Short: "Run a single LED animation",
		Long: `Runs one animation (fade-in, fade-out, blink, connect) directly against the ` +
			`LED driver and exits. Falls back to a logging no-op driver when no sysfs LEDs are found.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"fade-in", "fade-out", "blink", "connect"},
		Run: func(_ *cobra.Command, args []string) {
			kind := args[0]

			loggingConfig := logging.Config{
				Level:  "debug",
				Format: "text",
			}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			logger := logging.GetLogger("blink")

			driver := led.New(led.Config{
				SysfsPath: sysfsPath,
				Names:     ledNames,
			}, logger)
			engine := animation.NewEngine(driver, logger)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			duration := time.Duration(durationMs) * time.Millisecond
			logger.Info("Running animation", "kind", kind, "duration", duration)

			switch kind {
			case "fade-in":
				for i := 0; i < led.Count; i++ {
					index, _ := led.NewIndex(i)
					if animation.Mask(mask).On(index) {
						engine.FadeIn(ctx, index, duration)
					}
				}
			case "fade-out":
				engine.FadeOutAll(ctx, duration)
			case "blink":
				engine.Blink(ctx, animation.Mask(mask), count, duration)
			case "connect":
				engine.ConnectSequence(ctx, duration)
			default:
				logger.Error("Unknown animation", "kind", kind)
				os.Exit(1)
			}

			engine.Off()
			logger.Info("Animation complete")
		},
	}

	cmd.Flags().StringVar(&sysfsPath, "sysfs-path", "/sys/class/leds", "Path to the sysfs LED class directory")
	cmd.Flags().StringSliceVar(&ledNames, "led-names", nil, "LED names under the sysfs path (default autodetect)")
	cmd.Flags().Uint8Var(&mask, "mask", 0b1111, "LED mask, MSB first (0b1000 is LED 0)")
	cmd.Flags().IntVar(&count, "count", 1, "Repeat count for blink")
	cmd.Flags().IntVar(&durationMs, "duration", 400, "Animation duration in milliseconds")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Use JSON log format")

	return cmd
}
