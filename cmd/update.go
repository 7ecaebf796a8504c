package cmd

import (
	"context"
	"os"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/kabarga/statusledd/internal/logging"
	"github.com/kabarga/statusledd/internal/version"
)

const updateRepository = "kabarga/statusledd"

// CreateUpdateCmd creates the update command. It checks GitHub releases for
// a newer build and replaces the running binary in place.
func CreateUpdateCmd() *cobra.Command {
	var checkOnly bool
	var prerelease bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the daemon binary from GitHub releases",
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "info", Format: "text"})
			logger := logging.GetLogger("update")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
			if err != nil {
				logger.Error("Failed to create GitHub source", "error", err)
				os.Exit(1)
			}
			updater, err := selfupdate.NewUpdater(selfupdate.Config{
				Source:     source,
				Prerelease: prerelease,
			})
			if err != nil {
				logger.Error("Failed to create updater", "error", err)
				os.Exit(1)
			}

			release, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(updateRepository))
			if err != nil {
				logger.Error("Failed to check for updates", "error", err)
				os.Exit(1)
			}
			if !found {
				logger.Error("No releases found", "repository", updateRepository)
				os.Exit(1)
			}

			current := version.Version
			// dev builds are always considered outdated
			if current != "dev" && !release.GreaterThan(current) {
				logger.Info("Already up to date", "version", current)
				return
			}

			logger.Info("Update available",
				"current", current,
				"latest", release.Version(),
				"url", release.URL)
			if checkOnly {
				return
			}

			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				logger.Error("Failed to resolve executable path", "error", err)
				os.Exit(1)
			}
			if err := updater.UpdateTo(ctx, release, exe); err != nil {
				logger.Error("Failed to apply update", "error", err)
				os.Exit(1)
			}

			logger.Info("Updated successfully", "version", release.Version())
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for updates, do not apply")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Include prereleases")

	return cmd
}
