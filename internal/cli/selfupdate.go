package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/branding"
	"github.com/ohnotype/rfext/internal/config"
	"github.com/ohnotype/rfext/internal/updater"
)

var (
	selfUpdateCheck   bool
	selfUpdateForce   bool
	selfUpdateVersion string
)

func init() {
	selfUpdateCmd.Flags().BoolVar(&selfUpdateCheck, "check", false, "Only check for updates, don't install")
	selfUpdateCmd.Flags().BoolVar(&selfUpdateForce, "force", false, "Force update even if already on latest version")
	selfUpdateCmd.Flags().StringVar(&selfUpdateVersion, "version", "", "Install a specific version (e.g., 1.2.0)")

	rootCmd.AddCommand(selfUpdateCmd)
}

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update " + branding.CLIName() + " to the latest version",
	Long: `Downloads and installs the latest version of ` + branding.CLIName() + ` from GitHub releases.

  rfext self-update                  # update to latest
  rfext self-update --check          # check only
  rfext self-update --version 1.2.0  # install specific version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.New(buildVersion)

		// Fetch release.
		var release *updater.Release
		var err error
		if selfUpdateVersion != "" {
			fmt.Fprintf(os.Stderr, "Checking for version %s...\n", selfUpdateVersion)
			release, err = u.CheckSpecificVersion(selfUpdateVersion)
		} else {
			fmt.Fprintln(os.Stderr, "Checking for updates...")
			release, err = u.CheckLatestVersion()
		}
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}

		// Compare versions.
		available, err := u.IsNewer(release.Version)
		if err != nil {
			// If current version is "dev", treat as always updateable.
			if buildVersion == "dev" {
				available = true
			} else {
				return fmt.Errorf("comparing versions: %w", err)
			}
		}

		if selfUpdateCheck {
			if available {
				fmt.Printf("Update available: %s -> %s\n", buildVersion, release.Version)
			} else {
				fmt.Printf("You are on the latest version (%s)\n", buildVersion)
			}
			return nil
		}

		if !available && !selfUpdateForce {
			fmt.Printf("You are on the latest version (%s)\n", buildVersion)
			return nil
		}

		// Download.
		fmt.Fprintf(os.Stderr, "Downloading %s %s for %s/%s...\n", branding.CLIName(), release.Version, runtime.GOOS, runtime.GOARCH)

		tmpDir, err := os.MkdirTemp("", branding.CLIName()+"-update-*")
		if err != nil {
			return fmt.Errorf("creating temp directory: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		archivePath, err := u.DownloadBinary(release, tmpDir)
		if err != nil {
			return fmt.Errorf("downloading binary: %w", err)
		}

		// Verify checksum.
		fmt.Fprintln(os.Stderr, "Verifying checksum...")
		if err := u.VerifyChecksum(release, archivePath); err != nil {
			return fmt.Errorf("checksum verification failed: %w", err)
		}

		// Extract.
		binPath, err := updater.ExtractBinary(archivePath, tmpDir)
		if err != nil {
			return fmt.Errorf("extracting binary: %w", err)
		}

		// Replace.
		fmt.Fprintln(os.Stderr, "Installing...")
		currentBinary, err := os.Executable()
		if err != nil {
			return fmt.Errorf("finding current binary: %w", err)
		}

		if err := updater.ReplaceBinary(cmd.Context(), binPath, currentBinary, release.Version); err != nil {
			return err
		}

		// Record the new version so the next startup does not banner it.
		_ = updater.MarkUpdated(config.Dir(), release.Version)

		fmt.Printf("Successfully updated to %s\n", release.Version)
		return nil
	},
}
