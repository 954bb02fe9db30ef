package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/branding"
	"github.com/ohnotype/rfext/internal/config"
	"github.com/ohnotype/rfext/internal/logging"
	"github.com/ohnotype/rfext/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	rootVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds, versions, and publishes RoboFont extension bundles:
it assembles .roboFontExt bundles from source trees, bumps manifest
versions with release commits and tags, and ships the packaged bundle to
GitHub releases.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(rootVerbose)

		// Skip the banner for the command that manages its own version.
		if cmd.Name() == "self-update" {
			return
		}

		// Non-blocking banner from the recorded version check.
		u := updater.New(buildVersion)
		u.MaybePrintUpdateBanner(os.Stderr, config.Dir())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
