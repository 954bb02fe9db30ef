package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/bump"
)

var (
	bumpBundle string
	bumpNoGit  bool
	bumpNoPush bool
	bumpDryRun bool
)

func init() {
	bumpCmd.Flags().StringVar(&bumpBundle, "bundle", "", "Bundle path (default from config bundle.path)")
	bumpCmd.Flags().BoolVar(&bumpNoGit, "no-git", false, "Rewrite the manifest without committing or tagging")
	bumpCmd.Flags().BoolVar(&bumpNoPush, "no-push", false, "Commit and tag but do not push")
	bumpCmd.Flags().BoolVar(&bumpDryRun, "dry-run", false, "Show what would change without touching anything")
	rootCmd.AddCommand(bumpCmd)
}

var bumpCmd = &cobra.Command{
	Use:   "bump [major|minor|patch]",
	Short: "Bump the bundle version and cut a release commit and tag",
	Long: `Increments the version in the bundle's info.plist and refreshes its
timeStamp, touching no other bytes of the manifest. The change is
committed as "Release vX.Y.Z", tagged vX.Y.Z, and pushed with tags.

  rfext bump            # patch bump
  rfext bump minor
  rfext bump major --no-push`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		part := bump.Patch
		if len(args) == 1 {
			var err error
			part, err = bump.ParsePart(args[0])
			if err != nil {
				return err
			}
		}

		var bundleArgs []string
		if bumpBundle != "" {
			bundleArgs = []string{bumpBundle}
		}
		bundleDir, err := resolveBundleArg(bundleArgs)
		if err != nil {
			return err
		}

		result, err := bump.Run(bump.Options{
			BundleDir: bundleDir,
			Part:      part,
			NoGit:     bumpNoGit,
			NoPush:    bumpNoPush,
			DryRun:    bumpDryRun,
		})
		if err != nil {
			return err
		}

		if bumpDryRun {
			fmt.Printf("Would bump %s -> %s (tag %s)\n", result.OldVersion, result.NewVersion, result.Tag)
			return nil
		}

		fmt.Printf("Bumped %s -> %s\n", result.OldVersion, result.NewVersion)
		switch {
		case result.Pushed:
			fmt.Printf("Pushed release commit and tag %s\n", result.Tag)
		case result.Committed:
			fmt.Printf("Created release commit and tag %s (not pushed)\n", result.Tag)
		}
		return nil
	},
}
