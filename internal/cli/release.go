package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/config"
	"github.com/ohnotype/rfext/internal/release"
)

var (
	releaseRef  string
	releaseRepo string
)

func init() {
	releaseCmd.Flags().StringVar(&releaseRef, "ref", "", "Triggering git ref (default $GITHUB_REF)")
	releaseCmd.Flags().StringVar(&releaseRepo, "repo", "", "GitHub owner/repo to publish to (default from config github.repo)")
	rootCmd.AddCommand(releaseCmd)
}

var releaseCmd = &cobra.Command{
	Use:   "release [bundle]",
	Short: "Publish the packed bundle to a GitHub release",
	Long: `Packs the bundle and uploads it, with a checksums.txt, to the GitHub
release for the triggering tag. Only version tags (vX.Y.Z) release;
branch pushes and other refs exit successfully without publishing, so
the command can run unconditionally in CI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := releaseRef
		if ref == "" {
			ref = os.Getenv("GITHUB_REF")
		}
		tag, ok := release.TagFromRef(ref)
		if !ok {
			fmt.Printf("Ref %q is not a release tag; nothing to publish\n", ref)
			return nil
		}

		bundleDir, err := resolveBundleArg(args)
		if err != nil {
			return err
		}

		config.Load()
		repo := releaseRepo
		if repo == "" {
			repo = config.Get(config.KeyRepo)
		}
		if repo == "" {
			return fmt.Errorf("no repository given; pass --repo or set %s in the config", config.KeyRepo)
		}

		client := release.NewClient(repo, release.WithToken(config.Token()))
		rel, err := release.Publish(cmd.Context(), client, release.PublishOptions{
			BundleDir: bundleDir,
			Tag:       tag,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Published %s: %s\n", tag, rel.HTMLURL)
		return nil
	},
}
