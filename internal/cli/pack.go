package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/archive"
	"github.com/ohnotype/rfext/internal/bundle"
	"github.com/ohnotype/rfext/internal/config"
)

var (
	packOutput string
	packVerify bool
)

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "Archive output path (default <bundle>.zip)")
	packCmd.Flags().BoolVar(&packVerify, "verify", true, "Re-read the archive and compare it against the bundle")
	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack [bundle]",
	Short: "Zip a bundle with relative paths for distribution",
	Long: `Packs a .roboFontExt bundle into a zip whose entries all sit under the
bundle directory's own name, so extracting the archive recreates the
bundle directory wherever it is unpacked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundleDir, err := resolveBundleArg(args)
		if err != nil {
			return err
		}

		b, err := bundle.Open(bundleDir)
		if err != nil {
			return err
		}

		out := packOutput
		if out == "" {
			out = filepath.Join(filepath.Dir(b.Path), b.ArchiveName())
		}

		if err := archive.PackDir(b.Path, out); err != nil {
			return err
		}
		if packVerify {
			if err := archive.VerifyDir(out, b.Path); err != nil {
				return fmt.Errorf("verifying archive: %w", err)
			}
		}

		fmt.Printf("Packed %s -> %s\n", b.Path, out)
		return nil
	},
}

// resolveBundleArg returns the bundle path from the argument list, falling
// back to the configured bundle.path.
func resolveBundleArg(args []string) (string, error) {
	if len(args) >= 1 && args[0] != "" {
		return args[0], nil
	}
	config.Load()
	if p := config.Get(config.KeyBundle); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no bundle given; pass a path or set %s in the config", config.KeyBundle)
}
