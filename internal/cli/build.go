package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/bundle"
)

var (
	buildOutput     string
	buildVendorLibs []string
	buildTimeStamp  int64
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Bundle output path (default <Name>.roboFontExt next to the source)")
	buildCmd.Flags().StringArrayVar(&buildVendorLibs, "vendor-lib", nil, "Vendored library directory merged into the bundle's lib/ (repeatable)")
	buildCmd.Flags().Int64Var(&buildTimeStamp, "timestamp", 0, "Unix timestamp for the manifest (default now)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [source-dir]",
	Short: "Assemble a .roboFontExt bundle from an extension source tree",
	Long: `Builds a .roboFontExt bundle from a source tree containing info.yaml
(or info.plist), lib/, and optionally html/ and resources/. The manifest
is validated, converted to info.plist, and stamped with the build time.

  rfext build                        # build from the current directory
  rfext build source -o Tool.roboFontExt
  rfext build source --vendor-lib vendor/MutatorScale/lib`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceDir := "."
		if len(args) == 1 {
			sourceDir = args[0]
		}

		b, err := bundle.Build(bundle.BuildOptions{
			SourceDir:  sourceDir,
			OutputPath: buildOutput,
			VendorLibs: buildVendorLibs,
			TimeStamp:  buildTimeStamp,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Built %s (%s %s)\n", b.Path, b.Name(), b.Info.Version)
		return nil
	},
}
