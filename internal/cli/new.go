package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/scaffold"
)

var (
	newDir          string
	newDeveloper    string
	newDeveloperURL string
)

func init() {
	newCmd.Flags().StringVar(&newDir, "dir", "", "Output directory (default ./<name>)")
	newCmd.Flags().StringVar(&newDeveloper, "developer", "", "Developer name for the manifest")
	newCmd.Flags().StringVar(&newDeveloperURL, "developer-url", "", "Developer URL for the manifest")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new extension source tree",
	Long: `Creates a new extension source tree with an info.yaml manifest, a lib/
directory holding the main script, and an html/ documentation page, ready
for "rfext build".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		outDir := newDir
		if outDir == "" {
			outDir = filepath.Join(".", name)
		}

		data := scaffold.NewData(name, newDeveloper, newDeveloperURL)
		result, err := scaffold.Generate(data, outDir)
		if err != nil {
			return err
		}

		fmt.Printf("Created %s:\n", result.OutputDir)
		for _, f := range result.Files {
			fmt.Printf("  %s\n", f)
		}
		for _, w := range result.Warnings {
			fmt.Printf("  [WARN] %s\n", w)
		}
		return nil
	},
}
