package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/manifest"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate an extension manifest against the schema",
	Long:  `Validates an info.plist or info.yaml manifest against the extension schema.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}

		if result.Valid {
			info, err := manifest.Load(path)
			if err != nil {
				fmt.Println("Valid manifest")
				return nil
			}
			fmt.Printf("Valid manifest: %s (v%s)\n", info.Name, info.Version)
			return nil
		}

		fmt.Printf("%d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Printf("  - %s\n", issue.Message)
			}
		}
		return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
	},
}
