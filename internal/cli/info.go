package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/bundle"
)

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print the manifest as JSON")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [bundle]",
	Short: "Show a bundle's manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundleDir, err := resolveBundleArg(args)
		if err != nil {
			return err
		}

		b, err := bundle.Open(bundleDir)
		if err != nil {
			return err
		}

		if infoJSON {
			out, err := json.MarshalIndent(b.Info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling manifest: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		info := b.Info
		fmt.Printf("%s %s\n", info.Name, info.Version)
		if info.Developer != "" {
			fmt.Printf("  developer:  %s", info.Developer)
			if info.DeveloperURL != "" {
				fmt.Printf(" (%s)", info.DeveloperURL)
			}
			fmt.Println()
		}
		fmt.Printf("  mainScript: lib/%s\n", info.MainScript)
		if info.TimeStamp > 0 {
			fmt.Printf("  built:      %s\n", time.Unix(int64(info.TimeStamp), 0).UTC().Format(time.RFC3339))
		}
		for _, item := range info.AddToMenu {
			entry := item.PreferredName
			if entry == "" {
				entry = item.Path
			}
			if item.ShortKey != "" {
				entry += " (" + item.ShortKey + ")"
			}
			fmt.Printf("  menu:       %s\n", entry)
		}
		return nil
	},
}
