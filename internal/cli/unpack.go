package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/archive"
)

func init() {
	rootCmd.AddCommand(unpackCmd)
}

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive.zip> [dest-dir]",
	Short: "Extract a packed bundle archive",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := "."
		if len(args) == 2 {
			dest = args[1]
		}

		if err := archive.Extract(args[0], dest); err != nil {
			return err
		}

		fmt.Printf("Unpacked %s -> %s\n", args[0], dest)
		return nil
	},
}
