package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/ohnotype/rfext/internal/bundle"
	"github.com/ohnotype/rfext/internal/config"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the release setup",
	Long:  `Runs diagnostic checks on the tools and configuration the release flow needs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Environment check:")
		checkBinary("git")

		fmt.Println("Configuration check:")
		config.Load()
		if repo := config.Get(config.KeyRepo); repo != "" {
			fmt.Printf("  [ OK ] %s = %s\n", config.KeyRepo, repo)
		} else {
			fmt.Printf("  [WARN] %s not set; releases need --repo\n", config.KeyRepo)
		}
		if config.Token() != "" {
			fmt.Printf("  [ OK ] GitHub token present\n")
		} else {
			fmt.Printf("  [WARN] No GitHub token (set %s or GITHUB_TOKEN)\n", config.KeyToken)
		}

		fmt.Println("Bundle check:")
		bundlePath := config.Get(config.KeyBundle)
		if bundlePath == "" {
			fmt.Printf("  [INFO] %s not set; skipping\n", config.KeyBundle)
			return nil
		}
		b, err := bundle.Open(bundlePath)
		if err != nil {
			fmt.Printf("  [FAIL] %v\n", err)
			return fmt.Errorf("bundle check failed")
		}
		fmt.Printf("  [ OK ] %s (%s %s)\n", b.Path, b.Name(), b.Info.Version)
		return nil
	},
}

func checkBinary(name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Printf("  [MISS] %s not found\n", name)
		return
	}
	fmt.Printf("  [ OK ] %s found at %s\n", name, path)
}
