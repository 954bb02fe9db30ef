// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's //go:embed
// bakes the values into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	GitHubRepo   string `yaml:"github_repo"`
	BundleSuffix string `yaml:"bundle_suffix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "rfext",
			DisplayName:  "RFExt",
			Description:  "Build and release toolkit for RoboFont extension bundles",
			HomeDir:      ".rfext",
			EnvPrefix:    "RFEXT",
			GoModule:     "github.com/ohnotype/rfext",
			GitHubRepo:   "ohnotype/rfext",
			BundleSuffix: ".roboFontExt",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "rfext").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "RFExt").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".rfext").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "RFEXT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string used for self-update lookups.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// BundleSuffix returns the extension bundle directory suffix (".roboFontExt").
func BundleSuffix() string { load(); return defaults.BundleSuffix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("TOKEN") → "RFEXT_TOKEN".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
