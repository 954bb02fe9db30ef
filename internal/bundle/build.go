package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ohnotype/rfext/internal/branding"
	"github.com/ohnotype/rfext/internal/manifest"
)

// contentDirs are the source subdirectories copied into a built bundle.
// lib/ is mandatory; the others are copied when present.
var contentDirs = []string{"lib", "html", "resources"}

// BuildOptions configures a bundle build.
type BuildOptions struct {
	// SourceDir is the extension source tree, holding info.yaml (or an
	// existing info.plist) plus lib/, and optionally html/ and resources/.
	SourceDir string
	// OutputPath is the destination bundle directory. Empty means
	// "<Name>.roboFontExt" next to the source tree.
	OutputPath string
	// VendorLibs are extra library directories (vendored submodules such
	// as MutatorScale/lib) merged into the bundle's lib/.
	VendorLibs []string
	// TimeStamp overrides the manifest timestamp. Zero means time.Now().
	TimeStamp int64
}

// Build assembles a .roboFontExt bundle from an extension source tree.
// The bundle is staged in a temporary directory and only swapped into
// place once the copy succeeded, so a failed build never leaves a
// half-written bundle behind.
func Build(opts BuildOptions) (*Bundle, error) {
	info, err := loadSourceManifest(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	libDir := filepath.Join(opts.SourceDir, "lib")
	if fi, err := os.Stat(libDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("source tree %s has no lib/ directory", opts.SourceDir)
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(filepath.Clean(opts.SourceDir)), info.Name+branding.BundleSuffix())
	}

	stamp := opts.TimeStamp
	if stamp == 0 {
		stamp = time.Now().Unix()
	}
	info.TimeStamp = float64(stamp)

	// Stage next to the destination so the final rename stays on one filesystem.
	staging, err := os.MkdirTemp(filepath.Dir(outPath), ".rfext-build-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, name := range contentDirs {
		src := filepath.Join(opts.SourceDir, name)
		if fi, err := os.Stat(src); err != nil || !fi.IsDir() {
			continue
		}
		if err := copyDir(src, filepath.Join(staging, name)); err != nil {
			return nil, fmt.Errorf("copying %s/: %w", name, err)
		}
	}

	for _, vendor := range opts.VendorLibs {
		if fi, err := os.Stat(vendor); err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("vendored lib %s is not a directory", vendor)
		}
		if err := copyDir(vendor, filepath.Join(staging, "lib")); err != nil {
			return nil, fmt.Errorf("merging vendored lib %s: %w", vendor, err)
		}
	}

	mainScript := info.MainScript
	if mainScript == "" {
		mainScript = "main.py"
	}
	if _, err := os.Stat(filepath.Join(staging, "lib", mainScript)); err != nil {
		return nil, fmt.Errorf("main script lib/%s missing from bundle: %w", mainScript, err)
	}

	if err := manifest.WritePlist(filepath.Join(staging, manifest.InfoPlistName), info); err != nil {
		return nil, err
	}

	// Swap into place.
	if err := os.RemoveAll(outPath); err != nil {
		return nil, fmt.Errorf("removing existing bundle %s: %w", outPath, err)
	}
	if err := os.Rename(staging, outPath); err != nil {
		return nil, fmt.Errorf("moving bundle into place: %w", err)
	}

	return Open(outPath)
}

// loadSourceManifest reads and validates the source tree's manifest,
// preferring info.yaml over info.plist.
func loadSourceManifest(sourceDir string) (*manifest.Info, error) {
	path := filepath.Join(sourceDir, manifest.InfoYAMLName)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(sourceDir, manifest.InfoPlistName)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("source tree %s has neither %s nor %s", sourceDir, manifest.InfoYAMLName, manifest.InfoPlistName)
		}
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msg := fmt.Sprintf("manifest %s failed validation", path)
		for _, issue := range result.Issues {
			if issue.Path != "" {
				msg += fmt.Sprintf("\n  %s: %s", issue.Path, issue.Message)
			} else {
				msg += fmt.Sprintf("\n  %s", issue.Message)
			}
		}
		return nil, fmt.Errorf("%s", msg)
	}

	return manifest.Load(path)
}
