// Package bundle models .roboFontExt extension bundles: opening and
// inspecting existing bundles, and building them from extension source
// trees.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohnotype/rfext/internal/branding"
	"github.com/ohnotype/rfext/internal/manifest"
)

// Bundle is an extension bundle directory with its parsed manifest.
type Bundle struct {
	// Path is the bundle directory (ending in .roboFontExt).
	Path string
	// Info is the decoded info.plist manifest.
	Info *manifest.Info
}

// Open loads the bundle at dir and sanity-checks its layout.
func Open(dir string) (*Bundle, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat bundle %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	if !strings.HasSuffix(dir, branding.BundleSuffix()) {
		return nil, fmt.Errorf("%s does not end in %s", dir, branding.BundleSuffix())
	}

	info, err := manifest.LoadBundle(dir)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Path: dir, Info: info}
	if _, err := os.Stat(b.MainScriptPath()); err != nil {
		return nil, fmt.Errorf("bundle main script %s: %w", b.MainScriptPath(), err)
	}
	return b, nil
}

// Name returns the bundle's extension name from the manifest, falling back
// to the directory name without the suffix.
func (b *Bundle) Name() string {
	if b.Info != nil && b.Info.Name != "" {
		return b.Info.Name
	}
	base := filepath.Base(b.Path)
	return strings.TrimSuffix(base, branding.BundleSuffix())
}

// InfoPlistPath returns the path of the bundle's manifest file.
func (b *Bundle) InfoPlistPath() string {
	return filepath.Join(b.Path, manifest.InfoPlistName)
}

// MainScriptPath returns the path of the script RoboFont runs on load.
func (b *Bundle) MainScriptPath() string {
	script := "main.py"
	if b.Info != nil && b.Info.MainScript != "" {
		script = b.Info.MainScript
	}
	return filepath.Join(b.Path, "lib", script)
}

// ArchiveName returns the distribution archive name for the bundle,
// e.g. "Transmutor.roboFontExt.zip".
func (b *Bundle) ArchiveName() string {
	return b.Name() + branding.BundleSuffix() + ".zip"
}
