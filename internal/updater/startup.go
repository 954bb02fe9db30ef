package updater

import (
	"fmt"
	"io"
	"time"

	"github.com/ohnotype/rfext/internal/branding"
)

// MaybePrintUpdateBanner prints an update notice to w when the recorded
// release lookup says a newer version exists. It never blocks: a stale
// or missing record is refreshed by a background goroutine for the next
// invocation, and lookup failures stay silent.
func (u *Updater) MaybePrintUpdateBanner(w io.Writer, configDir string) {
	check, err := readCheck(configDir)
	if err != nil {
		return
	}

	if check != nil && check.UpdateAvailable {
		fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", check.CurrentVersion, check.LatestVersion)
		fmt.Fprintf(w, "    Run `%s self-update` to upgrade\n\n", branding.CLIName())
	}

	if check.stale(checkInterval) {
		go u.refreshCheck(configDir)
	}
}

// refreshCheck performs the release lookup and records the result. Runs
// in the background; every failure path is silent.
func (u *Updater) refreshCheck(configDir string) {
	release, err := u.CheckLatestVersion()
	if err != nil {
		return
	}
	newer, err := u.IsNewer(release.Version)
	if err != nil {
		return
	}

	check := &versionCheck{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: newer,
	}
	_ = check.write(configDir)
}
