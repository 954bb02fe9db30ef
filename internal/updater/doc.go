// Package updater implements the self-update mechanism for the rfext binary.
// It checks GitHub Releases for new versions, downloads and verifies
// checksums, extracts the binary, and replaces the running executable. A
// daily-cached version check powers the startup banner.
package updater
