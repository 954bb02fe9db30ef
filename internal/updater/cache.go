package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	checkFileName = "version-check.json"

	// checkInterval is how long a recorded release lookup stays fresh
	// before the startup banner triggers a background refresh.
	checkInterval = 24 * time.Hour
)

// versionCheck is the on-disk record of the most recent release lookup.
// It lets the startup banner report a pending update without ever
// touching the network on the hot path.
type versionCheck struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// stale reports whether the record is missing or older than maxAge.
func (c *versionCheck) stale(maxAge time.Duration) bool {
	return c == nil || time.Since(c.CheckedAt) > maxAge
}

// write persists the record under configDir.
func (c *versionCheck) write(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding version check: %w", err)
	}
	path := filepath.Join(configDir, checkFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing version check: %w", err)
	}
	return nil
}

// readCheck loads the last recorded lookup from configDir. A missing
// file is not an error; it means no lookup has happened yet.
func readCheck(configDir string) (*versionCheck, error) {
	data, err := os.ReadFile(filepath.Join(configDir, checkFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version check: %w", err)
	}

	var check versionCheck
	if err := json.Unmarshal(data, &check); err != nil {
		return nil, fmt.Errorf("parsing version check: %w", err)
	}
	return &check, nil
}

// MarkUpdated records that the binary now runs the given version, so the
// next startup does not banner the release it was just updated to.
func MarkUpdated(configDir, version string) error {
	check := &versionCheck{
		LatestVersion:  version,
		CurrentVersion: version,
		CheckedAt:      time.Now(),
	}
	return check.write(configDir)
}
