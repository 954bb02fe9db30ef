package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ChecksumsFileName is the conventional name of the release checksum list.
const ChecksumsFileName = "checksums.txt"

// SHA256File returns the hex-encoded SHA-256 digest of the file at path.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("computing checksum of %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteChecksums writes a checksums.txt-style file for the given paths:
// one "digest  basename" line per file, sorted by basename.
func WriteChecksums(destFile string, paths []string) error {
	lines := make([]string, 0, len(paths))
	for _, p := range paths {
		sum, err := SHA256File(p)
		if err != nil {
			return err
		}
		lines = append(lines, sum+"  "+filepath.Base(p))
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i][strings.Index(lines[i], "  "):] < lines[j][strings.Index(lines[j], "  "):]
	})

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(destFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destFile, err)
	}
	return nil
}

// LookupChecksum finds the digest recorded for name in checksums.txt data.
func LookupChecksum(data []byte, name string) (string, error) {
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) == 2 && parts[1] == name {
			return parts[0], nil
		}
	}
	return "", fmt.Errorf("no checksum found for %s", name)
}
