package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/ohnotype/rfext/internal/branding"
)

// verifyTimeout bounds how long the freshly installed binary may take to
// answer "version --json".
const verifyTimeout = 5 * time.Second

// ReplaceBinary swaps the running executable for the freshly extracted
// one. The old binary is kept as <path>.backup until the replacement
// answers a version query; any failure restores the backup.
func ReplaceBinary(ctx context.Context, newPath, currentPath, expectedVersion string) error {
	if runtime.GOOS == "windows" {
		return fmt.Errorf("self-update is not supported on windows; download the latest release from https://github.com/%s/releases", branding.GitHubRepo())
	}

	info, err := os.Stat(currentPath)
	if err != nil {
		return fmt.Errorf("stat current binary: %w", err)
	}
	origPerm := info.Mode().Perm()

	backupPath := currentPath + ".backup"
	if err := moveFile(currentPath, backupPath); err != nil {
		return fmt.Errorf("backing up current binary: %w", err)
	}

	if err := moveFile(newPath, currentPath); err != nil {
		RollbackBinary(backupPath, currentPath)
		return fmt.Errorf("installing new binary: %w", err)
	}
	os.Chmod(currentPath, origPerm)

	if err := VerifyBinary(ctx, currentPath, expectedVersion); err != nil {
		RollbackBinary(backupPath, currentPath)
		return fmt.Errorf("verification failed, rolled back: %w", err)
	}

	os.Remove(backupPath)
	return nil
}

// VerifyBinary runs the binary's own "version --json" and checks that it
// answers within verifyTimeout with the expected version.
func VerifyBinary(ctx context.Context, binaryPath, expectedVersion string) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, binaryPath, "version", "--json").Output()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("new binary did not answer within %s", verifyTimeout)
	}
	if err != nil {
		return fmt.Errorf("new binary exited with error: %w", err)
	}

	var reported map[string]string
	if err := json.Unmarshal(out, &reported); err != nil {
		return fmt.Errorf("parsing version output: %w", err)
	}
	want := strings.TrimPrefix(expectedVersion, "v")
	if got := reported["version"]; want != "" && got != want {
		return fmt.Errorf("new binary reports version %q, want %q", got, want)
	}
	return nil
}

// RollbackBinary restores the backup to the current path.
func RollbackBinary(backupPath, currentPath string) error {
	if err := moveFile(backupPath, currentPath); err != nil {
		return fmt.Errorf("restoring backup: %w", err)
	}
	return nil
}

// moveFile renames src onto dst, falling back to a copy when the rename
// crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
