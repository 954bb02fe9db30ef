// Package bump implements the release version bump: a surgical rewrite of
// the bundle manifest's version and timeStamp, optionally committed,
// tagged, and pushed in one step.
package bump

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/ohnotype/rfext/internal/bundle"
	"github.com/ohnotype/rfext/internal/gitrepo"
	"github.com/ohnotype/rfext/internal/manifest"
)

// Part selects which semver component a bump increments.
type Part string

const (
	Major Part = "major"
	Minor Part = "minor"
	Patch Part = "patch"
)

// ParsePart converts a command-line argument into a Part.
func ParsePart(s string) (Part, error) {
	switch Part(s) {
	case Major, Minor, Patch:
		return Part(s), nil
	}
	return "", fmt.Errorf("invalid bump part %q (want major, minor, or patch)", s)
}

// Next returns the version after bumping the given part.
func Next(version string, part Part) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", version, err)
	}

	var next semver.Version
	switch part {
	case Major:
		next = v.IncMajor()
	case Minor:
		next = v.IncMinor()
	case Patch:
		next = v.IncPatch()
	default:
		return "", fmt.Errorf("invalid bump part %q", part)
	}
	return next.String(), nil
}

// Options configures a bump run.
type Options struct {
	// BundleDir is the .roboFontExt bundle whose manifest is bumped.
	BundleDir string
	// Part is the semver component to increment.
	Part Part
	// TimeStamp overrides the new manifest timestamp. Zero means time.Now().
	TimeStamp int64
	// NoGit skips the commit/tag/push steps.
	NoGit bool
	// NoPush commits and tags but does not push.
	NoPush bool
	// DryRun computes the new version without touching anything.
	DryRun bool
}

// Result reports what a bump run did (or, for a dry run, would do).
type Result struct {
	OldVersion string
	NewVersion string
	Tag        string
	Committed  bool
	Pushed     bool
}

// Run bumps the bundle's manifest version. Only the version string and the
// timeStamp value change inside info.plist; every other byte is preserved,
// so the release commit stays a two-line diff.
func Run(opts Options) (*Result, error) {
	b, err := bundle.Open(opts.BundleDir)
	if err != nil {
		return nil, err
	}

	plistPath := b.InfoPlistPath()
	data, err := os.ReadFile(plistPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", plistPath, err)
	}

	oldVersion, err := manifest.Version(data)
	if err != nil {
		return nil, err
	}
	newVersion, err := Next(oldVersion, opts.Part)
	if err != nil {
		return nil, err
	}

	result := &Result{
		OldVersion: oldVersion,
		NewVersion: newVersion,
		Tag:        "v" + newVersion,
	}
	if opts.DryRun {
		return result, nil
	}

	stamp := opts.TimeStamp
	if stamp == 0 {
		stamp = time.Now().Unix()
	}

	rewritten, err := manifest.RewriteVersionAndStamp(data, newVersion, stamp)
	if err != nil {
		return nil, err
	}

	repo := gitrepo.New(filepath.Dir(opts.BundleDir))
	useGit := !opts.NoGit
	if useGit {
		if !repo.IsRepo() {
			return nil, fmt.Errorf("%s is not inside a git repository (use --no-git to bump anyway)", opts.BundleDir)
		}
		if repo.TagExists(result.Tag) {
			return nil, fmt.Errorf("tag %s already exists", result.Tag)
		}
		clean, err := repo.IsClean()
		if err != nil {
			return nil, err
		}
		if !clean {
			return nil, fmt.Errorf("working tree has uncommitted changes; commit or stash them first")
		}
	}

	perm := os.FileMode(0644)
	if fi, err := os.Stat(plistPath); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(plistPath, rewritten, perm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", plistPath, err)
	}

	if !useGit {
		return result, nil
	}

	message := "Release " + result.Tag
	if err := repo.Add(plistPath); err != nil {
		return nil, err
	}
	if err := repo.Commit(message); err != nil {
		return nil, err
	}
	if err := repo.Tag(result.Tag, message); err != nil {
		return nil, err
	}
	result.Committed = true

	if !opts.NoPush {
		if err := repo.Push(); err != nil {
			return nil, err
		}
		result.Pushed = true
	}

	return result, nil
}
