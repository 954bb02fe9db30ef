package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ohnotype/rfext/internal/archive"
	"github.com/ohnotype/rfext/internal/bundle"
	"github.com/ohnotype/rfext/internal/logging"
)

// PublishOptions configures a release publication.
type PublishOptions struct {
	// BundleDir is the .roboFontExt bundle to package and publish.
	BundleDir string
	// Tag is the release tag (vX.Y.Z), already gate-checked.
	Tag string
	// StagingDir holds the built archive and checksum file. Empty means a
	// temporary directory that is removed afterwards.
	StagingDir string
}

// Publish packages the bundle and attaches it, with a checksum file, to
// the GitHub release for the tag. Every step aborts the pipeline on
// failure; nothing is retried.
func Publish(ctx context.Context, client *Client, opts PublishOptions) (*Release, error) {
	b, err := bundle.Open(opts.BundleDir)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimPrefix(opts.Tag, "v"); v != b.Info.Version {
		logging.Warn(ctx, "tag does not match manifest version",
			zap.String("tag", opts.Tag),
			zap.String("manifest_version", b.Info.Version))
	}

	staging := opts.StagingDir
	if staging == "" {
		tmp, err := os.MkdirTemp("", "rfext-release-*")
		if err != nil {
			return nil, fmt.Errorf("creating staging directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		staging = tmp
	}

	zipPath := filepath.Join(staging, b.ArchiveName())
	logging.Info(ctx, "packing bundle",
		zap.String("bundle", b.Path),
		zap.String("archive", zipPath))
	if err := archive.PackDir(b.Path, zipPath); err != nil {
		return nil, err
	}
	if err := archive.VerifyDir(zipPath, b.Path); err != nil {
		return nil, fmt.Errorf("verifying archive: %w", err)
	}

	checksums := filepath.Join(staging, archive.ChecksumsFileName)
	if err := archive.WriteChecksums(checksums, []string{zipPath}); err != nil {
		return nil, err
	}

	logging.Info(ctx, "ensuring release", zap.String("tag", opts.Tag))
	rel, err := client.EnsureRelease(ctx, opts.Tag)
	if err != nil {
		return nil, err
	}

	for _, upload := range []struct {
		path, contentType string
	}{
		{zipPath, "application/zip"},
		{checksums, "text/plain"},
	} {
		logging.Info(ctx, "uploading asset", zap.String("asset", filepath.Base(upload.path)))
		if _, err := client.UploadAsset(ctx, rel, upload.path, upload.contentType); err != nil {
			return nil, err
		}
	}

	logging.Info(ctx, "release published",
		zap.String("tag", opts.Tag),
		zap.String("url", rel.HTMLURL))
	return rel, nil
}
