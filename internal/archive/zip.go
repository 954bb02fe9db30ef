// Package archive packs extension bundles into distributable zip files and
// verifies them. Every entry sits under a single top-level directory named
// after the packed directory, so extracting the archive recreates the
// bundle directory itself (Transmutor.roboFontExt/info.plist, not a loose
// info.plist). Paths are slash-separated and NFC-normalized so archives
// built on macOS (whose filesystem hands back decomposed names) match the
// checked-in sources.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PackDir zips srcDir into destZip. Entry names carry srcDir's own base
// name as their first component, so extraction reproduces the directory
// with its original name. Entries are written in sorted order; directory
// entries are omitted. Symlinks and other irregular files are skipped.
func PackDir(srcDir, destZip string) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", srcDir)
	}

	var files []string
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", srcDir, err)
	}
	sort.Strings(files)

	out, err := os.Create(destZip)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", destZip, err)
	}

	root := rootEntryDir(srcDir)
	zw := zip.NewWriter(out)
	for _, rel := range files {
		if err := addFile(zw, srcDir, root, rel); err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return out.Close()
}

func addFile(zw *zip.Writer, srcDir, root, rel string) error {
	path := filepath.Join(srcDir, rel)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("building header for %s: %w", rel, err)
	}
	hdr.Name = root + "/" + EntryName(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", hdr.Name, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("writing entry %s: %w", hdr.Name, err)
	}
	return nil
}

// EntryName converts a relative filesystem path into the canonical zip
// entry name: slash-separated and NFC-normalized.
func EntryName(rel string) string {
	return norm.NFC.String(filepath.ToSlash(rel))
}

// rootEntryDir derives the archive's top-level directory name from the
// packed directory's own base name.
func rootEntryDir(srcDir string) string {
	return EntryName(filepath.Base(filepath.Clean(srcDir)))
}

// Extract unpacks zipPath into destDir. Entries with absolute paths or
// parent-directory components are rejected before anything is written.
func Extract(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := checkEntryName(f.Name); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination %s: %w", destDir, err)
	}

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode().Perm()|0700); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.Name, err)
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return out.Close()
}

// checkEntryName rejects entry names that would escape the destination.
func checkEntryName(name string) error {
	if name == "" {
		return fmt.Errorf("archive contains an entry with an empty name")
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return fmt.Errorf("archive entry %q has an absolute path", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("archive entry %q escapes the destination", name)
		}
	}
	return nil
}

// VerifyDir checks that the archive at zipPath reproduces srcDir exactly:
// every file entry sits under a top-level directory named after srcDir,
// every regular file under srcDir appears as an entry with identical bytes,
// and the archive carries no extra file entries.
func VerifyDir(zipPath, srcDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer r.Close()

	root := rootEntryDir(srcDir)
	entries := make(map[string]*zip.File)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := checkEntryName(f.Name); err != nil {
			return err
		}
		if !strings.HasPrefix(f.Name, root+"/") {
			return fmt.Errorf("archive entry %s is not under %s/", f.Name, root)
		}
		entries[f.Name] = f
	}

	seen := 0
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := root + "/" + EntryName(rel)

		f, ok := entries[name]
		if !ok {
			return fmt.Errorf("archive is missing entry %s", name)
		}
		seen++

		want, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening entry %s: %w", name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("reading entry %s: %w", name, err)
		}
		if !bytes.Equal(got, want) {
			return fmt.Errorf("entry %s differs from source", name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if seen != len(entries) {
		return fmt.Errorf("archive has %d file entries, source has %d files", len(entries), seen)
	}
	return nil
}
