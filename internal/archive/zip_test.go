package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBundle lays out a minimal extension bundle under dir.
func writeBundle(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"info.plist":      "<plist><dict/></plist>\n",
		"lib/main.py":     "print('hi')\n",
		"html/index.html": "<html></html>\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestPackDir_EntriesUnderBundleDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Transmutor.roboFontExt")
	writeBundle(t, src)
	dest := filepath.Join(t.TempDir(), "Transmutor.roboFontExt.zip")

	require.NoError(t, PackDir(src, dest))

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}

	// Every entry lives under the bundle directory itself, in sorted order,
	// so a plain unzip recreates Transmutor.roboFontExt/.
	assert.Equal(t, []string{
		"Transmutor.roboFontExt/html/index.html",
		"Transmutor.roboFontExt/info.plist",
		"Transmutor.roboFontExt/lib/main.py",
	}, names)
	for _, name := range names {
		assert.False(t, strings.HasPrefix(name, "/"), "entry %s is absolute", name)
		assert.NotContains(t, name, "..", "entry %s escapes the root", name)
	}
}

func TestPackDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := PackDir(file, filepath.Join(t.TempDir(), "out.zip"))
	assert.Error(t, err)
}

func TestPackExtract_ReproducesBundleDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Transmutor.roboFontExt")
	writeBundle(t, src)
	dest := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, PackDir(src, dest))

	out := filepath.Join(t.TempDir(), "extracted")
	require.NoError(t, Extract(dest, out))

	// Extraction must recreate the named bundle directory, not spill its
	// contents into the destination.
	extracted := filepath.Join(out, "Transmutor.roboFontExt")
	stat, err := os.Stat(extracted)
	require.NoError(t, err, "extracted archive has no Transmutor.roboFontExt directory")
	require.True(t, stat.IsDir())

	for _, rel := range []string{"info.plist", "lib/main.py", "html/index.html"} {
		want, err := os.ReadFile(filepath.Join(src, filepath.FromSlash(rel)))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(extracted, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, want, got, "content mismatch for %s", rel)
	}
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent traversal", "../evil.txt"},
		{"nested traversal", "lib/../../evil.txt"},
		{"absolute path", "/etc/evil.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zipPath := filepath.Join(t.TempDir(), "evil.zip")
			f, err := os.Create(zipPath)
			require.NoError(t, err)
			zw := zip.NewWriter(f)
			w, err := zw.Create(tt.entry)
			require.NoError(t, err)
			_, err = w.Write([]byte("boom"))
			require.NoError(t, err)
			require.NoError(t, zw.Close())
			require.NoError(t, f.Close())

			dest := t.TempDir()
			err = Extract(zipPath, dest)
			require.Error(t, err)

			// Nothing may have been written outside dest.
			entries, readErr := os.ReadDir(dest)
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestVerifyDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Transmutor.roboFontExt")
	writeBundle(t, src)
	dest := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, PackDir(src, dest))

	require.NoError(t, VerifyDir(dest, src))

	// Mutating a source file must fail verification.
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib", "main.py"), []byte("changed\n"), 0644))
	assert.Error(t, VerifyDir(dest, src))
}

func TestVerifyDir_MissingEntry(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Transmutor.roboFontExt")
	writeBundle(t, src)
	dest := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, PackDir(src, dest))

	// A file added after packing is missing from the archive.
	require.NoError(t, os.WriteFile(filepath.Join(src, "extra.txt"), []byte("late\n"), 0644))
	err := VerifyDir(dest, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing entry")
}

func TestVerifyDir_RejectsUnprefixedEntries(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Transmutor.roboFontExt")
	writeBundle(t, src)

	// An archive with entries at the top level (no bundle directory) would
	// unzip into loose files; verification must refuse it.
	zipPath := filepath.Join(t.TempDir(), "flat.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"info.plist", "lib/main.py"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	err = VerifyDir(zipPath, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not under Transmutor.roboFontExt/")
}

func TestEntryName(t *testing.T) {
	// "e" + combining acute (NFD) must normalize to the composed form.
	decomposed := "cafe\u0301.py"
	composed := "caf\u00e9.py"
	assert.Equal(t, composed, EntryName(decomposed))
}
