package gitrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with local identity config.
func initRepo(t *testing.T) Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	r := New(dir)
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
	} {
		if _, err := r.run(args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	return r
}

func TestIsRepo(t *testing.T) {
	r := initRepo(t)
	if !r.IsRepo() {
		t.Error("IsRepo = false inside a repository")
	}

	outside := New(t.TempDir())
	if outside.IsRepo() {
		t.Error("IsRepo = true outside a repository")
	}
}

func TestCommitTagFlow(t *testing.T) {
	r := initRepo(t)

	path := filepath.Join(r.Dir, "info.plist")
	if err := os.WriteFile(path, []byte("<plist/>\n"), 0644); err != nil {
		t.Fatal(err)
	}

	clean, err := r.IsClean()
	if err != nil {
		t.Fatalf("IsClean error: %v", err)
	}
	if clean {
		t.Error("IsClean = true with an untracked file")
	}

	if err := r.Add("info.plist"); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := r.Commit("Release v1.0.1"); err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	clean, err = r.IsClean()
	if err != nil {
		t.Fatalf("IsClean error: %v", err)
	}
	if !clean {
		t.Error("IsClean = false after commit")
	}

	if r.TagExists("v1.0.1") {
		t.Error("TagExists = true before tagging")
	}
	if err := r.Tag("v1.0.1", "Release v1.0.1"); err != nil {
		t.Fatalf("Tag error: %v", err)
	}
	if !r.TagExists("v1.0.1") {
		t.Error("TagExists = false after tagging")
	}

	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head error: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("Head = %q, want a 40-char hash", head)
	}
}

func TestCommit_NothingStaged(t *testing.T) {
	r := initRepo(t)
	if err := r.Commit("empty"); err == nil {
		t.Error("expected error committing with nothing staged, got nil")
	}
}
