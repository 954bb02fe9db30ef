// Package gitrepo wraps the handful of git operations the bump pipeline
// needs. Git is driven through exec; errors carry the command's combined
// output so failures read the same as they would in a terminal.
package gitrepo

import (
	"fmt"
	"os/exec"
	"strings"
)

// Repo is a git working tree rooted at Dir.
type Repo struct {
	Dir string
}

// New returns a Repo for the given working tree directory.
func New(dir string) Repo {
	return Repo{Dir: dir}
}

func (r Repo) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, string(output))
	}
	return string(output), nil
}

// IsRepo reports whether Dir is inside a git working tree.
func (r Repo) IsRepo() bool {
	_, err := r.run("rev-parse", "--is-inside-work-tree")
	return err == nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func (r Repo) IsClean() (bool, error) {
	out, err := r.run("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

// Add stages the given paths.
func (r Repo) Add(paths ...string) error {
	_, err := r.run(append([]string{"add", "--"}, paths...)...)
	return err
}

// Commit records a commit with the given message.
func (r Repo) Commit(message string) error {
	_, err := r.run("commit", "-m", message)
	return err
}

// Tag creates an annotated tag.
func (r Repo) Tag(name, message string) error {
	_, err := r.run("tag", "-a", name, "-m", message)
	return err
}

// TagExists reports whether a tag with the given name exists.
func (r Repo) TagExists(name string) bool {
	_, err := r.run("rev-parse", "--verify", "refs/tags/"+name)
	return err == nil
}

// Push pushes the current branch and then all tags, matching the
// two-step push the release flow has always used.
func (r Repo) Push() error {
	if _, err := r.run("push"); err != nil {
		return err
	}
	_, err := r.run("push", "--tags")
	return err
}

// Head returns the full hash of the current HEAD commit.
func (r Repo) Head() (string, error) {
	out, err := r.run("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
